package arena

import "testing"

func TestResetReclaimsCapacity(t *testing.T) {
	var a Arena
	pts := a.Point2(100)
	if len(pts) != 100 {
		t.Fatalf("got %d points, want 100", len(pts))
	}
	capBefore := cap(a.points)
	a.Reset()
	if len(a.points) != 0 {
		t.Fatalf("got len %d after Reset, want 0", len(a.points))
	}
	if cap(a.points) != capBefore {
		t.Fatalf("Reset must not shrink capacity: got %d, want %d", cap(a.points), capBefore)
	}
}

func TestGenerationIncrementsOnReset(t *testing.T) {
	var a Arena
	if a.Generation() != 0 {
		t.Fatalf("got %d, want 0", a.Generation())
	}
	a.Reset()
	a.Reset()
	if a.Generation() != 2 {
		t.Fatalf("got %d, want 2", a.Generation())
	}
}

func TestIndependentArenasDoNotShareState(t *testing.T) {
	var a, b Arena
	a.Point2(5)
	if len(b.points) != 0 {
		t.Fatalf("arenas must not share backing storage")
	}
}

func TestIntsAllocation(t *testing.T) {
	var a Arena
	idx := a.Ints(4)
	for i := range idx {
		idx[i] = i * i
	}
	if idx[3] != 9 {
		t.Fatalf("got %d, want 9", idx[3])
	}
}
