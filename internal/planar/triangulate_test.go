package planar

import (
	"testing"

	"gocsg/internal/arena"
	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
)

func TestTriangulateSimpleSquareProducesTwoTriangles(t *testing.T) {
	cell := csg2.NewCell(csg3.PolygonSet{square(0, 0, 10, 10)})
	if err := triangulateCell(&arena.Arena{}, cell); err != nil {
		t.Fatalf("triangulateCell: %v", err)
	}
	if len(cell.Tri) != 2 {
		t.Fatalf("got %d triangles, want 2", len(cell.Tri))
	}
	for _, tri := range cell.Tri {
		for _, idx := range tri {
			if idx < 0 || idx >= len(cell.Points) {
				t.Fatalf("triangle index %d out of range for %d points", idx, len(cell.Points))
			}
		}
	}
}

func TestTriangulateWithHoleNeverCrossesInnerRing(t *testing.T) {
	outer := square(0, 0, 10, 10)
	holeRing := csg3.Ring{
		{X: 3, Y: 3}, {X: 3, Y: 7}, {X: 7, Y: 7}, {X: 7, Y: 3},
	}
	poly := csg3.Polygon2{Rings: []csg3.Ring{outer.Outer(), holeRing}}
	cell := csg2.NewCell(csg3.PolygonSet{poly})

	if err := triangulateCell(&arena.Arena{}, cell); err != nil {
		t.Fatalf("triangulateCell: %v", err)
	}
	if len(cell.Tri) == 0 {
		t.Fatalf("expected at least one triangle")
	}
	for _, tri := range cell.Tri {
		c := centroidOf(cell.Points, tri)
		if c.X > 3 && c.X < 7 && c.Y > 3 && c.Y < 7 {
			t.Fatalf("triangle %v centroid %v falls inside the hole", tri, c)
		}
	}
}

func centroidOf(pts []csg3.Point2, tri csg3.Triangle) csg3.Point2 {
	a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
	return csg3.Point2{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
}

func TestTriangulateNilCellIsNoOp(t *testing.T) {
	if err := triangulateCell(&arena.Arena{}, nil); err != nil {
		t.Fatalf("triangulateCell(&arena.Arena{}, nil): %v", err)
	}
}

func TestTriangulateDegenerateRingIsSkipped(t *testing.T) {
	poly := csg3.Polygon2{Rings: []csg3.Ring{{{X: 0, Y: 0}, {X: 1, Y: 0}}}}
	cell := csg2.NewCell(csg3.PolygonSet{poly})
	if err := triangulateCell(&arena.Arena{}, cell); err != nil {
		t.Fatalf("triangulateCell: %v", err)
	}
	if len(cell.Tri) != 0 {
		t.Fatalf("got %d triangles for a 2-point ring, want 0", len(cell.Tri))
	}
}
