package layer

import (
	"context"
	"strings"
	"testing"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/logging"
	"gocsg/internal/lower"
	"gocsg/internal/planar"
	"gocsg/internal/slicer"
	"gocsg/internal/source"
	"gocsg/internal/syntax"
)

func buildTree(t *testing.T, src string) (*csg3.Tree, csg3.ZRange) {
	t.Helper()
	f := source.New("t.scad", []byte(src))
	forms, err := syntax.Parse(f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tree, err := lower.Lower(forms)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	bb := csg3.BoundingBox(tree, false)
	zr := csg3.SelectZRange(bb, nil, nil, 1)
	return tree, zr
}

func runDriver(t *testing.T, workers int) *planar.Output {
	t.Helper()
	tree, zr := buildTree(t, "cube([10,10,10]);")
	skel := slicer.BuildSkeleton(tree, zr.Count)
	d := New(planar.Options{})
	out, err := d.Run(context.Background(), skel, zr, Options{Workers: workers, Triangulate: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out
}

func TestDriverProducesOneCellPerLayer(t *testing.T) {
	out := runDriver(t, 1)
	for i, cell := range out.Cells {
		if cell == nil {
			t.Fatalf("layer %d: nil cell", i)
		}
		if len(cell.Polys) != 1 {
			t.Fatalf("layer %d: got %d polygons, want 1", i, len(cell.Polys))
		}
	}
}

func TestDriverWorkerCountDoesNotChangeResult(t *testing.T) {
	single := runDriver(t, 1)
	multi := runDriver(t, 4)
	if len(single.Cells) != len(multi.Cells) {
		t.Fatalf("layer count differs: %d vs %d", len(single.Cells), len(multi.Cells))
	}
	for i := range single.Cells {
		a, b := single.Cells[i], multi.Cells[i]
		if len(a.Polys) != len(b.Polys) {
			t.Fatalf("layer %d: polygon count differs across worker counts", i)
		}
		if len(a.Tri) != len(b.Tri) {
			t.Fatalf("layer %d: triangle count differs across worker counts", i)
		}
	}
}

func TestDriverEmptyTreeYieldsSingleLayer(t *testing.T) {
	tree := &csg3.Tree{}
	zr := csg3.SelectZRange(csg3.Box{}, nil, nil, 1)
	skel := slicer.BuildSkeleton(tree, zr.Count)
	d := New(planar.Options{})
	out, err := d.Run(context.Background(), skel, zr, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Cells) != zr.Count {
		t.Fatalf("got %d cells, want %d", len(out.Cells), zr.Count)
	}
}

// failingReducer implements planar.Reducer, failing AddLayer for every
// layer index named in failAt so tests can force concurrent layer
// failures and assert on which one the driver surfaces.
type failingReducer struct {
	failAt map[int]bool
}

func (r failingReducer) AddLayer(out *planar.Output, in *csg2.Tree, i int, tr *planar.Tracer) error {
	if r.failAt[i] {
		return diag.New(diag.BoolOp, diag.Location{}, "layer %d: forced failure", i)
	}
	out.Cells[i] = csg2.NewCell(nil)
	return nil
}

func (r failingReducer) DiffLayer(out *planar.Output, i int, tr *planar.Tracer) error {
	out.DiffCells[i] = csg2.NewCell(nil)
	return nil
}

// TestDriverReportsLowestFailingLayerIndex forces layers 1 and 3 to fail
// across multiple workers; regardless of goroutine scheduling, the
// reported error must name layer 1 (spec §4.4: "lowest layer index wins
// on ties").
func TestDriverReportsLowestFailingLayerIndex(t *testing.T) {
	tree, zr := buildTree(t, "cube([10,10,10]);")
	skel := slicer.BuildSkeleton(tree, zr.Count)
	if zr.Count < 4 {
		t.Fatalf("test needs at least 4 layers, got %d", zr.Count)
	}
	d := &Driver{
		reducer:      failingReducer{failAt: map[int]bool{1: true, 3: true}},
		triangulator: planar.NewTriangulator(),
		log:          logging.Logger(logging.Drvr),
	}
	_, err := d.Run(context.Background(), skel, zr, Options{Workers: 4})
	if err == nil {
		t.Fatalf("Run: expected an error, got nil")
	}
	if !strings.Contains(err.Error(), "layer 1:") {
		t.Fatalf("Run error = %q, want it to name layer 1 (the lowest failing index)", err.Error())
	}
}

func TestDriverDiffPassPopulatesDiffCells(t *testing.T) {
	tree, zr := buildTree(t, "translate([0,0,2]) cube([10,10,2]);")
	skel := slicer.BuildSkeleton(tree, zr.Count)
	d := New(planar.Options{})
	out, err := d.Run(context.Background(), skel, zr, Options{Diff: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.DiffCells) != zr.Count {
		t.Fatalf("got %d diff cells, want %d", len(out.DiffCells), zr.Count)
	}
}
