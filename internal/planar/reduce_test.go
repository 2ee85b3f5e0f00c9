package planar

import (
	"testing"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/syntax"
)

func square(x0, y0, x1, y1 float64) csg3.Polygon2 {
	return csg3.Polygon2{Rings: []csg3.Ring{{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}}
}

func leafOf(polys csg3.PolygonSet, layers int) *csg2.Leaf {
	return leafOfGC(polys, layers, csg3.GC{})
}

func leafOfGC(polys csg3.PolygonSet, layers int, gc csg3.GC) *csg2.Leaf {
	l := csg2.NewLeaf(diag.Location{}, gc, layers, func(z float64) csg3.PolygonSet { return polys })
	for i := range l.Cells {
		l.Cells[i] = csg2.NewCell(polys)
	}
	return l
}

func TestAddLayerUnionConcatenates(t *testing.T) {
	outer := leafOf(csg3.PolygonSet{square(0, 0, 10, 10)}, 1)
	inner := leafOf(csg3.PolygonSet{square(20, 20, 30, 30)}, 1)
	tree := &csg2.Tree{Root: &csg2.Add{Children: []csg2.Node{outer, inner}}, NumLayers: 1}

	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if len(out.Cells[0].Polys) != 2 {
		t.Fatalf("got %d polygons, want 2", len(out.Cells[0].Polys))
	}
}

func TestAddLayerSubtractionPunchesHole(t *testing.T) {
	base := leafOf(csg3.PolygonSet{square(0, 0, 10, 10)}, 1)
	hole := leafOf(csg3.PolygonSet{square(2, 2, 4, 4)}, 1)
	tree := &csg2.Tree{Root: &csg2.Sub{Children: []csg2.Node{base, hole}}, NumLayers: 1}

	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	polys := out.Cells[0].Polys
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	if len(polys[0].Rings) != 2 {
		t.Fatalf("got %d rings, want 2 (outer + hole)", len(polys[0].Rings))
	}
}

func TestAddLayerSubtractionNotContainedDropsCut(t *testing.T) {
	base := leafOf(csg3.PolygonSet{square(0, 0, 10, 10)}, 1)
	farAway := leafOf(csg3.PolygonSet{square(100, 100, 110, 110)}, 1)
	tree := &csg2.Tree{Root: &csg2.Sub{Children: []csg2.Node{base, farAway}}, NumLayers: 1}

	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if len(out.Cells[0].Polys[0].Rings) != 1 {
		t.Fatalf("expected no hole punched for non-contained cut polygon")
	}
}

func TestAddLayerIntersectClipsOverlap(t *testing.T) {
	a := leafOf(csg3.PolygonSet{square(0, 0, 10, 10)}, 1)
	b := leafOf(csg3.PolygonSet{square(5, 5, 15, 15)}, 1)
	tree := &csg2.Tree{Root: &csg2.Intersect{Children: []csg2.Node{a, b}}, NumLayers: 1}

	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	polys := out.Cells[0].Polys
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	ring := polys[0].Outer()
	minX, minY, maxX, maxY := ring[0].X, ring[0].Y, ring[0].X, ring[0].Y
	for _, p := range ring {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minX != 5 || minY != 5 || maxX != 10 || maxY != 10 {
		t.Fatalf("got bbox (%v,%v)-(%v,%v), want (5,5)-(10,10)", minX, minY, maxX, maxY)
	}
}

func TestAddLayerEmptyTreeYieldsEmptyCell(t *testing.T) {
	tree := &csg2.Tree{Root: nil, NumLayers: 1}
	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if len(out.Cells[0].Polys) != 0 {
		t.Fatalf("expected empty cell for empty tree")
	}
}

func TestDiffLayerHighlightsOnlyChangedPolygons(t *testing.T) {
	out := NewOutput(2)
	out.Cells[0] = csg2.NewCell(csg3.PolygonSet{square(0, 0, 10, 10)})
	out.Cells[1] = csg2.NewCell(csg3.PolygonSet{square(0, 0, 10, 10), square(20, 20, 30, 30)})

	r := NewReducer(Options{})
	if err := r.DiffLayer(out, 0, nil); err != nil {
		t.Fatalf("DiffLayer: %v", err)
	}
	if len(out.DiffCells[0].Polys) != 1 {
		t.Fatalf("got %d diff polygons, want 1 (the new square only)", len(out.DiffCells[0].Polys))
	}
}

func TestAddLayerBackgroundLeafExcluded(t *testing.T) {
	shown := leafOf(csg3.PolygonSet{square(0, 0, 10, 10)}, 1)
	hidden := leafOfGC(csg3.PolygonSet{square(20, 20, 30, 30)}, 1, csg3.GC{Mods: syntax.ModBackground})
	tree := &csg2.Tree{Root: &csg2.Add{Children: []csg2.Node{shown, hidden}}, NumLayers: 1}

	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if len(out.Cells[0].Polys) != 1 {
		t.Fatalf("got %d polygons, want 1 (the `%%`-marked leaf excluded)", len(out.Cells[0].Polys))
	}
}

func TestAddLayerShowOnlyRestrictsToMarkedLeaves(t *testing.T) {
	marked := leafOfGC(csg3.PolygonSet{square(0, 0, 10, 10)}, 1, csg3.GC{Mods: syntax.ModShowOnly})
	unmarked := leafOf(csg3.PolygonSet{square(20, 20, 30, 30)}, 1)
	tree := &csg2.Tree{
		Root:        &csg2.Add{Children: []csg2.Node{marked, unmarked}},
		NumLayers:   1,
		AnyShowOnly: true,
	}

	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	polys := out.Cells[0].Polys
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1 (only the `!`-marked leaf)", len(polys))
	}
	if polys[0].Outer()[0].X != 0 {
		t.Fatalf("got the unmarked leaf's geometry, want the `!`-marked one's")
	}
}

func TestAddLayerHighlightFlagsCell(t *testing.T) {
	plain := leafOf(csg3.PolygonSet{square(0, 0, 10, 10)}, 1)
	marked := leafOfGC(csg3.PolygonSet{square(20, 20, 30, 30)}, 1, csg3.GC{Mods: syntax.ModHighlight})
	tree := &csg2.Tree{Root: &csg2.Add{Children: []csg2.Node{plain, marked}}, NumLayers: 1}

	out := NewOutput(1)
	r := NewReducer(Options{})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if !out.Cells[0].Highlighted {
		t.Fatalf("expected cell to be flagged highlighted by the `#`-marked leaf")
	}
}

func TestAddLayerDisableBooleanStillHonorsModifiers(t *testing.T) {
	shown := leafOf(csg3.PolygonSet{square(0, 0, 10, 10)}, 1)
	hidden := leafOfGC(csg3.PolygonSet{square(20, 20, 30, 30)}, 1, csg3.GC{Mods: syntax.ModBackground})
	tree := &csg2.Tree{Root: &csg2.Add{Children: []csg2.Node{shown, hidden}}, NumLayers: 1}

	out := NewOutput(1)
	r := NewReducer(Options{DisableBoolean: true})
	if err := r.AddLayer(out, tree, 0, nil); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if len(out.Cells[0].Polys) != 1 {
		t.Fatalf("got %d polygons, want 1 (--no-csg flatten still excludes `%%`)", len(out.Cells[0].Polys))
	}
}

func TestTracerNilIsNoOp(t *testing.T) {
	var tr *Tracer
	tr.Layer(3)
	tr.Step("add", nil, nil)
	if err := tr.Close(); err != nil {
		t.Fatalf("nil tracer Close: %v", err)
	}
}
