package slicer

import (
	"math"
	"testing"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/lower"
	"gocsg/internal/source"
	"gocsg/internal/syntax"
)

func lowerSrc(t *testing.T, src string) *csg3.Tree {
	t.Helper()
	body, err := syntax.Parse(source.New("t.scad", []byte(src)))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	tree, err := lower.Lower(body)
	if err != nil {
		t.Fatalf("lower error: %v", err)
	}
	return tree
}

func firstLeaf(t *testing.T, n csg2.Node) *csg2.Leaf {
	t.Helper()
	if leaf, ok := n.(*csg2.Leaf); ok {
		return leaf
	}
	for _, c := range csg2.Children(n) {
		if leaf := firstLeafOrNil(c); leaf != nil {
			return leaf
		}
	}
	t.Fatal("no leaf found")
	return nil
}

func firstLeafOrNil(n csg2.Node) *csg2.Leaf {
	if leaf, ok := n.(*csg2.Leaf); ok {
		return leaf
	}
	for _, c := range csg2.Children(n) {
		if leaf := firstLeafOrNil(c); leaf != nil {
			return leaf
		}
	}
	return nil
}

// TestSliceCubeMidHeight covers spec §8 scenario 2's cross-section
// shape: slicing a 10x10x10 cube halfway up yields a single 10x10
// square ring.
func TestSliceCubeMidHeight(t *testing.T) {
	tree := lowerSrc(t, "cube([10,10,10]);")
	skeleton := BuildSkeleton(tree, 1)
	leaf := firstLeaf(t, skeleton.Root)
	polys := leaf.SliceAt(5)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	ring := polys[0].Outer()
	if len(ring) != 4 {
		t.Fatalf("got %d ring points, want 4", len(ring))
	}
	bb := ringBBox(ring)
	if bb.minX != 0 || bb.minY != 0 || bb.maxX != 10 || bb.maxY != 10 {
		t.Fatalf("got bbox %+v, want [0,0]-[10,10]", bb)
	}
}

func TestSliceCubeOutsideRangeIsEmpty(t *testing.T) {
	tree := lowerSrc(t, "cube([10,10,10]);")
	skeleton := BuildSkeleton(tree, 1)
	leaf := firstLeaf(t, skeleton.Root)
	if polys := leaf.SliceAt(20); polys != nil {
		t.Fatalf("got %+v, want nil outside the cube's Z extent", polys)
	}
}

func TestSliceTranslatedCube(t *testing.T) {
	tree := lowerSrc(t, "translate([5,5,0]) cube([2,2,2]);")
	skeleton := BuildSkeleton(tree, 1)
	leaf := firstLeaf(t, skeleton.Root)
	polys := leaf.SliceAt(1)
	bb := ringBBox(polys[0].Outer())
	if bb.minX != 5 || bb.minY != 5 || bb.maxX != 7 || bb.maxY != 7 {
		t.Fatalf("got bbox %+v, want [5,5]-[7,7]", bb)
	}
}

func TestSliceSphereCircleAtEquator(t *testing.T) {
	tree := lowerSrc(t, "sphere(r=5);")
	skeleton := BuildSkeleton(tree, 1)
	leaf := firstLeaf(t, skeleton.Root)
	polys := leaf.SliceAt(0)
	ring := polys[0].Outer()
	for _, p := range ring {
		r := math.Hypot(p.X, p.Y)
		if math.Abs(r-5) > 1e-9 {
			t.Fatalf("got radius %g at equator, want 5", r)
		}
	}
}

func TestSliceSphereOutsideRangeIsEmpty(t *testing.T) {
	tree := lowerSrc(t, "sphere(r=5);")
	skeleton := BuildSkeleton(tree, 1)
	leaf := firstLeaf(t, skeleton.Root)
	if polys := leaf.SliceAt(5); polys != nil {
		t.Fatalf("got %+v, want nil exactly at the pole (half-open convention)", polys)
	}
}

// TestPopulateLayerFillsAllLeaves covers the driver-facing contract:
// after PopulateLayer, every leaf under a Sub has a non-nil cell.
func TestPopulateLayerFillsAllLeaves(t *testing.T) {
	tree := lowerSrc(t, `difference(){ cube(10); translate([2,2,-1]) cube([6,6,12]); }`)
	skeleton := BuildSkeleton(tree, 1)
	if err := PopulateLayer(skeleton, 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub := skeleton.Root.(*csg2.Sub)
	for i, c := range sub.Children {
		leaf := c.(*csg2.Leaf)
		if leaf.Cells[0] == nil {
			t.Fatalf("child %d: cell not populated", i)
		}
	}
}

type bbox2 struct{ minX, minY, maxX, maxY float64 }

func ringBBox(r csg3.Ring) bbox2 {
	b := bbox2{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, p := range r {
		b.minX = math.Min(b.minX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxX = math.Max(b.maxX, p.X)
		b.maxY = math.Max(b.maxY, p.Y)
	}
	return b
}
