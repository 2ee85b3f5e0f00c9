package lower

import (
	"testing"

	"gocsg/internal/csg3"
	"gocsg/internal/source"
	"gocsg/internal/syntax"
)

func mustLower(t *testing.T, src string) *csg3.Tree {
	t.Helper()
	body, err := syntax.Parse(source.New("t.scad", []byte(src)))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	tree, err := Lower(body)
	if err != nil {
		t.Fatalf("lower error: %v", err)
	}
	return tree
}

func TestLowerEmptyBody(t *testing.T) {
	tree := mustLower(t, "")
	if tree.Root != nil {
		t.Fatalf("got %+v, want nil root", tree.Root)
	}
}

// TestLowerSingleCube covers spec §8 scenario 2.
func TestLowerSingleCube(t *testing.T) {
	tree := mustLower(t, "cube([10,10,10]);")
	poly, ok := tree.Root.(*csg3.Polyhedron)
	if !ok {
		t.Fatalf("got %T, want *csg3.Polyhedron", tree.Root)
	}
	if len(poly.Points) != 8 || len(poly.Faces) != 6 {
		t.Fatalf("got %d points, %d faces, want 8, 6", len(poly.Points), len(poly.Faces))
	}
	bb := csg3.BoundingBox(tree, false)
	if bb.Max != (csg3.Vec3{X: 10, Y: 10, Z: 10}) {
		t.Fatalf("got bbox max %+v, want [10,10,10]", bb.Max)
	}
}

// TestLowerDifference covers spec §8 scenario 3.
func TestLowerDifference(t *testing.T) {
	tree := mustLower(t, `difference(){ cube(10); translate([2,2,-1]) cube([6,6,12]); }`)
	sub, ok := tree.Root.(*csg3.Sub)
	if !ok {
		t.Fatalf("got %T, want *csg3.Sub", tree.Root)
	}
	if len(sub.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(sub.Children))
	}
	if _, ok := sub.Children[1].(*csg3.Translate); !ok {
		t.Fatalf("got %T, want *csg3.Translate", sub.Children[1])
	}
}

func TestLowerCubeUniformShorthand(t *testing.T) {
	tree := mustLower(t, "cube(10);")
	poly := tree.Root.(*csg3.Polyhedron)
	if poly.Points[6] != (csg3.Vec3{X: 10, Y: 10, Z: 10}) {
		t.Fatalf("got %+v", poly.Points[6])
	}
}

func TestLowerUnknownFunctorErrors(t *testing.T) {
	_, err := Lower(parseOrFail(t, "frobnicate(1);"))
	if err == nil {
		t.Fatal("expected an error for an unrecognized functor")
	}
}

func TestLowerMissingArgumentErrors(t *testing.T) {
	_, err := Lower(parseOrFail(t, "sphere();"))
	if err == nil {
		t.Fatal("expected an error for a missing required argument")
	}
}

func TestLowerModifierDisableDropsSubtree(t *testing.T) {
	tree := mustLower(t, "*cube(10);")
	if tree.Root != nil {
		t.Fatalf("got %+v, want nil root for a fully disabled body", tree.Root)
	}
}

// TestLowerAssignmentBindsVariable covers spec §8 scenario 5's lowering
// side: a variable bound by `x = ...;` is usable as a later argument.
func TestLowerAssignmentBindsVariable(t *testing.T) {
	tree := mustLower(t, "s = 10; cube(s);")
	poly := tree.Root.(*csg3.Polyhedron)
	if poly.Points[6] != (csg3.Vec3{X: 10, Y: 10, Z: 10}) {
		t.Fatalf("got %+v, want a 10x10x10 cube resolved through the s binding", poly.Points[6])
	}
}

func TestLowerLinearExtrudeCircle(t *testing.T) {
	tree := mustLower(t, "linear_extrude(height=5) circle(r=3);")
	embed, ok := tree.Root.(*csg3.Embed2D)
	if !ok {
		t.Fatalf("got %T, want *csg3.Embed2D", tree.Root)
	}
	if embed.Height != 5 || len(embed.Body) != 1 {
		t.Fatalf("got %+v", embed)
	}
}

func parseOrFail(t *testing.T, src string) []*syntax.Form {
	t.Helper()
	body, err := syntax.Parse(source.New("t.scad", []byte(src)))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return body
}
