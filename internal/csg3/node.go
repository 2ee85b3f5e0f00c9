// Package csg3 holds the typed 3D CSG tree that surface forms lower
// into (spec §3, §4.3): a tagged-variant node interface in the same
// style as internal/syntax.Value, standing in for the source's
// polymorphic node model with dynamic kind checks (spec §9, "Tagged
// variant trees" / "Dynamic casts").
package csg3

import "gocsg/internal/diag"

// Node is implemented by every CSG-3 variant: Sphere, Cylinder,
// Polyhedron, Embed2D (a 2D shape lifted into 3D, e.g. linear_extrude),
// Add, Sub, Intersect (spec §3).
type Node interface {
	node3()
	Loc() diag.Location
	GC() GC
}

// Base carries the fields every CSG-3 node has (location + inherited
// graphics context); each variant embeds it by value, the same shared-
// fields-plus-switch idiom the teacher uses for its AST nodes.
type Base struct {
	Location diag.Location
	Graphics GC
}

func (Base) node3()              {}
func (b Base) Loc() diag.Location { return b.Location }
func (b Base) GC() GC             { return b.Graphics }

// Sphere is a ball of the given radius centered at the origin of its
// local frame, with a resolution hint carried through from the surface
// functor's `$fn`/`fn=` argument (0 means "use the default facet
// count").
type Sphere struct {
	Base
	Radius float64
	Facets int
}

// Cylinder is a (possibly truncated-cone) cylinder along Z, from z=0 to
// z=Height, with independent bottom/top radii (r1==r2 for a true
// cylinder).
type Cylinder struct {
	Base
	R1, R2, Height float64
	Facets         int
}

// Polyhedron is an explicit point/face mesh, as produced by the
// `polyhedron(points=[...], faces=[[...], ...])` functor.
type Polyhedron struct {
	Base
	Points []Vec3
	Faces  [][]int // each face is an ordered, CCW list of indices into Points
}

// Embed2D lifts a 2D polygon set into 3D by linear extrusion from z=0
// to z=Height (the surface `linear_extrude(height=h) <2D body>`
// functor). Body is the already-lowered 2D cross-section, constant over
// the extrusion.
type Embed2D struct {
	Base
	Height float64
	Body   []Polygon2
}

// Add is the union (`union`/implicit-group) of its children.
type Add struct {
	Base
	Children []Node
}

// Sub is the difference of Children[0] minus the union of Children[1:]
// (the surface `difference(){...}` functor).
type Sub struct {
	Base
	Children []Node
}

// Intersect is the intersection of all Children (the surface
// `intersection(){...}` functor).
type Intersect struct {
	Base
	Children []Node
}

// Translate, Rotate and Scale are affine transforms applied to a single
// child subtree. The lowering package always keeps them as explicit
// nodes, matching the surface `translate(v) <tail>` / `rotate(a)` /
// `scale(v)` functors one-for-one; the slicer folds them into each
// leaf's coordinate chain when it builds the skeleton.
type Translate struct {
	Base
	Offset Vec3
	Child  Node
}

type Rotate struct {
	Base
	// DegreesZ is rotation about the Z axis in degrees; this pipeline
	// only needs planar rotation since everything downstream is sliced
	// on horizontal planes.
	DegreesZ float64
	Child    Node
}

type Scale struct {
	Base
	Factor Vec3
	Child  Node
}

// Children returns the direct child nodes of n, or nil for a leaf.
// Centralizing this here keeps the bounding-box walk and the slicer
// from needing a type switch over every boolean and transform variant.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Add:
		return t.Children
	case *Sub:
		return t.Children
	case *Intersect:
		return t.Children
	case *Translate:
		return []Node{t.Child}
	case *Rotate:
		return []Node{t.Child}
	case *Scale:
		return []Node{t.Child}
	default:
		return nil
	}
}

// Tree is the top-level output of lowering: the root node plus the
// accumulated graphics-context union spec §4.3 asks the root to
// collect, and the location of the top-level body (for diagnostics on
// an empty input).
type Tree struct {
	Root     Node // nil for an empty top-level body (spec §8 scenario 1)
	Location diag.Location
	// AnyShowOnly is the OR of every node's ModShowOnly bit, computed
	// once while lowering so the slicer/driver can honor `!`-show-only
	// without re-walking the tree (spec §4.3, "the root collects these
	// at each node").
	AnyShowOnly bool
}
