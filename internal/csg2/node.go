// Package csg2 holds the typed CSG-2 tree (spec §3): a skeleton that
// mirrors the boolean-node shape of the 3D tree, with a layer-cell
// array attached at each 2D-relevant subtree root. The boolean layout
// (Add/Sub/Intersect) is filled in once by internal/slicer when the
// skeleton is built; the per-layer cell contents are filled in lazily,
// one layer at a time, by the layer driver.
package csg2

import (
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
)

// Node is implemented by every CSG-2 variant: Add, Sub, Intersect
// (mirroring csg3's boolean nodes one-for-one) and Leaf (a 2D-relevant
// subtree root carrying the per-layer cell array).
type Node interface {
	node2()
	Loc() diag.Location
}

type nodeBase struct {
	Location diag.Location
}

func (nodeBase) node2()               {}
func (b nodeBase) Loc() diag.Location { return b.Location }

// Add is the union of Children (mirrors csg3.Add).
type Add struct {
	nodeBase
	Graphics csg3.GC
	Children []Node
}

// Sub is Children[0] minus the union of Children[1:] (mirrors csg3.Sub).
type Sub struct {
	nodeBase
	Graphics csg3.GC
	Children []Node
}

// Intersect is the intersection of Children (mirrors csg3.Intersect).
type Intersect struct {
	nodeBase
	Graphics csg3.GC
	Children []Node
}

// Leaf is a 2D-relevant subtree root: a 3D leaf (or a leaf wrapped in
// any chain of translate/rotate/scale) collapses to exactly one Leaf in
// the CSG-2 skeleton, carrying a closure that computes its raw,
// world-space cross-section at an arbitrary Z plane and a Cells array
// indexed by layer index that the slicer fills in on demand.
type Leaf struct {
	nodeBase
	// Graphics is the GC inherited at the 3D leaf this Leaf was built
	// from (spec §4.3's modifier inheritance): the reducer consults its
	// Background/ShowOnly bits to decide whether this leaf contributes
	// to a layer's boolean result, and its Highlight bit to flag the
	// resulting cell for the emitters.
	Graphics csg3.GC
	// SliceAt returns the leaf's raw polygon set at the given world Z
	// plane, already mapped through every ancestor translate/rotate/
	// scale transform the leaf was wrapped in.
	SliceAt func(z float64) csg3.PolygonSet
	Cells   []*Cell // length == layer count, filled lazily, single-writer per index
}

// Children returns the direct child nodes of n, or nil for a Leaf.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Add:
		return t.Children
	case *Sub:
		return t.Children
	case *Intersect:
		return t.Children
	default:
		return nil
	}
}

// Tree is the CSG-2 skeleton plus the layer count every Leaf's Cells
// array was sized to.
type Tree struct {
	Root      Node // nil for an empty 3D tree (spec §8 scenario 1)
	NumLayers int
	// AnyShowOnly mirrors csg3.Tree.AnyShowOnly: true when some node in
	// the source tree carried `!`, restricting every pass's boolean
	// result to show-only-marked leaves only.
	AnyShowOnly bool
}

// NewLeaf sizes Cells to n and wraps slice in a Leaf node carrying gc.
func NewLeaf(loc diag.Location, gc csg3.GC, n int, slice func(z float64) csg3.PolygonSet) *Leaf {
	return &Leaf{nodeBase: nodeBase{Location: loc}, Graphics: gc, SliceAt: slice, Cells: make([]*Cell, n)}
}
