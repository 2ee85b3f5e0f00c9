package planar

import (
	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
)

// reducer is the reference Reducer: a straightforward, non-robust
// implementation built on vertex-containment tests and convex clipping
// (see package doc). It has no state of its own; every method is a pure
// function of its arguments.
type reducer struct{ opts Options }

// NewReducer returns the reference Reducer implementation.
func NewReducer(opts Options) Reducer { return &reducer{opts: opts} }

// AddLayer walks in's boolean tree at layer i bottom-up, combining each
// subtree into a single PolygonSet, and stores the root's result at
// out.Cells[i] (spec §4.4's op_add_layer). Leaves marked `%` (background)
// never contribute; if in.AnyShowOnly is set (some node in the source
// tree carried `!`), only leaves marked `!` contribute (spec §4.3's
// modifier semantics). A leaf marked `#` (highlight) still contributes
// normally but flags the resulting cell for the emitters.
func (r *reducer) AddLayer(out *Output, in *csg2.Tree, i int, tr *Tracer) error {
	tr.Layer(i)
	if in.Root == nil {
		out.Cells[i] = csg2.NewCell(nil)
		return nil
	}
	if r.opts.DisableBoolean {
		polys, highlighted := flattenLeaves(in.Root, i, in.AnyShowOnly)
		cell := csg2.NewCell(polys)
		cell.Highlighted = highlighted
		out.Cells[i] = cell
		return nil
	}
	polys, highlighted, err := r.combine(in.Root, i, in.AnyShowOnly, tr)
	if err != nil {
		return err
	}
	cell := csg2.NewCell(polys)
	cell.Highlighted = highlighted
	out.Cells[i] = cell
	return nil
}

// included reports whether a leaf carrying gc contributes to a layer's
// result: background leaves never do, and when showOnly is set (some
// leaf in the tree carries `!`) only show-only leaves do.
func included(gc csg3.GC, showOnly bool) bool {
	if showOnly && !gc.ShowOnly() {
		return false
	}
	return !gc.Background()
}

// flattenLeaves concatenates every included leaf's raw polygons with no
// boolean semantics applied, for --no-csg, also reporting whether any
// included leaf was highlighted.
func flattenLeaves(n csg2.Node, layer int, showOnly bool) (csg3.PolygonSet, bool) {
	if leaf, ok := n.(*csg2.Leaf); ok {
		if !included(leaf.Graphics, showOnly) {
			return nil, false
		}
		if cell := leaf.Cells[layer]; cell != nil {
			return cell.Polys, leaf.Graphics.Highlight()
		}
		return nil, false
	}
	var out csg3.PolygonSet
	var highlighted bool
	for _, c := range csg2.Children(n) {
		ps, h := flattenLeaves(c, layer, showOnly)
		out = append(out, ps...)
		highlighted = highlighted || h
	}
	return out, highlighted
}

func (r *reducer) combine(n csg2.Node, layer int, showOnly bool, tr *Tracer) (csg3.PolygonSet, bool, error) {
	switch t := n.(type) {
	case *csg2.Leaf:
		if !included(t.Graphics, showOnly) {
			return nil, false, nil
		}
		cell := t.Cells[layer]
		if cell == nil {
			return nil, false, nil
		}
		return cell.Polys, t.Graphics.Highlight(), nil
	case *csg2.Add:
		var out csg3.PolygonSet
		var highlighted bool
		for _, c := range t.Children {
			ps, h, err := r.combine(c, layer, showOnly, tr)
			if err != nil {
				return nil, false, err
			}
			highlighted = highlighted || h
			before := append(csg3.PolygonSet(nil), out...)
			out = append(out, ps...)
			tr.Step("add", before, out)
		}
		return out, highlighted, nil
	case *csg2.Intersect:
		if len(t.Children) == 0 {
			return nil, false, nil
		}
		out, highlighted, err := r.combine(t.Children[0], layer, showOnly, tr)
		if err != nil {
			return nil, false, err
		}
		for _, c := range t.Children[1:] {
			ps, h, err := r.combine(c, layer, showOnly, tr)
			if err != nil {
				return nil, false, err
			}
			highlighted = highlighted || h
			before := out
			out = intersectSets(out, ps)
			tr.Step("intersect", before, out)
		}
		return out, highlighted, nil
	case *csg2.Sub:
		if len(t.Children) == 0 {
			return nil, false, nil
		}
		base, highlighted, err := r.combine(t.Children[0], layer, showOnly, tr)
		if err != nil {
			return nil, false, err
		}
		var cut csg3.PolygonSet
		for _, c := range t.Children[1:] {
			ps, h, err := r.combine(c, layer, showOnly, tr)
			if err != nil {
				return nil, false, err
			}
			highlighted = highlighted || h
			cut = append(cut, ps...)
		}
		before := base
		out := subtractSets(base, cut)
		tr.Step("sub", before, out)
		return out, highlighted, nil
	default:
		return nil, false, nil
	}
}

// subtractSets removes cut from base. Each cut polygon whose outer ring
// lies entirely within a base polygon's outer ring is attached to that
// base polygon as a hole ring; a cut polygon that is not contained by any
// base polygon contributes nothing (the source shapes this reference
// engine is asked to slice never produce a subtraction that needs real
// boundary re-clipping, only hole punching — see SPEC_FULL.md §9).
func subtractSets(base, cut csg3.PolygonSet) csg3.PolygonSet {
	out := make(csg3.PolygonSet, len(base))
	copy(out, base)
	for _, cp := range cut {
		outer := cp.Outer()
		if len(outer) == 0 {
			continue
		}
		for bi, bp := range out {
			if ringContainsRing(bp.Outer(), outer) {
				hole := ensureCW(outer)
				out[bi].Rings = append(append([]csg3.Ring{}, out[bi].Rings...), hole)
				break
			}
		}
	}
	return out
}

// intersectSets clips every polygon of a against every polygon of b using
// convex clipping, keeping only non-empty results.
func intersectSets(a, b csg3.PolygonSet) csg3.PolygonSet {
	var out csg3.PolygonSet
	for _, ap := range a {
		for _, bp := range b {
			ring := clipConvex(ensureCCW(ap.Outer()), ensureCCW(bp.Outer()))
			if len(ring) >= 3 {
				out = append(out, csg3.Polygon2{Rings: []csg3.Ring{ring}})
			}
		}
	}
	return out
}

func ensureCW(ring csg3.Ring) csg3.Ring {
	if signedArea(ring) <= 0 {
		return ring
	}
	rev := make(csg3.Ring, len(ring))
	for i, p := range ring {
		rev[len(ring)-1-i] = p
	}
	return rev
}

// DiffLayer computes the symmetric difference between layer i and layer
// i+1's reduced cells, storing the result at out.DiffCells[i] (spec
// §4.4's op_diff_layer, driving the JS emitter's change-highlighting
// mode). The last layer diffs against an empty neighbor.
func (r *reducer) DiffLayer(out *Output, i int, tr *Tracer) error {
	tr.Layer(i)
	cur := out.Cells[i]
	var curPolys, nextPolys csg3.PolygonSet
	if cur != nil {
		curPolys = cur.Polys
	}
	if i+1 < len(out.Cells) && out.Cells[i+1] != nil {
		nextPolys = out.Cells[i+1].Polys
	}
	onlyCur := subtractByOuterMembership(curPolys, nextPolys)
	onlyNext := subtractByOuterMembership(nextPolys, curPolys)
	diff := append(append(csg3.PolygonSet{}, onlyCur...), onlyNext...)
	tr.Step("diff", curPolys, diff)
	diffCell := csg2.NewCell(diff)
	diffCell.Highlighted = cur != nil && cur.Highlighted
	out.DiffCells[i] = diffCell
	return nil
}

// subtractByOuterMembership returns the polygons of a whose outer ring
// does not coincide (by vertex count and centroid) with any polygon of b,
// a cheap stand-in for full polygon-set symmetric difference adequate for
// the axis-aligned extrusions this pipeline slices.
func subtractByOuterMembership(a, b csg3.PolygonSet) csg3.PolygonSet {
	var out csg3.PolygonSet
	for _, ap := range a {
		found := false
		for _, bp := range b {
			if sameOuter(ap.Outer(), bp.Outer()) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, ap)
		}
	}
	return out
}

func sameOuter(a, b csg3.Ring) bool {
	if len(a) != len(b) {
		return false
	}
	ca, cb := centroid(a), centroid(b)
	const eps = 1e-6
	return absf(ca.X-cb.X) < eps && absf(ca.Y-cb.Y) < eps
}

func centroid(ring csg3.Ring) csg3.Point2 {
	var cx, cy float64
	for _, p := range ring {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(ring))
	if n == 0 {
		return csg3.Point2{}
	}
	return csg3.Point2{X: cx / n, Y: cy / n}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
