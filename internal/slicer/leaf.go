package slicer

import (
	"math"

	"gocsg/internal/csg3"
	"gocsg/internal/diag"
)

// zHalfOpen decides how the slicer treats geometry lying exactly on the
// boundary of a leaf's Z extent (spec §9 open question: "implementations
// should pick a side ... and document it"). We treat every leaf's valid
// Z range as half-open [zLo, zHi): a sampling plane exactly at zLo is
// inside the solid, one exactly at zHi is outside. This matches the
// half-step Z-centering default in spec §4.3, which is chosen
// specifically to avoid ever sampling exactly on a primitive's face.
func zHalfOpen(z, lo, hi float64) bool { return z >= lo && z < hi }

// sliceSphere returns the circular cross-section of a sphere of radius
// r (centered at its local origin) at local Z, or nil outside [-r, r).
func sliceSphere(loc diag.Location, r float64, facets int, localZ float64, xy xyChain) csg3.PolygonSet {
	if !zHalfOpen(localZ, -r, r) {
		return nil
	}
	radius := math.Sqrt(r*r - localZ*localZ)
	if radius <= 0 {
		return nil
	}
	return csg3.PolygonSet{{Rings: []csg3.Ring{circleRing(loc, radius, facets, xy)}}}
}

// sliceCylinder returns the (possibly tapered) circular cross-section
// of a cylinder from z=0 to z=Height at local Z, or nil outside
// [0, Height).
func sliceCylinder(loc diag.Location, r1, r2, height float64, facets int, localZ float64, xy xyChain) csg3.PolygonSet {
	if !zHalfOpen(localZ, 0, height) {
		return nil
	}
	t := localZ / height
	radius := r1 + (r2-r1)*t
	if radius <= 0 {
		return nil
	}
	return csg3.PolygonSet{{Rings: []csg3.Ring{circleRing(loc, radius, facets, xy)}}}
}

func circleRing(loc diag.Location, radius float64, facets int, xy xyChain) csg3.Ring {
	if facets < 3 {
		facets = 3
	}
	ring := make(csg3.Ring, facets)
	for i := 0; i < facets; i++ {
		theta := 2 * math.Pi * float64(i) / float64(facets)
		lx, ly := radius*math.Cos(theta), radius*math.Sin(theta)
		wx, wy := xy.forward(lx, ly)
		ring[i] = csg3.Point2{X: wx, Y: wy, Location: loc}
	}
	return ring
}

// sliceEmbed2D returns the (constant) cross-section of an extruded 2D
// body at local Z, or nil outside [0, Height).
func sliceEmbed2D(loc diag.Location, height float64, body []csg3.Polygon2, localZ float64, xy xyChain) csg3.PolygonSet {
	if !zHalfOpen(localZ, 0, height) {
		return nil
	}
	out := make(csg3.PolygonSet, len(body))
	for i, poly := range body {
		rings := make([]csg3.Ring, len(poly.Rings))
		for j, ring := range poly.Rings {
			mapped := make(csg3.Ring, len(ring))
			for k, p := range ring {
				wx, wy := xy.forward(p.X, p.Y)
				mapped[k] = csg3.Point2{X: wx, Y: wy, Location: loc}
			}
			rings[j] = mapped
		}
		out[i] = csg3.Polygon2{Rings: rings}
	}
	return out
}
