package csg3

import "gocsg/internal/diag"

// Point2 is a 2D point carrying the location it was derived from, for
// diagnostics that survive slicing (spec §3: "points with attached
// location").
type Point2 struct {
	X, Y     float64
	Location diag.Location
}

// Ring is a single closed polygon boundary: an ordered sequence of
// points, implicitly closed (the last point connects back to the
// first). The first ring of a Polygon2 is its outer boundary; any
// further rings are holes.
type Ring []Point2

// Polygon2 is one polygon: an outer ring plus zero or more hole rings
// (spec §3: "a polygon set, each an ordered sequence of rings").
type Polygon2 struct {
	Rings []Ring
}

// Outer returns the polygon's outer boundary, or nil if the polygon is
// degenerate (no rings at all).
func (p Polygon2) Outer() Ring {
	if len(p.Rings) == 0 {
		return nil
	}
	return p.Rings[0]
}

// Holes returns the polygon's hole rings.
func (p Polygon2) Holes() []Ring {
	if len(p.Rings) < 2 {
		return nil
	}
	return p.Rings[1:]
}

// PolygonSet is the ordered sequence of polygons making up one layer
// cell's cross-section (spec §3).
type PolygonSet []Polygon2

// Triangle indexes three points in some accompanying point array, used
// by the optional per-layer triangulation (spec §3).
type Triangle [3]int
