package csg2

import "gocsg/internal/csg3"

// Cell is the per-layer payload attached to a Leaf (or to the layer
// driver's single-cell output tree): a polygon set plus an optional
// triangulation (spec §3).
type Cell struct {
	Polys csg3.PolygonSet

	// Points and Tri are populated only when triangulation is enabled.
	// Points is the flat array Tri's indices reference; it is built by
	// concatenating every ring of every polygon in Polys, outer rings
	// and holes alike, in the order they appear.
	Points []csg3.Point2
	Tri    []csg3.Triangle

	// Highlighted is true when any leaf contributing to this cell
	// carried the `#` modifier (spec §4.3's Highlight bit); emitters
	// that can represent color (the PS writer) use it to draw the cell
	// distinctly instead of its normal palette entry.
	Highlighted bool
}

// NewCell wraps a polygon set in a fresh, untriangulated Cell.
func NewCell(polys csg3.PolygonSet) *Cell {
	return &Cell{Polys: polys}
}

// FlattenPoints rebuilds c.Points from c.Polys, returning the point
// array a triangulator should index into. Called once per cell right
// before triangulation.
func (c *Cell) FlattenPoints() []csg3.Point2 {
	var pts []csg3.Point2
	for _, poly := range c.Polys {
		for _, ring := range poly.Rings {
			pts = append(pts, ring...)
		}
	}
	c.Points = pts
	return pts
}
