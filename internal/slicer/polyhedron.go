package slicer

import (
	"math"

	"gocsg/internal/csg3"
	"gocsg/internal/diag"
)

// slicePolyhedron intersects every face of poly with the local Z plane,
// collects the resulting edge segments, and stitches them into closed
// rings. Each ring becomes its own Polygon2 (outer boundary only — a
// single convex or simple-concave solid's cross-section has no holes of
// its own; holes only arise later, from boolean reduction across
// sibling leaves). Every ring is wound counter-clockwise, the outer-ring
// orientation the planar engine and triangulator work with.
func slicePolyhedron(loc diag.Location, points []csg3.Vec3, faces [][]int, localZ float64, xy xyChain) csg3.PolygonSet {
	var segs []segment
	for _, face := range faces {
		segs = append(segs, faceCrossings(points, face, localZ)...)
	}
	rings := stitchSegments(segs)
	if len(rings) == 0 {
		return nil
	}
	out := make(csg3.PolygonSet, 0, len(rings))
	for _, r := range rings {
		ring := make(csg3.Ring, len(r))
		for i, p := range r {
			wx, wy := xy.forward(p.x, p.y)
			ring[i] = csg3.Point2{X: wx, Y: wy, Location: loc}
		}
		area := 0.0
		for i, p := range ring {
			q := ring[(i+1)%len(ring)]
			area += p.X*q.Y - q.X*p.Y
		}
		if area < 0 {
			for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
				ring[i], ring[j] = ring[j], ring[i]
			}
		}
		out = append(out, csg3.Polygon2{Rings: []csg3.Ring{ring}})
	}
	return out
}

type point2 struct{ x, y float64 }

type segment struct{ a, b point2 }

// faceCrossings finds the (0 or 2, for a convex face) points at which
// face's boundary crosses the plane z=localZ, using the same
// consistent tie-break the marching-cubes family of algorithms uses
// (z==plane counts as "below" on one side only) so that a vertex lying
// exactly on the plane is never counted twice.
func faceCrossings(points []csg3.Vec3, face []int, localZ float64) []segment {
	var hits []point2
	n := len(face)
	for i := 0; i < n; i++ {
		a := points[face[i]]
		b := points[face[(i+1)%n]]
		za, zb := a.Z-localZ, b.Z-localZ
		below := func(z float64) bool { return z <= 0 }
		if below(za) == below(zb) {
			continue
		}
		t := za / (za - zb)
		hits = append(hits, point2{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)})
	}
	if len(hits) < 2 {
		return nil
	}
	// A convex, planar face crossed by a single plane yields exactly one
	// segment; take the first and last crossing found in winding order
	// as its endpoints (sufficient for the convex meshes this pipeline
	// targets; a non-convex face could in principle cross more than
	// twice, which we do not attempt to split further).
	return []segment{{hits[0], hits[len(hits)-1]}}
}

const stitchEpsilon = 1e-9

func near(a, b point2) bool {
	return math.Abs(a.x-b.x) < stitchEpsilon && math.Abs(a.y-b.y) < stitchEpsilon
}

// stitchSegments chains directed segments into closed rings by matching
// each segment's end to the next segment's start. Manifold meshes
// produce exactly this: at any Z plane, every crossing point is shared
// by exactly two faces, contributing one outgoing and one incoming
// segment end to it.
func stitchSegments(segs []segment) [][]point2 {
	used := make([]bool, len(segs))
	var rings [][]point2
	for start := range segs {
		if used[start] {
			continue
		}
		ring := []point2{segs[start].a}
		cur := segs[start].b
		used[start] = true
		for i := 0; i < len(segs)+1; i++ {
			if near(cur, ring[0]) {
				break
			}
			ring = append(ring, cur)
			next := -1
			for j, s := range segs {
				if used[j] {
					continue
				}
				if near(s.a, cur) {
					next = j
					break
				}
			}
			if next == -1 {
				break // open chain (non-manifold input); emit what we have
			}
			used[next] = true
			cur = segs[next].b
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}
