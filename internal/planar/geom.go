package planar

import "gocsg/internal/csg3"

// pointInRing is the standard ray-casting point-in-polygon test,
// treating ring as a closed loop.
func pointInRing(p csg3.Point2, ring csg3.Ring) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// ringContainsRing reports whether every vertex of inner lies within
// outer (a cheap, sufficient containment test for the axis-aligned and
// convex shapes this pipeline's primitives produce).
func ringContainsRing(outer, inner csg3.Ring) bool {
	if len(inner) == 0 {
		return false
	}
	for _, p := range inner {
		if !pointInRing(p, outer) {
			return false
		}
	}
	return true
}

// signedArea is twice the signed area of ring (shoelace formula);
// positive for counter-clockwise winding.
func signedArea(ring csg3.Ring) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// clipConvex intersects subject with a convex clip polygon using
// Sutherland-Hodgman, the standard algorithm for convex-clip-region
// polygon clipping. Only valid when clip is convex; every primitive in
// this pipeline's lowering (circle/square/cube cross-sections) produces
// convex rings, which is the case this reference engine targets.
func clipConvex(subject, clip csg3.Ring) csg3.Ring {
	if len(subject) == 0 || len(clip) < 3 {
		return nil
	}
	out := subject
	n := len(clip)
	for i := 0; i < n && len(out) > 0; i++ {
		a, b := clip[i], clip[(i+1)%n]
		out = clipEdge(out, a, b)
	}
	return out
}

// clipEdge clips ring against the half-plane to the left of directed
// edge a->b (assuming clip is wound counter-clockwise).
func clipEdge(ring csg3.Ring, a, b csg3.Point2) csg3.Ring {
	var out csg3.Ring
	n := len(ring)
	for i := 0; i < n; i++ {
		cur := ring[i]
		prev := ring[(i-1+n)%n]
		curIn := isLeft(a, b, cur)
		prevIn := isLeft(a, b, prev)
		if curIn {
			if !prevIn {
				out = append(out, segmentIntersect(prev, cur, a, b))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, segmentIntersect(prev, cur, a, b))
		}
	}
	return out
}

func isLeft(a, b, p csg3.Point2) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) >= 0
}

func segmentIntersect(p1, p2, a, b csg3.Point2) csg3.Point2 {
	x1, y1, x2, y2 := p1.X, p1.Y, p2.X, p2.Y
	x3, y3, x4, y4 := a.X, a.Y, b.X, b.Y
	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom == 0 {
		return p2
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	return csg3.Point2{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1), Location: p1.Location}
}

func ensureCCW(ring csg3.Ring) csg3.Ring {
	if signedArea(ring) >= 0 {
		return ring
	}
	rev := make(csg3.Ring, len(ring))
	for i, p := range ring {
		rev[len(ring)-1-i] = p
	}
	return rev
}
