package csg3

import "math"

// BoundingBox walks every leaf of t once (spec §4.3: "Iteration visits
// every leaf once in O(vertices)") and returns the accumulated box.
//
// max selects between the two modes spec §4.3 describes: false
// ("normal") skips geometry under a Sub's subtracted operands (it will
// end up outside the final solid); true ("max") includes it.
func BoundingBox(t *Tree, max bool) Box {
	var bb Box
	if t == nil || t.Root == nil {
		return bb
	}
	walkBBox(t.Root, max, &bb)
	return bb
}

func walkBBox(n Node, max bool, bb *Box) {
	switch v := n.(type) {
	case *Sphere:
		extendSphere(bb, v.Radius)
	case *Cylinder:
		extendCylinder(bb, v)
	case *Polyhedron:
		for _, p := range v.Points {
			bb.Extend(p)
		}
	case *Embed2D:
		extendEmbed2D(bb, v)
	case *Translate:
		var child Box
		walkBBox(v.Child, max, &child)
		if child.Valid {
			bb.Extend(child.Min.Add(v.Offset))
			bb.Extend(child.Max.Add(v.Offset))
		}
	case *Rotate:
		var child Box
		walkBBox(v.Child, max, &child)
		if child.Valid {
			extendRotatedZ(bb, child, v.DegreesZ)
		}
	case *Scale:
		var child Box
		walkBBox(v.Child, max, &child)
		if child.Valid {
			bb.Extend(scaleVec(child.Min, v.Factor))
			bb.Extend(scaleVec(child.Max, v.Factor))
		}
	case *Sub:
		if len(v.Children) > 0 {
			walkBBox(v.Children[0], max, bb)
		}
		if max {
			for _, c := range v.Children[1:] {
				walkBBox(c, max, bb)
			}
		}
	case *Add:
		for _, c := range v.Children {
			walkBBox(c, max, bb)
		}
	case *Intersect:
		for _, c := range v.Children {
			walkBBox(c, max, bb)
		}
	}
}

func extendSphere(bb *Box, r float64) {
	bb.Extend(Vec3{-r, -r, -r})
	bb.Extend(Vec3{r, r, r})
}

func extendCylinder(bb *Box, c *Cylinder) {
	r := math.Max(c.R1, c.R2)
	bb.Extend(Vec3{-r, -r, 0})
	bb.Extend(Vec3{r, r, c.Height})
}

func extendEmbed2D(bb *Box, e *Embed2D) {
	for _, poly := range e.Body {
		for _, ring := range poly.Rings {
			for _, p := range ring {
				bb.Extend(Vec3{p.X, p.Y, 0})
				bb.Extend(Vec3{p.X, p.Y, e.Height})
			}
		}
	}
}

func scaleVec(v, f Vec3) Vec3 { return Vec3{v.X * f.X, v.Y * f.Y, v.Z * f.Z} }

// extendRotatedZ conservatively extends bb by the axis-aligned box of
// child rotated by deg degrees about Z: it extends all four XY corners
// at the child's Z extremes, which is exact for box corners and a safe
// over-approximation in general (sufficient for this pipeline, since
// rotation only ever wraps leaves whose true extent is itself a
// bounding box in the callers this driver accepts).
func extendRotatedZ(bb *Box, child Box, deg float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	corners := []Vec3{
		{child.Min.X, child.Min.Y, 0},
		{child.Max.X, child.Min.Y, 0},
		{child.Min.X, child.Max.Y, 0},
		{child.Max.X, child.Max.Y, 0},
	}
	for _, c := range corners {
		rx := c.X*cos - c.Y*sin
		ry := c.X*sin + c.Y*cos
		bb.Extend(Vec3{rx, ry, child.Min.Z})
		bb.Extend(Vec3{rx, ry, child.Max.Z})
	}
}

// ZRange is the computed layer sampling range (spec §3: "Range.
// {min, step, count}").
type ZRange struct {
	Min, Step float64
	Count     int
}

// At returns the Z-plane sampled by layer i.
func (r ZRange) At(i int) float64 { return r.Min + float64(i)*r.Step }

// SelectZRange implements spec §4.3's Z range selection: given optional
// user overrides for zMin/zMax (nil meaning "use the bbox default") and
// a required positive zStep, compute the half-step-centered range.
func SelectZRange(bb Box, zMin, zMax *float64, zStep float64) ZRange {
	min := bb.Min.Z + zStep/2
	if zMin != nil {
		min = *zMin
	}
	max := bb.Max.Z
	if zMax != nil {
		max = *zMax
	}
	count := int(math.Floor((max-min)/zStep)) + 1
	if count < 1 {
		count = 1
	}
	return ZRange{Min: min, Step: zStep, Count: count}
}
