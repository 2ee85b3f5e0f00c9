package csg3

import "fmt"

// Vec3 is a point or vector in model space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) String() string { return fmt.Sprintf("[%g, %g, %g]", v.X, v.Y, v.Z) }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)}
}

func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)}
}

// Box is an axis-aligned min/max bounding box. An empty Box has Valid
// false and should not be read; Box.Extend handles the first-point case.
type Box struct {
	Min, Max Vec3
	Valid    bool
}

// Extend grows the box to include p, initializing it if it was empty
// (spec §4.3: "unchanged if the tree is empty", "initializes / updates
// a min-max pair").
func (b *Box) Extend(p Vec3) {
	if !b.Valid {
		b.Min, b.Max = p, p
		b.Valid = true
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union merges o into b in place.
func (b *Box) Union(o Box) {
	if !o.Valid {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Contains2D reports whether p's X/Y lie within b's X/Y range, used by
// the bounding-box-containment property of spec §8.
func (b Box) Contains2D(p Vec3) bool {
	return b.Valid &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
