package slicer

import "math"

// zInvert maps a world-space Z down into a leaf's local frame by
// threading it through every ancestor translate/scale encountered while
// descending from the tree root to that leaf (spec §4.3's slicer
// "skeleton": each leaf needs to know, for a requested world Z plane,
// which local Z its own geometry should be evaluated at). Rotation
// about Z never changes Z, so it contributes no step here.
type zInvert func(worldZ float64) float64

func identityZ(z float64) float64 { return z }

func (f zInvert) translate(dz float64) zInvert {
	return func(z float64) float64 { return f(z) - dz }
}

func (f zInvert) scale(factor float64) zInvert {
	return func(z float64) float64 { return f(z) / factor }
}

// xyOp is one ancestor transform's effect on the X/Y plane, recorded in
// root-to-leaf encounter order. Mapping a leaf-local point up to world
// space applies these in the REVERSE of that order: the transform
// closest to the leaf acts on the leaf's own coordinates first, then
// each ancestor further out applies in turn, ending at the root (which
// is the world frame).
type xyOp struct {
	kind       xyKind
	dx, dy     float64
	sx, sy     float64
	cos, sin   float64
}

type xyKind int

const (
	xyTranslate xyKind = iota
	xyScale
	xyRotate
)

// xyChain is an immutable, append-only list of xyOps; each append
// returns a new chain built on a fresh copy of the old one, matching the
// read-only-ancestors discipline the rest of the pipeline uses.
type xyChain []xyOp

func (c xyChain) withTranslate(dx, dy float64) xyChain {
	return append(append(xyChain{}, c...), xyOp{kind: xyTranslate, dx: dx, dy: dy})
}

func (c xyChain) withScale(sx, sy float64) xyChain {
	return append(append(xyChain{}, c...), xyOp{kind: xyScale, sx: sx, sy: sy})
}

func (c xyChain) withRotateDegrees(deg float64) xyChain {
	rad := deg * math.Pi / 180
	return append(append(xyChain{}, c...), xyOp{kind: xyRotate, cos: math.Cos(rad), sin: math.Sin(rad)})
}

// forward maps a leaf-local (x,y) up to world (x,y) by applying the
// chain's ops from the last (leaf-closest) to the first (root-closest).
func (c xyChain) forward(x, y float64) (float64, float64) {
	for i := len(c) - 1; i >= 0; i-- {
		op := c[i]
		switch op.kind {
		case xyTranslate:
			x, y = x+op.dx, y+op.dy
		case xyScale:
			x, y = x*op.sx, y*op.sy
		case xyRotate:
			x, y = x*op.cos-y*op.sin, x*op.sin+y*op.cos
		}
	}
	return x, y
}
