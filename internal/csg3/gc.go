package csg3

import "gocsg/internal/syntax"

// Color is an RGBA color in the [0,1] range, the unit the emitters and
// the PS color-flag parsing both work in.
type Color struct {
	R, G, B, A float64
}

// DefaultColor is the color a node inherits when no ancestor set one.
var DefaultColor = Color{R: 0.5, G: 0.5, B: 1, A: 1}

// GC is the inherited graphics context (spec §3, §4.3): a color and the
// four SCAD modifier bits, accumulated down the tree root-to-leaf. Every
// CSG-3 node carries the GC that applied to it at the point it was
// lowered. Of the flags, only the `!` show-only bit is also collected
// for the whole tree (Tree.AnyShowOnly), so the slicer can honor it
// without re-walking the tree (spec §4.3, "the root collects these at
// each node").
type GC struct {
	Color Color
	Mods  syntax.Modifier
}

// Inherit computes the GC a child sees given its own modifier bits and
// (optionally) an overriding color. SCAD semantics: modifier bits
// accumulate (OR) down the tree; a child's own color, if set, replaces
// the inherited one for itself and its descendants.
func (gc GC) Inherit(mods syntax.Modifier, color *Color) GC {
	child := GC{Color: gc.Color, Mods: gc.Mods | mods}
	if color != nil {
		child.Color = *color
	}
	return child
}

// ShowOnly reports whether the ModShowOnly bit is set.
func (gc GC) ShowOnly() bool { return gc.Mods&syntax.ModShowOnly != 0 }

// Disabled reports whether the ModDisable bit is set.
func (gc GC) Disabled() bool { return gc.Mods&syntax.ModDisable != 0 }

// Background reports whether the ModBackground bit is set.
func (gc GC) Background() bool { return gc.Mods&syntax.ModBackground != 0 }

// Highlight reports whether the ModHighlight bit is set.
func (gc GC) Highlight() bool { return gc.Mods&syntax.ModHighlight != 0 }
