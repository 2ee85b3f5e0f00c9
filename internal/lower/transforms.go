package lower

import (
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/syntax"
)

// lowerTranslate implements `translate(v) tail`; the tail may be empty,
// a single form, or a braced body, which lowerTailChild unions.
func (l *lowerer) lowerTranslate(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	offset, err := l.vec3Of("translate", "v", args.get("v", 0))
	if err != nil {
		return nil, err
	}
	child, err := l.lowerTailChild(f, gc)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	return &csg3.Translate{Base: csg3.Base{Location: f.Location, Graphics: gc}, Offset: offset, Child: child}, nil
}

// lowerRotate implements `rotate(a)` where a is the Z-axis rotation in
// degrees; this pipeline only ever needs planar rotation since
// everything downstream is sliced on horizontal Z planes.
func (l *lowerer) lowerRotate(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	deg, err := l.requireNumber(f.Location, "rotate", "a", args.get("a", 0))
	if err != nil {
		return nil, err
	}
	child, err := l.lowerTailChild(f, gc)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	return &csg3.Rotate{Base: csg3.Base{Location: f.Location, Graphics: gc}, DegreesZ: deg, Child: child}, nil
}

// lowerScale implements `scale(v)`.
func (l *lowerer) lowerScale(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	factor, err := l.vec3Of("scale", "v", args.get("v", 0))
	if err != nil {
		return nil, err
	}
	child, err := l.lowerTailChild(f, gc)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	return &csg3.Scale{Base: csg3.Base{Location: f.Location, Graphics: gc}, Factor: factor, Child: child}, nil
}

// lowerColor implements `color("#RRGGBB") tail` / `color([r,g,b,a]) tail`,
// overriding the inherited color for the wrapped subtree (spec §4.3's
// graphics-context inheritance: "a child's own color ... replaces the
// inherited one").
func (l *lowerer) lowerColor(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	c, err := l.colorOf(args.get("c", 0))
	if err != nil {
		return nil, err
	}
	childGC := gc.Inherit(0, &c)
	return l.lowerTailChild(f, childGC)
}

func (l *lowerer) colorOf(v syntax.Value) (csg3.Color, error) {
	v = l.env.resolve(v)
	switch val := v.(type) {
	case *syntax.Str:
		return parseHexColor(val.Val)
	case *syntax.Array:
		if len(val.Elems) != 3 && len(val.Elems) != 4 {
			return csg3.Color{}, diag.New(diag.Lower, val.Location, "color: array must have 3 or 4 elements")
		}
		get := func(i int, def float64) (float64, error) {
			if i >= len(val.Elems) {
				return def, nil
			}
			n, ok := numberOf(l.env.resolve(val.Elems[i]))
			if !ok {
				return 0, diag.New(diag.Lower, val.Elems[i].Loc(), "color: component must be a number")
			}
			return n, nil
		}
		r, err := get(0, 0)
		if err != nil {
			return csg3.Color{}, err
		}
		g, err := get(1, 0)
		if err != nil {
			return csg3.Color{}, err
		}
		b, err := get(2, 0)
		if err != nil {
			return csg3.Color{}, err
		}
		a, err := get(3, 1)
		if err != nil {
			return csg3.Color{}, err
		}
		return csg3.Color{R: r, G: g, B: b, A: a}, nil
	default:
		return csg3.Color{}, diag.New(diag.Lower, v.Loc(), "color: argument must be a string or array, found %s", v)
	}
}

func parseHexColor(s string) (csg3.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return csg3.Color{}, diag.New(diag.Lower, diag.Location{}, "color: expected #RRGGBB, found %q", s)
	}
	comp := func(hi, lo byte) (float64, bool) {
		h, ok1 := hexDigit(hi)
		l, ok2 := hexDigit(lo)
		if !ok1 || !ok2 {
			return 0, false
		}
		return float64(h*16+l) / 255, true
	}
	r, ok1 := comp(s[1], s[2])
	g, ok2 := comp(s[3], s[4])
	b, ok3 := comp(s[5], s[6])
	if !ok1 || !ok2 || !ok3 {
		return csg3.Color{}, diag.New(diag.Lower, diag.Location{}, "color: expected #RRGGBB, found %q", s)
	}
	return csg3.Color{R: r, G: g, B: b, A: 1}, nil
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// lowerTailChild lowers the single-form tail a transform functor
// carries (spec §4.2 tail grammar: `";" | "{" body "}" | form`), folding
// a multi-form `{ ... }` tail body into an implicit union same as
// lowerBody does at the top level.
func (l *lowerer) lowerTailChild(f *syntax.Form, gc csg3.GC) (csg3.Node, error) {
	n, _, err := l.lowerBody(f.Body, gc)
	return n, err
}
