package lower

import (
	"math"

	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/syntax"
)

// lower2DBody lowers the forms nested directly under a linear_extrude
// into a flat polygon set: only circle/square are legal 2D leaves, and
// siblings combine by union (the common SCAD idiom of extruding a
// union of 2D shapes).
func (l *lowerer) lower2DBody(forms []*syntax.Form) ([]csg3.Polygon2, error) {
	var out []csg3.Polygon2
	for _, f := range forms {
		if f.Assign {
			l.env[f.Functor] = f.Args[0].Value
			continue
		}
		args := newArgSet(f.Args)
		switch f.Functor {
		case "circle":
			p, err := l.lowerCirclePolygon(f, args)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		case "square":
			p, err := l.lowerSquarePolygon(f, args)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		default:
			return nil, diag.New(diag.Lower, f.Location, "linear_extrude: unsupported 2D body functor %q", f.Functor)
		}
	}
	return out, nil
}

func (l *lowerer) lowerCirclePolygon(f *syntax.Form, args argSet) (csg3.Polygon2, error) {
	r, err := l.requireNumber(f.Location, "circle", "r", args.get("r", 0))
	if err != nil {
		return csg3.Polygon2{}, err
	}
	if r <= 0 {
		return csg3.Polygon2{}, diag.New(diag.Lower, f.Location, "circle: r must be positive, found %g", r)
	}
	n := facetsOf(args)
	ring := make(csg3.Ring, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = csg3.Point2{X: r * math.Cos(theta), Y: r * math.Sin(theta), Location: f.Location}
	}
	return csg3.Polygon2{Rings: []csg3.Ring{ring}}, nil
}

func (l *lowerer) lowerSquarePolygon(f *syntax.Form, args argSet) (csg3.Polygon2, error) {
	sizeArg := args.get("size", 0)
	sizeArg = l.env.resolve(sizeArg)
	var sx, sy float64
	switch v := sizeArg.(type) {
	case nil:
		return csg3.Polygon2{}, diag.New(diag.Lower, f.Location, "square: missing required argument %q", "size")
	case *syntax.Array:
		if len(v.Elems) != 2 {
			return csg3.Polygon2{}, diag.New(diag.Lower, v.Location, "square: size array must have 2 elements")
		}
		var ok1, ok2 bool
		sx, ok1 = numberOf(l.env.resolve(v.Elems[0]))
		sy, ok2 = numberOf(l.env.resolve(v.Elems[1]))
		if !ok1 || !ok2 {
			return csg3.Polygon2{}, diag.New(diag.Lower, v.Location, "square: size elements must be numbers")
		}
	default:
		n, ok := numberOf(sizeArg)
		if !ok {
			return csg3.Polygon2{}, diag.New(diag.Lower, sizeArg.Loc(), "square: size must be a number or a 2-element array")
		}
		sx, sy = n, n
	}
	if sx <= 0 || sy <= 0 {
		return csg3.Polygon2{}, diag.New(diag.Lower, f.Location, "square: size must be strictly positive")
	}
	ring := csg3.Ring{
		{X: 0, Y: 0, Location: f.Location},
		{X: sx, Y: 0, Location: f.Location},
		{X: sx, Y: sy, Location: f.Location},
		{X: 0, Y: sy, Location: f.Location},
	}
	return csg3.Polygon2{Rings: []csg3.Ring{ring}}, nil
}

// lowerLinearExtrude implements `linear_extrude(height=h) { circle(...); }`.
func (l *lowerer) lowerLinearExtrude(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	h, err := l.requireNumber(f.Location, "linear_extrude", "height", args.get("height", 0))
	if err != nil {
		return nil, err
	}
	if h <= 0 {
		return nil, diag.New(diag.Lower, f.Location, "linear_extrude: height must be positive, found %g", h)
	}
	body, err := l.lower2DBody(f.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, diag.New(diag.Lower, f.Location, "linear_extrude: empty 2D body")
	}
	return &csg3.Embed2D{
		Base:   csg3.Base{Location: f.Location, Graphics: gc},
		Height: h,
		Body:   body,
	}, nil
}

// lowerCircle/lowerSquare handle a bare top-level circle()/square() used
// outside of linear_extrude — not meaningful for the 3D pipeline on
// their own, so they are a Lower-kind error rather than silently
// dropped (a silent drop would make a typo in functor placement
// indistinguishable from an intentionally empty model).
func (l *lowerer) lowerCircle(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	return nil, diag.New(diag.Lower, f.Location, "circle: only valid inside linear_extrude")
}

func (l *lowerer) lowerSquare(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	return nil, diag.New(diag.Lower, f.Location, "square: only valid inside linear_extrude")
}
