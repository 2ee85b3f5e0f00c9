package lower

import (
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/syntax"
)

// env resolves a bare identifier used as a value to the value bound to
// it by the most recently lowered `name = value;` assignment form
// (spec §8 scenario 5's `x = [1:2:10];` sugar; see syntax.Form.Assign).
// Assignments are bound in source order, later ones shadowing earlier,
// into one flat map: an assignment inside a nested body stays bound for
// the rest of the input, as there is no block scoping.
type env map[string]syntax.Value

// resolve follows a chain of identifier references to their bound
// value, returning v unchanged if it is not an *syntax.Ident or is an
// identifier with no binding (the lowering functions that consume the
// result will then fail with their own localized "not a number" style
// error, which is the more useful diagnostic).
func (e env) resolve(v syntax.Value) syntax.Value {
	for depth := 0; depth < 32; depth++ {
		id, ok := v.(*syntax.Ident)
		if !ok {
			return v
		}
		bound, ok := e[id.Name]
		if !ok {
			return v
		}
		v = bound
	}
	return v
}

// argSet indexes a call's arguments for by-name-or-position lookup, the
// shape every SCAD-like functor argument list needs (spec §4.3:
// "validates argument names, counts, ranges, and types").
type argSet struct {
	byKey      map[string]syntax.Value
	positional []syntax.Value
}

func newArgSet(args []syntax.Argument) argSet {
	as := argSet{byKey: make(map[string]syntax.Value)}
	for _, a := range args {
		if a.Key != "" {
			as.byKey[a.Key] = a.Value
			continue
		}
		as.positional = append(as.positional, a.Value)
	}
	return as
}

// get returns the argument named key if present; otherwise the pos'th
// positional argument (0-based); otherwise nil.
func (as argSet) get(key string, pos int) syntax.Value {
	if v, ok := as.byKey[key]; ok {
		return v
	}
	if pos < len(as.positional) {
		return as.positional[pos]
	}
	return nil
}

func numberOf(v syntax.Value) (float64, bool) {
	switch n := v.(type) {
	case *syntax.Int:
		return float64(n.Val), true
	case *syntax.Float:
		return n.Val, true
	default:
		return 0, false
	}
}

// requireNumber resolves v through env and extracts a float64, failing
// with a Lower-kind diagnostic naming functor/arg if v is absent or not
// a number.
func (l *lowerer) requireNumber(loc diag.Location, functor, argName string, v syntax.Value) (float64, error) {
	if v == nil {
		return 0, diag.New(diag.Lower, loc, "%s: missing required argument %q", functor, argName)
	}
	v = l.env.resolve(v)
	n, ok := numberOf(v)
	if !ok {
		return 0, diag.New(diag.Lower, v.Loc(), "%s: argument %q must be a number, found %s", functor, argName, v)
	}
	return n, nil
}

// optionalNumber is requireNumber but returns def when v is nil.
func (l *lowerer) optionalNumber(loc diag.Location, functor, argName string, v syntax.Value, def float64) (float64, error) {
	if v == nil {
		return def, nil
	}
	return l.requireNumber(loc, functor, argName, v)
}

// vec3Of resolves v to a 3-element array and extracts X/Y/Z, or treats
// a bare number as a uniform [n,n,n] (SCAD's `scale(2)` / `cube(10)`
// shorthand).
func (l *lowerer) vec3Of(functor, argName string, v syntax.Value) (csg3.Vec3, error) {
	v = l.env.resolve(v)
	if n, ok := numberOf(v); ok {
		return csg3.Vec3{X: n, Y: n, Z: n}, nil
	}
	arr, ok := v.(*syntax.Array)
	if !ok || len(arr.Elems) != 3 {
		return csg3.Vec3{}, diag.New(diag.Lower, v.Loc(), "%s: argument %q must be a number or a 3-element array, found %s", functor, argName, v)
	}
	var out csg3.Vec3
	for i, e := range arr.Elems {
		n, ok := numberOf(l.env.resolve(e))
		if !ok {
			return csg3.Vec3{}, diag.New(diag.Lower, e.Loc(), "%s: argument %q element %d must be a number, found %s", functor, argName, i, e)
		}
		switch i {
		case 0:
			out.X = n
		case 1:
			out.Y = n
		case 2:
			out.Z = n
		}
	}
	return out, nil
}
