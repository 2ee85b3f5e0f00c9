// Package lower walks the surface syntax tree (package syntax) and
// builds the typed CSG-3 tree (package csg3), validating each functor's
// argument names, counts, and types as it goes (spec §4.3). It mirrors
// the teacher's pkg/compiler/codegen.go idiom: one function per node
// kind, a type switch at the single dispatch point, and plain
// diag-wrapped errors rather than panics.
package lower

import (
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/logging"
	"gocsg/internal/syntax"
)

type lowerer struct {
	env env
	// anyShowOnly is set once any form in the body carries the `!`
	// modifier, so Lower can tell the slicer/driver that the tree needs
	// show-only restriction without re-walking it (spec §4.3, "the root
	// collects these at each node").
	anyShowOnly bool
}

// Lower converts a parsed top-level body into a CSG-3 tree. An empty
// body lowers to a Tree with a nil Root (spec §8 scenario 1).
func Lower(body []*syntax.Form) (*csg3.Tree, error) {
	l := &lowerer{env: make(env)}
	root, loc, err := l.lowerBody(body, csg3.GC{Color: csg3.DefaultColor})
	if err != nil {
		return nil, err
	}
	logging.Logger(logging.Lowr).Debugf("lowered body into tree at %s (show-only=%v)", loc, l.anyShowOnly)
	return &csg3.Tree{Root: root, Location: loc, AnyShowOnly: l.anyShowOnly}, nil
}

// lowerBody lowers a sequence of sibling forms, skipping assignments
// (which only populate the environment) and disabled (`*`) subtrees,
// and wrapping more than one remaining child in an implicit union
// (spec §3: the surface `"{"` group functor exists for exactly this).
func (l *lowerer) lowerBody(forms []*syntax.Form, gc csg3.GC) (csg3.Node, diag.Location, error) {
	var loc diag.Location
	var nodes []csg3.Node
	for _, f := range forms {
		if len(forms) > 0 {
			loc = forms[0].Location
		}
		if f.Assign {
			l.env[f.Functor] = f.Args[0].Value
			continue
		}
		childGC := gc.Inherit(f.Mods, nil)
		if childGC.ShowOnly() {
			l.anyShowOnly = true
		}
		if childGC.Disabled() {
			continue
		}
		n, err := l.lowerForm(f, childGC)
		if err != nil {
			return nil, loc, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	switch len(nodes) {
	case 0:
		return nil, loc, nil
	case 1:
		return nodes[0], loc, nil
	default:
		return &csg3.Add{Base: csg3.Base{Location: loc, Graphics: gc}, Children: nodes}, loc, nil
	}
}

func (l *lowerer) lowerForm(f *syntax.Form, gc csg3.GC) (csg3.Node, error) {
	logging.Logger(logging.Lowr).Debugf("lowering functor %q at %s", f.Functor, f.Location)
	if f.Functor == syntax.GroupFunctor {
		n, _, err := l.lowerBody(f.Body, gc)
		return n, err
	}

	args := newArgSet(f.Args)
	switch f.Functor {
	case "cube":
		return l.lowerCube(f, args, gc)
	case "sphere":
		return l.lowerSphere(f, args, gc)
	case "cylinder":
		return l.lowerCylinder(f, args, gc)
	case "polyhedron":
		return l.lowerPolyhedron(f, args, gc)
	case "translate":
		return l.lowerTranslate(f, args, gc)
	case "rotate":
		return l.lowerRotate(f, args, gc)
	case "scale":
		return l.lowerScale(f, args, gc)
	case "color":
		return l.lowerColor(f, args, gc)
	case "union":
		return l.lowerUnion(f, gc)
	case "difference":
		return l.lowerDifference(f, gc)
	case "intersection":
		return l.lowerIntersection(f, gc)
	case "linear_extrude":
		return l.lowerLinearExtrude(f, args, gc)
	case "circle":
		return l.lowerCircle(f, args, gc)
	case "square":
		return l.lowerSquare(f, args, gc)
	default:
		return nil, diag.New(diag.Lower, f.Location, "unrecognized functor %q", f.Functor)
	}
}

func requireNoExtraArgs(f *syntax.Form, max int) error {
	if len(f.Args) > max {
		return diag.New(diag.Lower, f.Args[max].Value.Loc(), "%s: too many arguments", f.Functor)
	}
	return nil
}
