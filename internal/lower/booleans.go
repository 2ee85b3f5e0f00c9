package lower

import (
	"gocsg/internal/csg3"
	"gocsg/internal/syntax"
)

// lowerUnion implements `union(){ ... }`, an explicit spelling of the
// implicit grouping lowerBody already performs for bare sibling forms.
func (l *lowerer) lowerUnion(f *syntax.Form, gc csg3.GC) (csg3.Node, error) {
	children, err := l.lowerChildren(f.Body, gc)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, nil
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &csg3.Add{Base: csg3.Base{Location: f.Location, Graphics: gc}, Children: children}, nil
}

// lowerDifference implements `difference(){ first; rest... }`: first
// minus the union of the rest (spec §8 scenario 3).
func (l *lowerer) lowerDifference(f *syntax.Form, gc csg3.GC) (csg3.Node, error) {
	children, err := l.lowerChildren(f.Body, gc)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, nil
	}
	return &csg3.Sub{Base: csg3.Base{Location: f.Location, Graphics: gc}, Children: children}, nil
}

// lowerIntersection implements `intersection(){ ... }`.
func (l *lowerer) lowerIntersection(f *syntax.Form, gc csg3.GC) (csg3.Node, error) {
	children, err := l.lowerChildren(f.Body, gc)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, nil
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &csg3.Intersect{Base: csg3.Base{Location: f.Location, Graphics: gc}, Children: children}, nil
}

// lowerChildren lowers each direct child form, honoring assignments and
// `*`-disabled subtrees the same way lowerBody does, but keeps each
// sibling as its own entry rather than collapsing them into an Add —
// the boolean-node constructors need the individual children.
func (l *lowerer) lowerChildren(forms []*syntax.Form, gc csg3.GC) ([]csg3.Node, error) {
	var out []csg3.Node
	for _, f := range forms {
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
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}
