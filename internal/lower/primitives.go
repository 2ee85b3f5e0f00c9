package lower

import (
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/syntax"
)

const defaultFacets = 32

func facetsOf(args argSet) int {
	for _, key := range []string{"$fn", "fn"} {
		if v, ok := args.byKey[key]; ok {
			if n, ok := numberOf(v); ok && n > 0 {
				return int(n)
			}
		}
	}
	return defaultFacets
}

// lowerCube implements `cube(size)` / `cube([x,y,z])` (spec §8 scenario 2).
func (l *lowerer) lowerCube(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	if err := requireNoExtraArgs(f, 2); err != nil {
		return nil, err
	}
	size, err := l.vec3Of("cube", "size", args.get("size", 0))
	if err != nil {
		return nil, err
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, diag.New(diag.Lower, f.Location, "cube: size must be strictly positive, found %v", size)
	}
	pts := []csg3.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: size.X, Y: 0, Z: 0}, {X: size.X, Y: size.Y, Z: 0}, {X: 0, Y: size.Y, Z: 0},
		{X: 0, Y: 0, Z: size.Z}, {X: size.X, Y: 0, Z: size.Z}, {X: size.X, Y: size.Y, Z: size.Z}, {X: 0, Y: size.Y, Z: size.Z},
	}
	faces := [][]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	return &csg3.Polyhedron{
		Base:   csg3.Base{Location: f.Location, Graphics: gc},
		Points: pts,
		Faces:  faces,
	}, nil
}

// lowerSphere implements `sphere(r)` / `sphere(r=..., fn=...)`.
func (l *lowerer) lowerSphere(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	r, err := l.requireNumber(f.Location, "sphere", "r", args.get("r", 0))
	if err != nil {
		return nil, err
	}
	if r <= 0 {
		return nil, diag.New(diag.Lower, f.Location, "sphere: r must be positive, found %g", r)
	}
	return &csg3.Sphere{
		Base:   csg3.Base{Location: f.Location, Graphics: gc},
		Radius: r,
		Facets: facetsOf(args),
	}, nil
}

// lowerCylinder implements `cylinder(h, r)` / `cylinder(h=.., r1=.., r2=..)`.
func (l *lowerer) lowerCylinder(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	h, err := l.requireNumber(f.Location, "cylinder", "h", args.get("h", 0))
	if err != nil {
		return nil, err
	}
	if h <= 0 {
		return nil, diag.New(diag.Lower, f.Location, "cylinder: h must be positive, found %g", h)
	}
	r, err := l.optionalNumber(f.Location, "cylinder", "r", args.get("r", 1), 1)
	if err != nil {
		return nil, err
	}
	r1, err := l.optionalNumber(f.Location, "cylinder", "r1", args.byKey["r1"], r)
	if err != nil {
		return nil, err
	}
	r2, err := l.optionalNumber(f.Location, "cylinder", "r2", args.byKey["r2"], r)
	if err != nil {
		return nil, err
	}
	if r1 < 0 || r2 < 0 || (r1 == 0 && r2 == 0) {
		return nil, diag.New(diag.Lower, f.Location, "cylinder: r1/r2 must be non-negative and not both zero")
	}
	return &csg3.Cylinder{
		Base:   csg3.Base{Location: f.Location, Graphics: gc},
		R1:     r1,
		R2:     r2,
		Height: h,
		Facets: facetsOf(args),
	}, nil
}

// lowerPolyhedron implements `polyhedron(points=[...], faces=[[...],...])`.
func (l *lowerer) lowerPolyhedron(f *syntax.Form, args argSet, gc csg3.GC) (csg3.Node, error) {
	pointsArg := args.get("points", 0)
	if pointsArg == nil {
		return nil, diag.New(diag.Lower, f.Location, "polyhedron: missing required argument %q", "points")
	}
	pointsArr, ok := l.env.resolve(pointsArg).(*syntax.Array)
	if !ok {
		return nil, diag.New(diag.Lower, pointsArg.Loc(), "polyhedron: %q must be an array", "points")
	}
	pts := make([]csg3.Vec3, len(pointsArr.Elems))
	for i, e := range pointsArr.Elems {
		v, err := l.vec3Of("polyhedron", "points", e)
		if err != nil {
			return nil, err
		}
		pts[i] = v
	}

	facesArg := args.get("faces", 1)
	if facesArg == nil {
		return nil, diag.New(diag.Lower, f.Location, "polyhedron: missing required argument %q", "faces")
	}
	facesArr, ok := l.env.resolve(facesArg).(*syntax.Array)
	if !ok {
		return nil, diag.New(diag.Lower, facesArg.Loc(), "polyhedron: %q must be an array", "faces")
	}
	faces := make([][]int, len(facesArr.Elems))
	for i, fe := range facesArr.Elems {
		idxArr, ok := l.env.resolve(fe).(*syntax.Array)
		if !ok {
			return nil, diag.New(diag.Lower, fe.Loc(), "polyhedron: each face must be an array of point indices")
		}
		idx := make([]int, len(idxArr.Elems))
		for j, ie := range idxArr.Elems {
			n, ok := numberOf(l.env.resolve(ie))
			if !ok || n < 0 || int(n) >= len(pts) {
				return nil, diag.New(diag.Lower, ie.Loc(), "polyhedron: face index out of range")
			}
			idx[j] = int(n)
		}
		faces[i] = idx
	}

	return &csg3.Polyhedron{
		Base:   csg3.Base{Location: f.Location, Graphics: gc},
		Points: pts,
		Faces:  faces,
	}, nil
}
