package emit

import (
	"io"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/planar"
)

// stlEmitter writes an ASCII STL solid: each layer's polygon set is
// extruded into a slab spanning [z-step/2, z+step/2] (spec §8 scenario
// 2, "STL emits 2 extruded slabs"), built from top/bottom cap triangles
// (from the cell's triangulation, falling back to a simple outer-ring
// fan when triangulation was disabled) plus one vertical wall quad per
// boundary edge of every ring, including holes.
type stlEmitter struct{}

func (stlEmitter) Emit(w io.Writer, out *planar.Output, zr csg3.ZRange) error {
	bw := bufWriter(w)
	var err error
	writeln := func(format string, args ...any) {
		if err == nil {
			err = fprintf(bw, format+"\n", args...)
		}
	}
	writeln("solid gocsg")
	for i, cell := range out.Cells {
		if cell == nil || len(cell.Polys) == 0 {
			continue
		}
		z := zr.At(i)
		lo, hi := z-zr.Step/2, z+zr.Step/2
		for _, tri := range capTriangles(cell) {
			a, b, c := cell.Points[tri[0]], cell.Points[tri[1]], cell.Points[tri[2]]
			writeFacet(writeln, p3(a, lo), p3(c, lo), p3(b, lo)) // bottom, flipped for outward normal
			writeFacet(writeln, p3(a, hi), p3(b, hi), p3(c, hi)) // top
		}
		for _, poly := range cell.Polys {
			for _, ring := range poly.Rings {
				writeWalls(writeln, ring, lo, hi)
			}
		}
	}
	writeln("endsolid gocsg")
	return flushErr(bw, err)
}

func p3(p csg3.Point2, z float64) [3]float64 { return [3]float64{p.X, p.Y, z} }

func writeFacet(writeln func(string, ...any), a, b, c [3]float64) {
	writeln("  facet normal 0 0 0")
	writeln("    outer loop")
	writeln("      vertex %g %g %g", a[0], a[1], a[2])
	writeln("      vertex %g %g %g", b[0], b[1], b[2])
	writeln("      vertex %g %g %g", c[0], c[1], c[2])
	writeln("    endloop")
	writeln("  endfacet")
}

func writeWalls(writeln func(string, ...any), ring csg3.Ring, lo, hi float64) {
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		writeFacet(writeln, p3(a, lo), p3(b, lo), p3(b, hi))
		writeFacet(writeln, p3(a, lo), p3(b, hi), p3(a, hi))
	}
}

// capTriangles returns cell's triangulation, computing a best-effort
// outer-ring fan (ignoring holes) when triangulation was never run.
func capTriangles(cell *csg2.Cell) []csg3.Triangle {
	if len(cell.Tri) > 0 {
		return cell.Tri
	}
	if cell.Points == nil {
		cell.FlattenPoints()
	}
	var tris []csg3.Triangle
	offset := 0
	for _, poly := range cell.Polys {
		outer := poly.Outer()
		for i := 1; i+1 < len(outer); i++ {
			tris = append(tris, csg3.Triangle{offset, offset + i, offset + i + 1})
		}
		for _, r := range poly.Rings {
			offset += len(r)
		}
	}
	return tris
}
