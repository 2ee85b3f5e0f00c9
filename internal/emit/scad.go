package emit

import (
	"fmt"
	"io"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/planar"
)

// scadEmitter echoes the sliced 2D tree back out as SCAD-like surface
// syntax: one `polygon(points=[...]);` form per polygon of a layer, the
// layer's polygons grouped under a translate to the layer's bottom Z
// and a linear_extrude of the layer thickness — a human-readable round-trip of what the driver computed,
// not a re-parseable reconstruction of the original input.
type scadEmitter struct{}

func (scadEmitter) Emit(w io.Writer, out *planar.Output, zr csg3.ZRange) error {
	bw := bufWriter(w)
	var err error
	writeln := func(format string, args ...any) {
		if err == nil {
			err = fprintf(bw, format+"\n", args...)
		}
	}
	writeln("union() {")
	for i, cell := range out.Cells {
		writeln("  translate([0,0,%g]) linear_extrude(height=%g) {", zr.At(i)-zr.Step/2, zr.Step)
		writeScadCell(writeln, cell)
		writeln("  }")
	}
	writeln("}")
	return flushErr(bw, err)
}

func writeScadCell(writeln func(string, ...any), cell *csg2.Cell) {
	if cell == nil {
		return
	}
	for _, poly := range cell.Polys {
		writeln("    polygon(points=%s);", ringPointsLiteral(poly))
	}
}

func ringPointsLiteral(poly csg3.Polygon2) string {
	s := "["
	for i, ring := range poly.Rings {
		if i > 0 {
			s += ","
		}
		for j, p := range ring {
			if j > 0 {
				s += ","
			}
			s += pointLiteral(p)
		}
	}
	return s + "]"
}

func pointLiteral(p csg3.Point2) string {
	return fmt.Sprintf("[%g,%g]", p.X, p.Y)
}
