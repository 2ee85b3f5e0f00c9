package emit

import (
	"fmt"
	"io"
	"strings"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/planar"
)

// jsEmitter writes a small JavaScript array literal, one entry per
// layer, each holding the layer's Z plane and polygon rings, plus (when
// pass 2 ran) the layer's diff cell under a "changed" key — the shape a
// browser-side layer viewer consumes.
type jsEmitter struct{}

func (jsEmitter) Emit(w io.Writer, out *planar.Output, zr csg3.ZRange) error {
	bw := bufWriter(w)
	var err error
	writeln := func(format string, args ...any) {
		if err == nil {
			err = fprintf(bw, format+"\n", args...)
		}
	}
	writeln("const layers = [")
	for i, cell := range out.Cells {
		writeln("  {")
		writeln("    \"z\": %g,", zr.At(i))
		hasDiff := i < len(out.DiffCells) && out.DiffCells[i] != nil
		if hasDiff {
			writeln("    \"polys\": %s,", polysToJS(cell))
			writeln("    \"changed\": %s", polysToJS(out.DiffCells[i]))
		} else {
			writeln("    \"polys\": %s", polysToJS(cell))
		}
		if i+1 < len(out.Cells) {
			writeln("  },")
		} else {
			writeln("  }")
		}
	}
	writeln("];")
	return flushErr(bw, err)
}

func polysToJS(cell *csg2.Cell) string {
	if cell == nil {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for pi, poly := range cell.Polys {
		if pi > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		for ri, ring := range poly.Rings {
			if ri > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('[')
			for vi, p := range ring {
				if vi > 0 {
					b.WriteByte(',')
				}
				fmt.Fprintf(&b, "[%g,%g]", p.X, p.Y)
			}
			b.WriteByte(']')
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}
