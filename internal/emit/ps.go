package emit

import (
	"io"

	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/planar"
)

// psEmitter writes one PostScript page per layer, stroking every
// polygon ring. Scale selects how the page's coordinate system relates
// to the model's bounding box (spec §6's `--ps-scale`): 0 leaves model
// units as PostScript points, 1 fits the XY extent of the reduced cells
// to the page, 2 fits the extent of the reduced cells together with the
// layer-diff cells (filled only when the diff pass ran). Neither mode
// includes geometry removed by a subtraction.
type psEmitter struct{ opts PSOptions }

const psPageSize = 612 // 8.5in at 72dpi, the default PostScript page width

func (e psEmitter) Emit(w io.Writer, out *planar.Output, zr csg3.ZRange) error {
	bw := bufWriter(w)
	var err error
	writeln := func(format string, args ...any) {
		if err == nil {
			err = fprintf(bw, format+"\n", args...)
		}
	}
	writeln("%%!PS-Adobe-3.0")
	scale, dx, dy := e.scaleFactors(out)
	for i, cell := range out.Cells {
		writeln("%% layer %d z=%g", i, zr.At(i))
		writeln("gsave")
		switch {
		case cell != nil && cell.Highlighted:
			// `#` (spec §4.3): highlighted geometry always renders in red,
			// overriding the palette.
			writeln("1 0 0 setrgbcolor")
		case len(e.opts.Palette) > 0:
			c := e.opts.Palette[i%len(e.opts.Palette)]
			writeln("%g %g %g setrgbcolor", c.R, c.G, c.B)
		}
		writePSCell(writeln, cell, scale, dx, dy)
		writeln("grestore")
		writeln("showpage")
	}
	return flushErr(bw, err)
}

// scaleFactors computes the uniform scale and translation that maps the
// model's XY bounding box onto the page for --ps-scale modes 1 and 2;
// mode 0 is the identity.
func (e psEmitter) scaleFactors(out *planar.Output) (scale, dx, dy float64) {
	if e.opts.Scale == 0 {
		return 1, 0, 0
	}
	minX, minY, maxX, maxY := boundsOf(out, e.opts.Scale == 2)
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return 1, 0, 0
	}
	s := psPageSize / w
	if hs := psPageSize / h; hs < s {
		s = hs
	}
	return s, -minX, -minY
}

// boundsOf scans every cell (or, in "max" mode, every cell's diff
// counterpart too) for its XY extent.
func boundsOf(out *planar.Output, max bool) (minX, minY, maxX, maxY float64) {
	first := true
	scan := func(cell *csg2.Cell) {
		if cell == nil {
			return
		}
		for _, poly := range cell.Polys {
			for _, ring := range poly.Rings {
				for _, p := range ring {
					if first {
						minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
						first = false
					}
					if p.X < minX {
						minX = p.X
					}
					if p.X > maxX {
						maxX = p.X
					}
					if p.Y < minY {
						minY = p.Y
					}
					if p.Y > maxY {
						maxY = p.Y
					}
				}
			}
		}
	}
	for _, c := range out.Cells {
		scan(c)
	}
	if max {
		for _, c := range out.DiffCells {
			scan(c)
		}
	}
	return
}

func writePSCell(writeln func(string, ...any), cell *csg2.Cell, scale, dx, dy float64) {
	if cell == nil {
		return
	}
	for _, poly := range cell.Polys {
		for _, ring := range poly.Rings {
			writePSRing(writeln, ring, scale, dx, dy)
		}
	}
}

func writePSRing(writeln func(string, ...any), ring csg3.Ring, scale, dx, dy float64) {
	if len(ring) == 0 {
		return
	}
	p0 := ring[0]
	writeln("newpath %g %g moveto", (p0.X+dx)*scale, (p0.Y+dy)*scale)
	for _, p := range ring[1:] {
		writeln("%g %g lineto", (p.X+dx)*scale, (p.Y+dy)*scale)
	}
	writeln("closepath stroke")
}
