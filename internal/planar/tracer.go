package planar

import (
	"fmt"
	"io"

	"gocsg/internal/csg3"
)

// Tracer replaces the source's process-wide mutable PostScript trace of
// the boolean engine (spec §9, "Global debug PS trace") with an
// explicit object threaded into every Reducer entry point (the
// Triangulator methods take no tracer).
// A nil *Tracer means tracing is disabled; every method is a no-op on a
// nil receiver so call sites never need a liveness check.
type Tracer struct {
	w      io.Writer
	layer  int
	nextID int
}

// NewTracer wraps w, emitting a minimal PostScript preamble.
func NewTracer(w io.Writer) *Tracer {
	t := &Tracer{w: w}
	fmt.Fprintln(t.w, "%!PS-Adobe-3.0")
	return t
}

// Layer marks the start of tracing for layer i; subsequent Step calls
// are labeled with it until the next Layer call.
func (t *Tracer) Layer(i int) {
	if t == nil {
		return
	}
	t.layer = i
	fmt.Fprintf(t.w, "%% layer %d\n", i)
}

// Step records one boolean-engine operation's input/output polygon sets
// for offline visual debugging.
func (t *Tracer) Step(op string, in, out csg3.PolygonSet) {
	if t == nil {
		return
	}
	t.nextID++
	fmt.Fprintf(t.w, "%% layer %d step %d: %s (in=%d polys, out=%d polys)\n",
		t.layer, t.nextID, op, len(in), len(out))
	for _, poly := range out {
		for _, ring := range poly.Rings {
			if len(ring) == 0 {
				continue
			}
			fmt.Fprintf(t.w, "newpath %g %g moveto\n", ring[0].X, ring[0].Y)
			for _, p := range ring[1:] {
				fmt.Fprintf(t.w, "%g %g lineto\n", p.X, p.Y)
			}
			fmt.Fprintln(t.w, "closepath stroke")
		}
	}
}

// Close emits the PostScript trailer. Safe to call on a nil Tracer.
func (t *Tracer) Close() error {
	if t == nil {
		return nil
	}
	_, err := io.WriteString(t.w, "%%EOF\n")
	return err
}
