// Package emit selects and runs the output-format writer (spec §6,
// component G). Each writer turns a planar.Output plus the Z-range it
// was sliced at into a byte stream; selection between them is either
// forced by a `--dump-*` flag or inferred from the `-o` extension.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/logging"
	"gocsg/internal/planar"
)

// Format identifies one of the four supported writers.
type Format int

const (
	STL Format = iota
	JS
	SCAD
	PS
)

func (f Format) String() string {
	switch f {
	case STL:
		return "stl"
	case JS:
		return "js"
	case SCAD:
		return "scad"
	case PS:
		return "ps"
	default:
		return "unknown"
	}
}

// FromExtension infers a Format from a -o path's extension (spec §6:
// ".stl"->STL, ".js"->JS, ".scad"|".csg"->SCAD, ".ps"->PostScript).
// Unknown extensions are a CLI error.
func FromExtension(path string) (Format, error) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return 0, diag.New(diag.CLI, diag.Location{}, "cannot infer output format: %q has no extension", path)
	}
	switch strings.ToLower(path[i+1:]) {
	case "stl":
		return STL, nil
	case "js":
		return JS, nil
	case "scad", "csg":
		return SCAD, nil
	case "ps":
		return PS, nil
	default:
		return 0, diag.New(diag.CLI, diag.Location{}, "unknown output extension %q", path[i:])
	}
}

// PSOptions carries the --ps-scale and color-flag inputs the PS writer
// consumes (spec §6).
type PSOptions struct {
	// Scale selects 0 (no-op), 1 (fit to bbox), or 2 (fit to max bbox).
	Scale   int
	Palette []csg3.Color
}

// Emitter writes one Format's representation of out (sliced at the Z
// planes zr describes) to w.
type Emitter interface {
	Emit(w io.Writer, out *planar.Output, zr csg3.ZRange) error
}

// New returns the Emitter for f. ps is only consulted when f == PS.
func New(f Format, ps PSOptions) Emitter {
	logging.Logger(logging.Emit).Debugf("selected %s emitter", f)
	switch f {
	case STL:
		return stlEmitter{}
	case JS:
		return jsEmitter{}
	case SCAD:
		return scadEmitter{}
	case PS:
		return psEmitter{opts: ps}
	default:
		return stlEmitter{}
	}
}

// bufWriter wraps w in a bufio.Writer and flushes on return, the pattern
// every writer in this package follows so a caller's sink only needs to
// implement io.Writer (spec §6, "Stream sink... requesting a final flush
// at end").
func bufWriter(w io.Writer) *bufio.Writer { return bufio.NewWriter(w) }

func flushErr(bw *bufio.Writer, err error) error {
	if ferr := bw.Flush(); err == nil {
		return ferr
	}
	return err
}

func fprintf(bw *bufio.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(bw, format, args...)
	return err
}
