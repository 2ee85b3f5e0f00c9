// Command gocsg compiles a SCAD-like surface-syntax file into a sliced,
// layer-by-layer 2D representation and emits it in one of four formats
// (spec §1, §6).
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/dump"
	"gocsg/internal/emit"
	"gocsg/internal/layer"
	"gocsg/internal/logging"
	"gocsg/internal/lower"
	"gocsg/internal/planar"
	"gocsg/internal/slicer"
	"gocsg/internal/source"
	"gocsg/internal/syntax"
	"gocsg/pkg/utils"
)

type cliFlags struct {
	zMin, zMax, zStep      float64
	zMinSet, zMaxSet       bool
	dumpSyn, dumpScad      bool
	dumpCSG3, dumpCSG2     bool
	dumpSTL, dumpJS, dumpPS bool
	noTri, noCSG, noDiff   bool
	output                 string
	verbose, quiet         bool
	psScale                int
	colors                 []string
	psTrace                string
	workers                int
}

func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := pflag.NewFlagSet("gocsg", pflag.ContinueOnError)
	f := &cliFlags{}
	fs.Float64Var(&f.zMin, "z-min", 0, "override the default Z-range minimum")
	fs.Float64Var(&f.zMax, "z-max", 0, "override the default Z-range maximum")
	fs.Float64Var(&f.zStep, "z-step", 1, "layer spacing along Z")
	fs.BoolVar(&f.dumpSyn, "dump-syn", false, "stop after parsing and echo the surface tree")
	fs.BoolVar(&f.dumpScad, "dump-scad", false, "stop after parsing and echo the re-printed surface tree")
	fs.BoolVar(&f.dumpCSG3, "dump-csg3", false, "stop after lowering and echo the 3D CSG tree")
	fs.BoolVar(&f.dumpCSG2, "dump-csg2", false, "stop after slicing and echo the 2D CSG skeleton")
	fs.BoolVar(&f.dumpSTL, "dump-stl", false, "force STL output")
	fs.BoolVar(&f.dumpJS, "dump-js", false, "force JS output")
	fs.BoolVar(&f.dumpPS, "dump-ps", false, "force PostScript output")
	fs.BoolVar(&f.noTri, "no-tri", false, "disable triangulation")
	fs.BoolVar(&f.noCSG, "no-csg", false, "disable boolean reduction")
	fs.BoolVar(&f.noDiff, "no-diff", false, "disable the inter-layer diff pass")
	fs.StringVarP(&f.output, "output", "o", "", "output file path")
	fs.BoolVar(&f.verbose, "verbose", false, "verbose diagnostic logging")
	fs.BoolVar(&f.quiet, "quiet", false, "suppress all but error-level logging")
	fs.IntVar(&f.psScale, "ps-scale", 0, "PostScript scaling mode: 0=none, 1=bbox, 2=max-bbox")
	fs.StringSliceVar(&f.colors, "color", nil, "PostScript palette entry, #RRGGBB (repeatable)")
	fs.StringVar(&f.psTrace, "debug-ps-trace", "", "write a PostScript trace of the boolean engine to this file")
	fs.IntVar(&f.workers, "workers", 0, "layer driver worker count (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.zMinSet = fs.Changed("z-min")
	f.zMaxSet = fs.Changed("z-max")
	return f, fs.Args(), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	f, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logging.Configure(stderr, f.verbose, f.quiet)
	if len(positional) != 1 {
		fmt.Fprintln(stderr, "usage: gocsg [flags] <input-file>")
		return 1
	}

	inputPath, _, err := utils.ResolveInputPath(positional[0])
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", diag.IO, err)
		return 1
	}
	content, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", diag.IO, err)
		return 1
	}

	result, code := pipeline(content, inputPath, f, stderr)
	if code != 0 {
		return code
	}

	out, outFile, err := openOutput(f.output, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", diag.IO, err)
		return 1
	}
	if outFile != nil {
		defer outFile.Close()
	}

	format, err := selectFormat(f)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	psOpts := emit.PSOptions{Scale: f.psScale, Palette: parseColors(f.colors)}
	if err := emit.New(format, psOpts).Emit(out, result.output, result.zr); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

type pipelineResult struct {
	output *planar.Output
	zr     csg3.ZRange
}

// pipeline runs scan->parse->lower->slice->drive, honoring the
// --dump-* short-circuit flags (spec §6). It returns a non-zero exit
// code on any failure or completed dump, in which case result is the
// zero value and the caller must not proceed to emit.
func pipeline(content []byte, name string, f *cliFlags, stderr *os.File) (pipelineResult, int) {
	file := source.New(name, content)
	forms, err := syntax.Parse(file)
	if err != nil {
		printErr(stderr, err)
		return pipelineResult{}, 1
	}
	if f.dumpSyn {
		fmt.Fprint(os.Stdout, syntax.Print(forms))
		return pipelineResult{}, 0
	}
	if f.dumpScad {
		fmt.Fprint(os.Stdout, syntax.Print(forms))
		return pipelineResult{}, 0
	}

	tree, err := lower.Lower(forms)
	if err != nil {
		printErr(stderr, err)
		return pipelineResult{}, 1
	}
	if f.dumpCSG3 {
		fmt.Fprint(os.Stdout, dump.CSG3(tree))
		return pipelineResult{}, 0
	}

	bb := csg3.BoundingBox(tree, false)
	var zMin, zMax *float64
	if f.zMinSet {
		zMin = &f.zMin
	}
	if f.zMaxSet {
		zMax = &f.zMax
	}
	zr := csg3.SelectZRange(bb, zMin, zMax, f.zStep)

	skeleton := slicer.BuildSkeleton(tree, zr.Count)
	if f.dumpCSG2 {
		fmt.Fprint(os.Stdout, dump.CSG2(skeleton))
		return pipelineResult{}, 0
	}

	var tracer *planar.Tracer
	if f.psTrace != "" {
		tf, err := os.Create(f.psTrace)
		if err != nil {
			printErr(stderr, err)
			return pipelineResult{}, 1
		}
		defer tf.Close()
		tracer = planar.NewTracer(tf)
	}

	d := layer.New(planar.Options{DisableBoolean: f.noCSG})
	out, err := d.Run(context.Background(), skeleton, zr, layer.Options{
		Workers:     f.workers,
		Triangulate: !f.noTri,
		Diff:        !f.noDiff && wantsDiff(f),
		Tracer:      tracer,
	})
	if err != nil {
		printErr(stderr, err)
		return pipelineResult{}, 1
	}
	if tracer != nil {
		tracer.Close()
	}
	return pipelineResult{output: out, zr: zr}, 0
}

// wantsDiff reports whether the selected output format can even use a
// diff pass; only the JS viewer format consumes DiffCells (spec §6).
func wantsDiff(f *cliFlags) bool {
	if f.dumpJS {
		return true
	}
	format, err := selectFormat(f)
	return err == nil && format == emit.JS
}

func selectFormat(f *cliFlags) (emit.Format, error) {
	switch {
	case f.dumpSTL:
		return emit.STL, nil
	case f.dumpJS:
		return emit.JS, nil
	case f.dumpPS:
		return emit.PS, nil
	case f.output != "":
		return emit.FromExtension(f.output)
	default:
		return emit.STL, nil
	}
}

func openOutput(path string, stdout *os.File) (*os.File, *os.File, error) {
	if path == "" {
		return stdout, nil, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func parseColors(hexes []string) []csg3.Color {
	var out []csg3.Color
	for _, h := range hexes {
		if c, ok := colorFromHex(h); ok {
			out = append(out, c)
		}
	}
	return out
}

// colorFromHex parses a "#RRGGBB" palette entry (spec §6: "color flags
// #RRGGBB -> PS palette").
func colorFromHex(s string) (csg3.Color, bool) {
	if len(s) != 7 || s[0] != '#' {
		return csg3.Color{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return csg3.Color{}, false
	}
	r := float64((v>>16)&0xff) / 255
	g := float64((v>>8)&0xff) / 255
	b := float64(v&0xff) / 255
	return csg3.Color{R: r, G: g, B: b, A: 1}, true
}

func printErr(stderr *os.File, err error) {
	fmt.Fprintln(stderr, err)
}
