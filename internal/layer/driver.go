// Package layer implements the two-pass layer driver (spec §4.4, §5):
// pass 1 populates and boolean-reduces (and optionally triangulates)
// every layer of a CSG-2 skeleton; pass 2, gated on the JS emitter's
// diffing mode, computes each layer's diff against its neighbor. Work is
// farmed out over a bounded worker pool built on
// golang.org/x/sync/errgroup, the same concurrency primitive the rest of
// the domain stack (SPEC_FULL.md §9) standardizes on for bounded
// fan-out.
package layer

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"gocsg/internal/arena"
	"gocsg/internal/csg2"
	"gocsg/internal/csg3"
	"gocsg/internal/diag"
	"gocsg/internal/logging"
	"gocsg/internal/planar"
	"gocsg/internal/slicer"
)

// Options configures one driver run.
type Options struct {
	// Workers caps pass concurrency; 0 selects runtime.GOMAXPROCS(0).
	Workers int
	// Triangulate enables the ear-clipping pass after reduction.
	Triangulate bool
	// Diff enables pass 2 (only meaningful when an emitter needs it).
	Diff bool
	// Tracer, if non-nil, records every boolean-engine step. It is safe
	// to share across workers; every worker calls tr.Layer before its
	// own steps so trace output stays attributable, at the cost of
	// interleaving across concurrent layers (diagnostic tool, not a
	// golden-output contract).
	Tracer *planar.Tracer
}

// Driver runs the two passes described in spec §4.4 over a sliced
// skeleton, writing results into a planar.Output.
type Driver struct {
	reducer      planar.Reducer
	triangulator planar.Triangulator
	log          btclogLogger
}

type btclogLogger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New builds a Driver using the reference Reducer/Triangulator,
// configured with the given planar.Options (e.g. DisableBoolean for
// --no-csg).
func New(opts planar.Options) *Driver {
	return &Driver{
		reducer:      planar.NewReducer(opts),
		triangulator: planar.NewTriangulator(),
		log:          logging.Logger(logging.Drvr),
	}
}

// Run executes pass 1 (and pass 2, if requested) over tree across
// zr.Count layers, returning the accumulated output or, of the errors
// the workers reported, the one from the lowest layer index.
func (d *Driver) Run(ctx context.Context, tree *csg2.Tree, zr csg3.ZRange, opts Options) (*planar.Output, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := planar.NewOutput(tree.NumLayers)
	sink := &diag.Sink{}

	if err := d.runPass(ctx, tree.NumLayers, workers, sink, func(a *arena.Arena, i int) error {
		return d.passOne(a, out, tree, zr, i, opts)
	}); err != nil {
		return nil, err
	}
	if sink.HasErr() {
		return nil, sink.Err()
	}

	if !opts.Diff {
		return out, nil
	}

	sink = &diag.Sink{}
	if err := d.runPass(ctx, tree.NumLayers, workers, sink, func(a *arena.Arena, i int) error {
		return d.passTwo(a, out, i, opts)
	}); err != nil {
		return nil, err
	}
	if sink.HasErr() {
		return nil, sink.Err()
	}
	return out, nil
}

// runPass farms indices [0, n) out to a bounded worker pool: each worker
// owns a private *arena.Arena (never shared across goroutines, spec §5)
// and pulls its next index from a shared atomic counter rather than a
// static split, so a slow layer on one worker doesn't stall others (spec
// §5, "Index assignment: atomic fetch-and-increment, not static split").
// The first error reported through sink stops every worker from
// acquiring new work; in-flight work still finishes (spec §5,
// "cooperative, not preemptive"), and since sink.Report keeps whichever
// reported error has the lowest layer index, two layers failing before
// either worker notices still resolve deterministically rather than by
// goroutine scheduling (spec §4.4).
func (d *Driver) runPass(ctx context.Context, n, workers int, sink *diag.Sink, work func(a *arena.Arena, i int) error) error {
	if n == 0 {
		return nil
	}
	var next atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var a arena.Arena
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				if sink.HasErr() {
					return nil
				}
				i := int(next.Add(1)) - 1
				if i >= n {
					return nil
				}
				a.Reset()
				if err := work(&a, i); err != nil {
					if de, ok := err.(*diag.Error); ok {
						sink.Report(i, de)
					} else {
						sink.Report(i, diag.New(diag.BoolOp, diag.Location{}, "%s", err))
					}
					return nil
				}
			}
		})
	}
	return g.Wait()
}

func (d *Driver) passOne(a *arena.Arena, out *planar.Output, tree *csg2.Tree, zr csg3.ZRange, i int, opts Options) error {
	if err := slicer.PopulateLayer(tree, i, zr.At(i)); err != nil {
		return err
	}
	d.log.Debugf("layer %d: populated", i)
	if err := d.reducer.AddLayer(out, tree, i, opts.Tracer); err != nil {
		return err
	}
	if opts.Triangulate {
		if err := d.triangulator.Layer(a, out, i); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) passTwo(a *arena.Arena, out *planar.Output, i int, opts Options) error {
	if err := d.reducer.DiffLayer(out, i, opts.Tracer); err != nil {
		return err
	}
	if opts.Triangulate {
		if err := d.triangulator.LayerDiff(a, out, i); err != nil {
			return err
		}
	}
	return nil
}
