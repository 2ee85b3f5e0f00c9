// Package planar is the reference implementation of the two external
// collaborators spec.md §1 places out of scope: the planar boolean
// engine (op_add_layer/op_diff_layer) and the triangulator
// (tri_layer/tri_layer_diff). spec.md only specifies the interface the
// layer driver calls against; this package supplies a working but
// deliberately minimal implementation of that interface so the
// pipeline is runnable end to end (see SPEC_FULL.md §9's note on why
// this is the one place in the repository built on the standard
// library by design rather than by omission).
package planar

import (
	"gocsg/internal/arena"
	"gocsg/internal/csg2"
	"gocsg/internal/diag"
)

// Options mirrors the source's cp_csg_opt_t: the small set of toggles
// the driver threads through to the engine, as opposed to the CLI
// flags the toggles are parsed from.
type Options struct {
	// MaxHoleCentroidTests is a cap on how many candidate-container
	// polygons a single hole ring is tested against. The reference
	// reducer does not read it; it tests every candidate.
	MaxHoleCentroidTests int

	// DisableBoolean makes AddLayer skip Sub/Intersect semantics
	// entirely and simply concatenate every leaf's raw polygons, the
	// `--no-csg` escape hatch (spec §6) for inspecting per-primitive
	// cross-sections without paying for (or risking) boolean reduction.
	DisableBoolean bool
}

// Output is the layer driver's "designated output tree" (spec §4.4): a
// single flat, layer-indexed cell array, distinct from the nested
// per-leaf skeleton in_tree that the slicer populates. Cells holds
// pass 1's boolean-reduced (and optionally triangulated) result;
// DiffCells holds pass 2's inter-layer diff, only ever populated when
// the JS emitter's diffing pass runs.
type Output struct {
	Cells     []*csg2.Cell
	DiffCells []*csg2.Cell
}

// NewOutput allocates an Output sized for layerCount layers.
func NewOutput(layerCount int) *Output {
	return &Output{Cells: make([]*csg2.Cell, layerCount), DiffCells: make([]*csg2.Cell, layerCount)}
}

// Reducer is op_add_layer/op_diff_layer (spec §4.4). Unlike Triangulator,
// it takes no arena: every allocation a boolean combine makes (a
// subtraction's hole ring, a clip's output ring) becomes part of the
// persisted Output and must outlive the arena's next Reset, so there is
// no scratch-only buffer here for a bump allocator to usefully back.
type Reducer interface {
	// AddLayer collapses in's boolean tree at layer i into a single
	// polygon set, storing it at out.Cells[i].
	AddLayer(out *Output, in *csg2.Tree, i int, tr *Tracer) error
	// DiffLayer computes the XOR of layer i with its neighbor(s) from
	// out.Cells and stores the result at out.DiffCells[i].
	DiffLayer(out *Output, i int, tr *Tracer) error
}

// Triangulator is tri_layer/tri_layer_diff (spec §4.4).
type Triangulator interface {
	Layer(a *arena.Arena, out *Output, i int) error
	LayerDiff(a *arena.Arena, out *Output, i int) error
}

func sliceErr(loc diag.Location, format string, args ...any) error {
	return diag.New(diag.BoolOp, loc, format, args...)
}
