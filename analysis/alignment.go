package analysis

import (
	"math"

	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/fixedpoint"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/lattice"
)

// unconstrainedAlignment is the min-lattice's bottom element: "no
// constraint observed yet", the identity for merge = min.
const unconstrainedAlignment = math.MaxInt

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// AlignmentInfo is the result of a pointer-alignment analysis run: the
// alignment, in bytes, each pointer-producing value is guaranteed to hold.
type AlignmentInfo struct {
	values map[ir.Value]lattice.Value[int]
}

// Alignment returns the computed alignment of v, or unconstrainedAlignment
// if the analysis never constrained it (the value never flows a pointer).
func (a *AlignmentInfo) Alignment(v ir.Value) int {
	val, ok := a.values[v]
	if !ok {
		return unconstrainedAlignment
	}
	return val.Data
}

// ComputeAlignment runs the pointer-alignment fixed point (spec §4.10)
// over view: Alloca seeds from its IR-provided stack-alignment rule,
// AlignViewTo seeds from its declared constant, LoadFieldAddress takes
// min(source, field_type.alignment), LoadElementAddress takes max(source,
// element_type.alignment), and every other kind falls back to the C9
// default rule — the join of its operands' alignments — which is exactly
// right here since min is the merge and unconstrained operands start at
// +∞.
func ComputeAlignment(view *cfg.View) *AlignmentInfo {
	rules := fixedpoint.ValueRules[int]{
		Merge:  minInt,
		Bottom: unconstrainedAlignment,
		Seed: func(v ir.Value) (lattice.Value[int], bool) {
			switch vv := v.(type) {
			case ir.Alloca:
				return lattice.NewScalar(vv.StackAlignment()), true
			case ir.AlignViewTo:
				return lattice.NewScalar(vv.Alignment()), true
			}
			return lattice.Value[int]{}, false
		},
		Override: func(v ir.Value, get func(ir.Value) lattice.Value[int]) (lattice.Value[int], bool) {
			switch vv := v.(type) {
			case ir.LoadFieldAddress:
				src := get(vv.Source()).Data
				return lattice.NewScalar(minInt(src, vv.FieldType().Alignment())), true
			case ir.LoadElementAddress:
				src := get(vv.Source()).Data
				return lattice.NewScalar(maxInt(src, vv.ElementType().Alignment())), true
			}
			return lattice.Value[int]{}, false
		},
	}

	values, _ := fixedpoint.RunValue(view, rules)
	return &AlignmentInfo{values: values}
}
