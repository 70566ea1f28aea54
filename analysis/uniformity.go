package analysis

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/fixedpoint"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/lattice"
)

// Uniformity is the {Unknown < Uniform < Divergent} lattice of spec §4.10;
// the int ordering below is merge = max.
type Uniformity int

const (
	Unknown Uniformity = iota
	Uniform
	Divergent
)

func maxUniformity(a, b Uniformity) Uniformity {
	if a > b {
		return a
	}
	return b
}

// UniformityInfo is the result of a uniformity analysis run.
type UniformityInfo struct {
	values map[ir.Value]lattice.Value[Uniformity]
}

// Of returns v's computed uniformity, or Unknown if the analysis never
// touched it (v wasn't part of the view RunValue swept).
func (u *UniformityInfo) Of(v ir.Value) Uniformity {
	val, ok := u.values[v]
	if !ok {
		return Unknown
	}
	return val.Data
}

// IsUniform reports whether v is known Uniform; Unknown is conservatively
// treated as not-uniform, per spec §4.10 ("reported as divergent by the
// IsUniform public predicate").
func (u *UniformityInfo) IsUniform(v ir.Value) bool {
	return u.Of(v) == Uniform
}

// ComputeUniformity runs the uniformity fixed point (spec §4.10) over view.
// Override fixes the classification of the listed kinds: ConditionalBranch
// follows its condition, a handful of kinds are always Divergent or always
// Uniform, integer constants are Uniform and other constants Unknown.
// Every other kind starts at Unknown and goes through the generic C9
// per-kind switch (for the default rule, the max of its operands).
func ComputeUniformity(view *cfg.View) *UniformityInfo {
	rules := fixedpoint.ValueRules[Uniformity]{
		Merge:  maxUniformity,
		Bottom: Unknown,
		Override: func(v ir.Value, get func(ir.Value) lattice.Value[Uniformity]) (lattice.Value[Uniformity], bool) {
			switch vv := v.(type) {
			case ir.ConditionalBranch:
				return get(vv.Condition()), true
			case ir.Constant:
				if vv.IsIntegerConstant() {
					return lattice.NewScalar(Uniform), true
				}
				return lattice.NewScalar(Unknown), true
			}
			switch v.Kind() {
			case ir.KindLaneIdx, ir.KindGroupIndex, ir.KindReturn:
				return lattice.NewScalar(Divergent), true
			case ir.KindGridIndex, ir.KindUndefined, ir.KindMethodCall, ir.KindUnconditionalBranch:
				return lattice.NewScalar(Uniform), true
			}
			return lattice.Value[Uniformity]{}, false
		},
	}

	values, _ := fixedpoint.RunValue(view, rules)
	return &UniformityInfo{values: values}
}
