package analysis

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/fixedpoint"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/lattice"
)

// AddressSpaceSet is a bit-set over {Global, Shared, Local}; Generic is the
// empty set, matching spec §4.10's "optionally filtering Generic" rule for
// deriving seeds from a static address-space type.
type AddressSpaceSet uint8

const (
	bitGlobal AddressSpaceSet = 1 << iota
	bitShared
	bitLocal
)

func bitFor(space ir.AddressSpace) AddressSpaceSet {
	switch space {
	case ir.AddressSpaceGlobal:
		return bitGlobal
	case ir.AddressSpaceShared:
		return bitShared
	case ir.AddressSpaceLocal:
		return bitLocal
	default:
		return 0
	}
}

func orSet(a, b AddressSpaceSet) AddressSpaceSet { return a | b }

// Unify returns the single address space this set agrees on: if exactly one
// bit is set and it isn't Generic, that space; otherwise Generic (spec
// §4.10's "unified" output rule).
func (s AddressSpaceSet) Unify() ir.AddressSpace {
	switch s {
	case bitGlobal:
		return ir.AddressSpaceGlobal
	case bitShared:
		return ir.AddressSpaceShared
	case bitLocal:
		return ir.AddressSpaceLocal
	default:
		return ir.AddressSpaceGeneric
	}
}

// SeedContext selects how parameter values are seeded: Automatic derives a
// parameter's address space from its static type; Const instead assigns
// every parameter the caller-supplied space in ConstSpaces.
type SeedContext int

const (
	Automatic SeedContext = iota
	Const
)

// AddressSpaceInfo is the result of an address-space analysis run.
type AddressSpaceInfo struct {
	values map[ir.Value]lattice.Value[AddressSpaceSet]
}

// Set returns v's computed address-space bit-set, or the empty (Generic)
// set if the analysis never constrained it.
func (a *AddressSpaceInfo) Set(v ir.Value) AddressSpaceSet {
	val, ok := a.values[v]
	if !ok {
		return 0
	}
	return val.Data
}

// Unify is a convenience wrapper around Set(v).Unify().
func (a *AddressSpaceInfo) Unify(v ir.Value) ir.AddressSpace {
	return a.Set(v).Unify()
}

// ComputeAddressSpace runs the address-space fixed point (spec §4.10) over
// view. Every value whose static type declares an address space (the "as
// AddressSpaceType" predicate of §6) seeds from that type; in Const mode,
// constSpace additionally overrides every ir.Parameter with a caller-chosen
// space regardless of its static type. Everything else falls back to the
// C9 default rule — the bitwise-or join of its operands' sets — which is
// exactly the propagation §4.10 describes for pointers derived from other
// pointers (GetField/Phi/Predicate/SetField all already fall out of the
// generic per-kind switch).
func ComputeAddressSpace(view *cfg.View, ctx SeedContext, constSpace ir.AddressSpace) *AddressSpaceInfo {
	rules := fixedpoint.ValueRules[AddressSpaceSet]{
		Merge:  orSet,
		Bottom: 0,
		Seed: func(v ir.Value) (lattice.Value[AddressSpaceSet], bool) {
			if ctx == Const && v.Kind() == ir.KindParameter {
				return lattice.NewScalar(bitFor(constSpace)), true
			}
			typ := v.Type()
			if typ == nil {
				return lattice.Value[AddressSpaceSet]{}, false
			}
			space, ok := typ.AddressSpace()
			if !ok {
				return lattice.Value[AddressSpaceSet]{}, false
			}
			return lattice.NewScalar(bitFor(space)), true
		},
	}

	values, _ := fixedpoint.RunValue(view, rules)
	return &AddressSpaceInfo{values: values}
}
