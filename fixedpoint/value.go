package fixedpoint

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/lattice"
)

// ValueRules customizes the value driver's per-kind merge behavior (spec
// §4.9). Merge and Bottom are required; the rest are optional hooks a
// concrete analysis overrides as needed.
type ValueRules[T comparable] struct {
	// Merge is the lattice join for T.
	Merge lattice.Merge[T]
	// Bottom is the lattice's least element — the starting point every
	// value is seeded with absent an override, and the identity a
	// default-rule accumulation starts folding from.
	Bottom T
	// Seed overrides a value's initial lattice value (Alloca's
	// stack-alignment rule, a parameter bound by the global driver's
	// argument vector, an address-space seeded from static type, …).
	// Returning false falls through to Bottom.
	Seed func(v ir.Value) (lattice.Value[T], bool)
	// ReturnValue looks up the currently-known return value of target
	// called with the resolved argument vector args, if any run has
	// computed one yet.
	ReturnValue func(target ir.Method, args []lattice.Value[T]) (lattice.Value[T], bool)
	// OnMethodCall is invoked for every MethodCall value visited, with a
	// snapshot reader over the current run's value map. The global driver
	// does not set it; it enqueues (target, resolved-args) configurations
	// through ReturnValue.
	OnMethodCall func(call ir.MethodCall, get func(ir.Value) lattice.Value[T])
	// Override, when it returns ok, supplies v's proposed value in place
	// of the standard per-kind switch below. Concrete analyses (§4.10)
	// use this for kinds the switch treats only generically under
	// Default — LoadFieldAddress/LoadElementAddress's type-driven
	// min/max rules, uniformity's fixed per-kind classification — without
	// forking the shared GetField/SetField/Structure/Phi/Predicate/
	// MethodCall handling every analysis still wants.
	Override func(v ir.Value, get func(ir.Value) lattice.Value[T]) (lattice.Value[T], bool)
}

func equalValue[T comparable](a, b lattice.Value[T]) bool {
	if a.Data != b.Data {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if a.Children[i] != b.Children[i] {
			return false
		}
	}
	return true
}

// computeValue implements the per-kind merge switch of spec §4.9,
// returning the value v's operands currently propose for it. The caller
// joins this against v's previous value to get a monotonically growing
// result and to detect change.
func computeValue[T comparable](v ir.Value, get func(ir.Value) lattice.Value[T], rules ValueRules[T]) lattice.Value[T] {
	if rules.Override != nil {
		if val, ok := rules.Override(v, get); ok {
			return val
		}
	}
	switch vv := v.(type) {
	case ir.GetField:
		src := get(vv.Source())
		return lattice.Value[T]{Data: projectSpan(src, vv.FieldOffset(), vv.FieldSpan(), rules)}

	case ir.SetField:
		src := get(vv.Source())
		newVal := get(vv.NewValue())
		children := append([]T(nil), src.Children...)
		idx := vv.FieldIndex()
		for len(children) <= idx {
			children = append(children, rules.Bottom)
		}
		if idx >= 0 {
			children[idx] = rules.Merge(children[idx], newVal.Data)
		}
		return lattice.Value[T]{Data: rules.Merge(src.Data, newVal.Data), Children: children}

	case ir.Structure:
		fields := vv.Fields()
		children := make([]T, len(fields))
		data := rules.Bottom
		for i, f := range fields {
			fv := get(f).Data
			children[i] = fv
			data = rules.Merge(data, fv)
		}
		return lattice.Value[T]{Data: data, Children: children}

	case ir.Phi:
		acc := lattice.Value[T]{Data: rules.Bottom}
		for _, e := range vv.Incoming() {
			acc = lattice.Join(rules.Merge, acc, get(e.Value))
		}
		return acc

	case ir.Predicate:
		return lattice.Join(rules.Merge, get(vv.IfTrue()), get(vv.IfFalse()))

	case ir.MethodCall:
		if rules.OnMethodCall != nil {
			rules.OnMethodCall(vv, get)
		}
		target := vv.Target()
		if target == nil || target.IsVoid() || !target.HasImplementation() {
			return get(v)
		}
		if rules.ReturnValue != nil {
			resolvedArgs := make([]lattice.Value[T], len(vv.Args()))
			for i, a := range vv.Args() {
				resolvedArgs[i] = get(a)
			}
			if rv, ok := rules.ReturnValue(target, resolvedArgs); ok {
				return lattice.Join(rules.Merge, rv, get(v))
			}
		}
		return get(v)

	default:
		// Default rule: join the data of every operand. Structure-typed
		// defaults additionally need per-field lifting, which concrete
		// analyses that care supply via a GetField/SetField/Structure
		// chain rather than relying on this fallback.
		acc := lattice.Value[T]{Data: rules.Bottom}
		for _, op := range v.Operands() {
			acc = lattice.Join(rules.Merge, acc, get(op))
		}
		return acc
	}
}

func projectSpan[T comparable](src lattice.Value[T], offset, span int, rules ValueRules[T]) T {
	if len(src.Children) == 0 {
		return src.Data
	}
	end := offset + span
	if end > len(src.Children) {
		end = len(src.Children)
	}
	acc := rules.Bottom
	for i := offset; i < end && i >= 0; i++ {
		acc = rules.Merge(acc, src.Children[i])
	}
	return acc
}

// RunValue is the value-granularity driver: it seeds every value in
// view's blocks, sweeps once in view order processing each block's
// values in source order, and on any change within a block pushes its
// Direction-selected successors onto a worklist drained to a fixed
// point. It also returns the method's accumulated return value: the join
// of every ReturnTerminator's result operands reachable in view.
func RunValue[T comparable](view *cfg.View, rules ValueRules[T]) (map[ir.Value]lattice.Value[T], lattice.Value[T]) {
	values := map[ir.Value]lattice.Value[T]{}
	get := func(v ir.Value) lattice.Value[T] {
		if v == nil {
			return lattice.Value[T]{Data: rules.Bottom}
		}
		if val, ok := values[v]; ok {
			return val
		}
		return lattice.Value[T]{Data: rules.Bottom}
	}

	coll := view.Collection()
	for i := 0; i < coll.Len(); i++ {
		for _, v := range coll.At(i).Values() {
			if rules.Seed != nil {
				if seeded, ok := rules.Seed(v); ok {
					values[v] = seeded
					continue
				}
			}
			values[v] = lattice.Value[T]{Data: rules.Bottom}
		}
	}

	wl := NewWorklist[ir.Block]()
	processBlock := func(b ir.Block) {
		changed := false
		for _, v := range b.Values() {
			proposed := computeValue(v, get, rules)
			old := values[v]
			merged := lattice.Join(rules.Merge, old, proposed)
			if !equalValue(old, merged) {
				values[v] = merged
				changed = true
			}
		}
		if changed {
			for _, s := range view.Node(b).Successors() {
				wl.Push(s)
			}
		}
	}

	for i := 0; i < coll.Len(); i++ {
		processBlock(coll.At(i))
	}
	for {
		b, ok := wl.Pop()
		if !ok {
			break
		}
		processBlock(b)
	}

	ret := lattice.Value[T]{Data: rules.Bottom}
	for i := 0; i < coll.Len(); i++ {
		term := coll.At(i).Terminator()
		if r, ok := term.(ir.Return); ok {
			for _, res := range r.Results() {
				ret = lattice.Join(rules.Merge, ret, get(res))
			}
		}
	}

	return values, ret
}
