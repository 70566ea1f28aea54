// Package lattice defines the generic AnalysisValue element the
// fixed-point framework computes a least fixed point over (spec §4.8,
// C8).
package lattice

// Merge joins two lattice elements of T into one. It must be associative,
// commutative, and idempotent, with an implicit top element the lattice
// never exceeds.
type Merge[T any] func(a, b T) T

// Value is an AnalysisValue<T>: a scalar T plus, for structure-typed
// values, one T per field. Scalars carry an empty Children.
type Value[T any] struct {
	Data     T
	Children []T
}

// NewScalar builds a childless Value.
func NewScalar[T any](data T) Value[T] {
	return Value[T]{Data: data}
}

// NewStructured builds a Value with one child per structure field.
func NewStructured[T any](data T, children []T) Value[T] {
	return Value[T]{Data: data, Children: children}
}

// Join combines a and b field-wise using merge: the scalar Data is
// merged directly, and Children are merged pairwise by index. A nil
// Children slice on either side (the scalar shape) is treated as if it
// held merge's identity — it contributes no fields and the result's
// Children come entirely from the other side.
func Join[T any](merge Merge[T], a, b Value[T]) Value[T] {
	out := Value[T]{Data: merge(a.Data, b.Data)}

	switch {
	case len(a.Children) == 0:
		out.Children = append(out.Children, b.Children...)
	case len(b.Children) == 0:
		out.Children = append(out.Children, a.Children...)
	default:
		n := len(a.Children)
		if len(b.Children) < n {
			n = len(b.Children)
		}
		out.Children = make([]T, n)
		for i := 0; i < n; i++ {
			out.Children[i] = merge(a.Children[i], b.Children[i])
		}
	}
	return out
}
