// Package ir defines the external contracts the analysis core requires
// from the surrounding IR (spec §6): blocks, values, methods and types.
// The core never constructs or mutates these; it only observes them.
// Identity of a Block or Value is reference identity — any concrete
// implementation is expected to be a pointer type so that plain == (and
// use as a map key) compares by address, matching spec §3's "a Comparer
// identifies blocks by reference identity".
package ir

// Block is a maximal straight-line sequence of values ending in exactly
// one terminator.
type Block interface {
	// Successors returns the blocks this block's terminator can jump to,
	// in the terminator's canonical order.
	Successors() []Block
	// Predecessors returns the blocks that may jump to this block.
	Predecessors() []Block
	// Terminator returns this block's single terminating value (a
	// ConditionalBranch, UnconditionalBranch or Return).
	Terminator() Value
	// Values returns this block's values in definition order, including
	// the terminator as the last element.
	Values() []Value
	// FormatError decorates msg with this block's source location for a
	// user-visible diagnostic.
	FormatError(msg string) string
	// Name returns a short, stable, human-readable label for debugging.
	Name() string
}
