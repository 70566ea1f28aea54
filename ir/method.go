package ir

// MethodID is a stable, totally-ordered identifier for a Method, used by
// the landscape (C7) to get deterministic iteration order across runs.
type MethodID uint64

// Method is a single analyzable unit: a CFG of blocks reachable from one
// entry block.
type Method interface {
	// ID returns this method's stable identifier.
	ID() MethodID
	// Name returns a human-readable name for diagnostics.
	Name() string
	// EntryBlock returns the unique entry block of this method's CFG.
	EntryBlock() Block
	// AllBlocks returns every block belonging to this method, in no
	// particular order; used by passes that need to visit every block
	// without caring about traversal order (e.g. collecting phis across
	// an entire method).
	AllBlocks() []Block
	// IsVoid reports whether this method returns no value.
	IsVoid() bool
	// HasImplementation reports whether this method has a body to
	// analyze, as opposed to being an external/intrinsic declaration.
	HasImplementation() bool
	// Parameters returns this method's formal parameter values, in
	// declaration order.
	Parameters() []Value
	// NumParameters returns len(Parameters()), available without forcing
	// allocation of the slice.
	NumParameters() int
	// ReturnType returns this method's return type; meaningless if
	// IsVoid() is true.
	ReturnType() TypeNode
}
