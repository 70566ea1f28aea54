// Package cfg provides a parameterized, order-and-direction-aware view
// over a method's control-flow graph: the traversal orders of spec §4.1
// (C1) and the CFG view of spec §4.2 (C2).
package cfg

import "github.com/m4rs-mt/ilgpu-go/ir"

// Direction selects which IR edges a traversal follows: a block's
// successors for a forward analysis, or its predecessors for a backward
// one.
type Direction int

const (
	Forwards Direction = iota
	Backwards
)

func (d Direction) String() string {
	if d == Backwards {
		return "Backwards"
	}
	return "Forwards"
}

// Successors returns the blocks reachable from b under this Direction:
// b.Successors() when Forwards, b.Predecessors() when Backwards.
func (d Direction) Successors(b ir.Block) []ir.Block {
	if d == Backwards {
		return b.Predecessors()
	}
	return b.Successors()
}

// Predecessors returns the blocks that reach b under this Direction — the
// mirror image of Successors, used by Node's direction-aware accessors.
func (d Direction) Predecessors(b ir.Block) []ir.Block {
	if d == Backwards {
		return b.Successors()
	}
	return b.Predecessors()
}
