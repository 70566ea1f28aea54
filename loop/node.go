// Package loop detects natural loops via a modified Tarjan SCC search and
// exposes their header/breaker/back-edge/entry/exit structure and nesting
// forest (spec §4.4, C4).
package loop

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/ir"
)

// Node owns one loop's structural metadata (spec §3). Children hold only
// a back-reference to their parent — the parent, via Forest, owns the
// node itself.
type Node struct {
	members     map[ir.Block]bool
	memberOrder []ir.Block

	headers   []ir.Block
	breakers  []ir.Block
	backEdges []ir.Block
	entries   []ir.Block
	exits     []ir.Block

	parent   *Node
	children []*Node
}

// IsNested reports whether this loop is nested inside another (parent != nil).
func (n *Node) IsNested() bool { return n.parent != nil }

// Parent returns the immediately-enclosing loop, or nil for a top-level loop.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the loops immediately nested inside this one.
func (n *Node) Children() []*Node { return n.children }

// Depth returns the nesting depth: 0 for a top-level loop, 1 for a loop
// nested one level deep, and so on.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Headers returns the loop's header blocks: members with a predecessor
// outside the SCC.
func (n *Node) Headers() []ir.Block { return n.headers }

// Breakers returns the loop's breaker blocks: members with a successor
// outside the SCC.
func (n *Node) Breakers() []ir.Block { return n.breakers }

// BackEdges returns the loop's back-edge blocks: members with a successor
// in Headers().
func (n *Node) BackEdges() []ir.Block { return n.backEdges }

// Entries returns the external predecessors of the loop's headers.
func (n *Node) Entries() []ir.Block { return n.entries }

// Exits returns the external successors of the loop's breakers.
func (n *Node) Exits() []ir.Block { return n.exits }

// Members returns every block belonging to this loop (including nested
// loops' members and the header(s)), in the order Tarjan's stack popped
// them (the SCC root last).
func (n *Node) Members() []ir.Block { return n.memberOrder }

// Contains reports whether b is a member of this loop.
func (n *Node) Contains(b ir.Block) bool { return n.members[b] }

func toSet(blocks []ir.Block) map[ir.Block]bool {
	s := make(map[ir.Block]bool, len(blocks))
	for _, b := range blocks {
		s[b] = true
	}
	return s
}

func appendUnique(seen map[ir.Block]bool, list []ir.Block, b ir.Block) []ir.Block {
	if seen[b] {
		return list
	}
	seen[b] = true
	return append(list, b)
}

// bodySuccessors returns a SuccessorFunc restricted to this loop's
// members, optionally hiding the header(s) too — the "members-successor
// provider that hides exit blocks (and optionally the header, to
// traverse the body without the header)" of spec §4.4.
func (n *Node) bodySuccessors(view *cfg.View, includeHeader bool) cfg.SuccessorFunc {
	headerSet := toSet(n.headers)
	return func(b ir.Block) []ir.Block {
		succs := view.Node(b).Successors()
		out := make([]ir.Block, 0, len(succs))
		for _, s := range succs {
			if !n.members[s] {
				continue // hides exits
			}
			if !includeHeader && headerSet[s] {
				continue // hides the header
			}
			out = append(out, s)
		}
		return out
	}
}

// MembersCollection materializes this loop's members as an ordered
// BasicBlockCollection, traversed in order starting from start (typically
// a header when includeHeader is true, or a body entry block when it is
// false), using the exits/header-hiding successor provider above.
func (n *Node) MembersCollection(view *cfg.View, start ir.Block, order cfg.Order, includeHeader bool) *cfg.BasicBlockCollection {
	return cfg.TraverseToCollectionWith(start, order, view.Collection().Direction(), n.bodySuccessors(view, includeHeader))
}
