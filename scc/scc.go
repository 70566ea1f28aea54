// Package scc computes strongly-connected components of a cfg.View using
// the classical iterative Tarjan algorithm (spec §4.3, C3).
package scc

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/internal/ierr"
	"github.com/m4rs-mt/ilgpu-go/ir"
)

// SCC is one strongly-connected component: a maximal set of blocks with a
// path between every pair.
type SCC struct {
	members map[ir.Block]bool
	order   []ir.Block // members in stack-pop order (root last), stable for iteration
}

// Contains reports whether b belongs to this SCC.
func (s *SCC) Contains(b ir.Block) bool { return s.members[b] }

// Len returns the number of members.
func (s *SCC) Len() int { return len(s.order) }

// Members returns the SCC's blocks. The caller must not mutate the slice.
func (s *SCC) Members() []ir.Block { return s.order }

// ResolvePhiOperand returns the value and source block of phi's first
// incoming edge whose block lies outside s, and whether such an edge exists.
// This resolves a phi's operand coming from "the outside world" as spec
// §4.3 requires SCCs to support.
func ResolvePhiOperand(s *SCC, phi ir.Phi) (ir.Value, ir.Block, bool) {
	for _, e := range phi.Incoming() {
		if !s.Contains(e.Block) {
			return e.Value, e.Block, true
		}
	}
	return nil, nil, false
}

// BreakingBlocks returns this SCC's members that have at least two
// successors, at least one of which lies outside the SCC.
func (s *SCC) BreakingBlocks(view *cfg.View) []ir.Block {
	var out []ir.Block
	for _, b := range s.order {
		node := view.Node(b)
		succs := node.Successors()
		if len(succs) < 2 {
			continue
		}
		for _, succ := range succs {
			if !s.Contains(succ) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// Result is the output of Compute: every SCC of the graph, in reverse
// order of completion (spec §4.3), plus a block -> SCC lookup.
type Result struct {
	sccs    []*SCC
	byBlock map[ir.Block]*SCC
}

// SCCs returns every SCC discovered, in reverse order of completion.
func (r *Result) SCCs() []*SCC { return r.sccs }

// Of returns the SCC containing b, and whether b was visited at all (every
// reachable block belongs to exactly one SCC, even a singleton with no
// self-loop).
func (r *Result) Of(b ir.Block) (*SCC, bool) {
	s, ok := r.byBlock[b]
	return s, ok
}

// tarjanFrame is the explicit-stack equivalent of Tarjan's recursive call
// frame: the node currently being explored and how far through its
// successor list the exploration has progressed.
type tarjanFrame struct {
	blk      ir.Block
	succs    []ir.Block
	nextSucc int
}

// nodeState is Tarjan's per-block bookkeeping (spec §4.3): discovery
// index, low-link, and whether the block is currently on the DFS stack.
type nodeState struct {
	index, lowLink int
	onStack        bool
	visited        bool
}

// Compute runs Tarjan's algorithm over view, starting at its root.
func Compute(view *cfg.View) *Result {
	coll := view.Collection()
	state := cfg.NewBlockMap[*nodeState](coll)
	for i := 0; i < coll.Len(); i++ {
		state.SetAt(i, &nodeState{index: -1})
	}

	var (
		nextIndex int
		vStack    []ir.Block // Tarjan's DFS stack of "on-stack" blocks
		sccs      []*SCC
		byBlock   = map[ir.Block]*SCC{}
	)

	var frames []*tarjanFrame

	push := func(b ir.Block) {
		s := state.Get(b)
		s.index = nextIndex
		s.lowLink = nextIndex
		s.visited = true
		nextIndex++
		s.onStack = true
		vStack = append(vStack, b)
		frames = append(frames, &tarjanFrame{blk: b, succs: view.Node(b).Successors()})
	}

	push(view.Root().Block())

	for len(frames) > 0 {
		top := frames[len(frames)-1]
		topState := state.Get(top.blk)

		if top.nextSucc < len(top.succs) {
			succ := top.succs[top.nextSucc]
			top.nextSucc++
			succState := state.Get(succ)
			if !succState.visited {
				push(succ)
				continue
			}
			if succState.onStack {
				topState.lowLink = ir.Min(topState.lowLink, succState.index)
			}
			continue
		}

		// All successors explored; pop this frame.
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := frames[len(frames)-1]
			parentState := state.Get(parent.blk)
			parentState.lowLink = ir.Min(parentState.lowLink, topState.lowLink)
		}

		if topState.lowLink == topState.index {
			// top.blk is an SCC root: pop the stack down to and including it.
			s := &SCC{members: map[ir.Block]bool{}}
			for {
				if len(vStack) == 0 {
					ierr.Panic("SCC stack exhausted before reaching root")
				}
				b := vStack[len(vStack)-1]
				vStack = vStack[:len(vStack)-1]
				state.Get(b).onStack = false
				s.members[b] = true
				s.order = append(s.order, b)
				if b == top.blk {
					break
				}
			}
			sccs = append(sccs, s)
			for b := range s.members {
				byBlock[b] = s
			}
		}
	}

	// SCCs were appended as they completed; reverse them.
	for i, j := 0, len(sccs)-1; i < j; i, j = i+1, j-1 {
		sccs[i], sccs[j] = sccs[j], sccs[i]
	}

	return &Result{sccs: sccs, byBlock: byBlock}
}
