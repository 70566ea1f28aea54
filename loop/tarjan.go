package loop

import (
	"github.com/m4rs-mt/ilgpu-go/internal/ierr"
	"github.com/m4rs-mt/ilgpu-go/ir"
)

// rawSCC is one strongly-connected component discovered by tarjanOverSet,
// before loop-validity classification.
type rawSCC struct {
	root    ir.Block // the block whose low-link equalled its index
	members []ir.Block
}

type tarjanFrame struct {
	blk      ir.Block
	succs    []ir.Block
	nextSucc int
}

type nodeState struct {
	index, lowLink int
	onStack        bool
	visited        bool
}

// tarjanOverSet runs Tarjan's SCC algorithm restricted to the vertex set
// `members`, following edges given by `successors` (which must only ever
// return blocks also in `members`). It iterates candidate roots in
// `order` so that disconnected sub-regions of `members` (the common case
// once a loop's own headers have been carved out for nested-loop
// rediscovery, spec §4.4) are all visited, deterministically.
//
// This is the single restricted-Tarjan primitive shared by the top-level
// loop search and the header-rerooted nested-loop search below; spec
// §4.4's "clearing node indices for loop members and running the same
// routine again" is exactly calling this again over a smaller `members`.
func tarjanOverSet(members map[ir.Block]bool, successors func(ir.Block) []ir.Block, order []ir.Block) []rawSCC {
	state := make(map[ir.Block]*nodeState, len(members))
	for b := range members {
		state[b] = &nodeState{index: -1}
	}

	var (
		nextIndex int
		vStack    []ir.Block
		out       []rawSCC
		frames    []*tarjanFrame
	)

	push := func(b ir.Block) {
		s := state[b]
		s.index = nextIndex
		s.lowLink = nextIndex
		nextIndex++
		s.visited = true
		s.onStack = true
		vStack = append(vStack, b)
		frames = append(frames, &tarjanFrame{blk: b, succs: successors(b)})
	}

	for _, root := range order {
		if !members[root] || state[root].visited {
			continue
		}
		push(root)

		for len(frames) > 0 {
			top := frames[len(frames)-1]
			topState := state[top.blk]

			if top.nextSucc < len(top.succs) {
				succ := top.succs[top.nextSucc]
				top.nextSucc++
				if !members[succ] {
					continue
				}
				succState := state[succ]
				if !succState.visited {
					push(succ)
					continue
				}
				if succState.onStack {
					topState.lowLink = ir.Min(topState.lowLink, succState.index)
				}
				continue
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1]
				parentState := state[parent.blk]
				parentState.lowLink = ir.Min(parentState.lowLink, topState.lowLink)
			}

			if topState.lowLink == topState.index {
				s := rawSCC{root: top.blk}
				for {
					if len(vStack) == 0 {
						ierr.Panic("SCC stack exhausted before reaching root")
					}
					b := vStack[len(vStack)-1]
					vStack = vStack[:len(vStack)-1]
					state[b].onStack = false
					s.members = append(s.members, b)
					if b == top.blk {
						break
					}
				}
				out = append(out, s)
			}
		}
	}

	return out
}
