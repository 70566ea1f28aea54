package cfg

import (
	"github.com/m4rs-mt/ilgpu-go/internal/ierr"
	"github.com/m4rs-mt/ilgpu-go/ir"
)

// Visitor is called exactly once per block reached by a traversal, in the
// order's semantics.
type Visitor func(ir.Block)

// SuccessorFunc returns the blocks reachable from b for the purposes of a
// traversal. Traverse's Direction-based overload supplies
// Direction.Successors; callers that need a restricted view of the graph
// (loop's members-only provider that hides exits, §4.4) supply their own.
type SuccessorFunc func(ir.Block) []ir.Block

// Traverse walks the graph reachable from entry under dir in the given
// order. It is the common case of TraverseWith, using the block's real
// successors or predecessors as selected by dir.
func Traverse(entry ir.Block, dir Direction, order Order, visit Visitor) {
	TraverseWith(entry, order, dir.Successors, visit)
}

// TraverseWith is the general driver of spec §4.1:
// Traverse(entry, visitor, successor_provider) → (). PreOrder and
// PostOrder do the actual walking with an explicit stack (no recursion,
// per spec §9, to bound stack growth on deep graphs);
// ReversePreOrder/ReversePostOrder materialize their base order and
// replay it backwards, exactly as the companion-order relationship in
// spec §4.1 describes.
func TraverseWith(entry ir.Block, order Order, successors SuccessorFunc, visit Visitor) {
	switch order.base() {
	case PreOrder:
		traversePreOrder(entry, successors, order.reversed(), visit)
	case PostOrder:
		traversePostOrder(entry, successors, order.reversed(), visit)
	default:
		ierr.Panic("unknown traversal order %v", order)
	}
}

// traversePreOrder implements the iterative pre-order DFS of spec §4.1:
// on visiting an unvisited block, push its successors high-to-low so that
// successors[0] is processed next, preserving first-successor depth; a
// popped block that was already visited is skipped.
func traversePreOrder(entry ir.Block, successors SuccessorFunc, reverse bool, visit Visitor) {
	visited := map[ir.Block]bool{}
	var order []ir.Block

	stack := []ir.Block{entry}
	for len(stack) > 0 {
		top := len(stack) - 1
		blk := stack[top]
		stack = stack[:top]
		if visited[blk] {
			continue
		}
		visited[blk] = true

		order = append(order, blk)

		succs := successors(blk)
		for i := len(succs) - 1; i >= 0; i-- {
			s := succs[i]
			if !visited[s] {
				stack = append(stack, s)
			}
		}
	}

	emit(order, reverse, visit)
}

// postFrame is a (block, next child index) pair: the explicit-stack
// equivalent of the recursive post-order walk's call frame.
type postFrame struct {
	blk       ir.Block
	nextChild int
}

// traversePostOrder implements the iterative post-order DFS of spec
// §4.1: a block is emitted only once all of its children have been
// visited; the "visited" set (tested on first visit) cuts cycles.
func traversePostOrder(entry ir.Block, successors SuccessorFunc, reverse bool, visit Visitor) {
	visited := map[ir.Block]bool{entry: true}
	var order []ir.Block

	stack := []postFrame{{blk: entry}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := successors(top.blk)
		if top.nextChild < len(succs) {
			child := succs[top.nextChild]
			top.nextChild++
			if !visited[child] {
				visited[child] = true
				stack = append(stack, postFrame{blk: child})
			}
			continue
		}
		order = append(order, top.blk)
		stack = stack[:len(stack)-1]
	}

	emit(order, reverse, visit)
}

func emit(order []ir.Block, reverse bool, visit Visitor) {
	if !reverse {
		for _, b := range order {
			visit(b)
		}
		return
	}
	for i := len(order) - 1; i >= 0; i-- {
		visit(order[i])
	}
}

// TraverseToCollection runs Traverse and materializes the result into a
// BasicBlockCollection, assigning dense traversal indices as it goes.
func TraverseToCollection(entry ir.Block, dir Direction, order Order) *BasicBlockCollection {
	return TraverseToCollectionWith(entry, order, dir, dir.Successors)
}

// TraverseToCollectionWith is the SuccessorFunc-parameterized counterpart
// of TraverseToCollection, used by callers (loop's member sub-collections)
// that traverse a restricted view of the graph but still want the result
// addressable as a BasicBlockCollection.
func TraverseToCollectionWith(entry ir.Block, order Order, dir Direction, successors SuccessorFunc) *BasicBlockCollection {
	var blocks []ir.Block
	TraverseWith(entry, order, successors, func(b ir.Block) {
		blocks = append(blocks, b)
	})
	return newCollection(entry, dir, order, blocks)
}
