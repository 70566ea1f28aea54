package fixedpoint

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/ir"
)

// BlockUpdate recomputes b's entry in mapping from mapping's current
// state, returning the new value and whether it differs from the
// previous one.
type BlockUpdate[T any] func(b ir.Block, mapping *cfg.BlockMap[T]) (T, bool)

// RunBlock is the block-granularity driver: every block is seeded with
// initial, swept once in view order, and on every change the block's
// Direction-selected successors are pushed onto a worklist that is then
// drained to a fixed point.
func RunBlock[T any](view *cfg.View, initial func(ir.Block) T, update BlockUpdate[T]) *cfg.BlockMap[T] {
	coll := view.Collection()
	mapping := cfg.NewBlockMap[T](coll)
	for i := 0; i < coll.Len(); i++ {
		mapping.SetAt(i, initial(coll.At(i)))
	}

	wl := NewWorklist[ir.Block]()
	process := func(b ir.Block) {
		next, changed := update(b, mapping)
		if !changed {
			return
		}
		mapping.Set(b, next)
		for _, s := range view.Node(b).Successors() {
			wl.Push(s)
		}
	}

	for i := 0; i < coll.Len(); i++ {
		process(coll.At(i))
	}
	for {
		b, ok := wl.Pop()
		if !ok {
			break
		}
		process(b)
	}
	return mapping
}
