package cfg

import "github.com/m4rs-mt/ilgpu-go/ir"

// BasicBlockCollection is an immutable ordered sequence of blocks obtained
// by running an Order starting at an entry block with edges selected by a
// Direction (spec §3). Every block reachable from Entry under Direction
// appears exactly once; dense traversal indices 0..N-1 are stable for the
// collection's lifetime and are the only way to address a BlockMap/BlockSet
// built from it.
type BasicBlockCollection struct {
	entry     ir.Block
	dir       Direction
	order     Order
	blocks    []ir.Block
	index     map[ir.Block]int
}

func newCollection(entry ir.Block, dir Direction, order Order, blocks []ir.Block) *BasicBlockCollection {
	idx := make(map[ir.Block]int, len(blocks))
	for i, b := range blocks {
		idx[b] = i
	}
	return &BasicBlockCollection{entry: entry, dir: dir, order: order, blocks: blocks, index: idx}
}

// Entry returns the block this collection was traversed from.
func (c *BasicBlockCollection) Entry() ir.Block { return c.entry }

// Direction returns the Direction used to traverse this collection.
func (c *BasicBlockCollection) Direction() Direction { return c.dir }

// Order returns the Order used to traverse this collection.
func (c *BasicBlockCollection) Order() Order { return c.order }

// Len returns the number of blocks in the collection.
func (c *BasicBlockCollection) Len() int { return len(c.blocks) }

// At returns the block at dense traversal index i.
func (c *BasicBlockCollection) At(i int) ir.Block { return c.blocks[i] }

// Blocks returns the collection's blocks in traversal order. The caller
// must not mutate the returned slice.
func (c *BasicBlockCollection) Blocks() []ir.Block { return c.blocks }

// IndexOf returns the dense traversal index of b, and whether b belongs to
// this collection at all.
func (c *BasicBlockCollection) IndexOf(b ir.Block) (int, bool) {
	i, ok := c.index[b]
	return i, ok
}

// NewBlockMap allocates a BlockMap[T] sized for this collection, with every
// slot set to zero.
func NewBlockMap[T any](c *BasicBlockCollection) *BlockMap[T] {
	return &BlockMap[T]{c: c, data: make([]T, c.Len())}
}

// BlockMap is a dense array, indexed by a BasicBlockCollection's traversal
// index, mapping block -> T in O(1). This is the "canonical idiom" of spec
// §9: a dense array beats an identity hash map by roughly an order of
// magnitude. fixedpoint.RunBlock and scc.Compute keep their per-block
// state this way; the traversal drivers and loop detection use Go maps
// keyed by block.
type BlockMap[T any] struct {
	c    *BasicBlockCollection
	data []T
}

// Get returns the value stored for b.
func (m *BlockMap[T]) Get(b ir.Block) T {
	i, ok := m.c.IndexOf(b)
	if !ok {
		var zero T
		return zero
	}
	return m.data[i]
}

// Set stores v for b.
func (m *BlockMap[T]) Set(b ir.Block, v T) {
	i, ok := m.c.IndexOf(b)
	if !ok {
		return
	}
	m.data[i] = v
}

// GetAt/SetAt address the map directly by dense traversal index, avoiding
// the IndexOf lookup when the caller already has the index (e.g. iterating
// 0..Len()-1).
func (m *BlockMap[T]) GetAt(i int) T     { return m.data[i] }
func (m *BlockMap[T]) SetAt(i int, v T)  { m.data[i] = v }

// NewBlockSet allocates a BlockSet sized for this collection.
func NewBlockSet(c *BasicBlockCollection) *BlockSet {
	return &BlockSet{c: c, bits: make([]bool, c.Len())}
}

// BlockSet is a bit-vector over a BasicBlockCollection's dense traversal
// indices.
type BlockSet struct {
	c    *BasicBlockCollection
	bits []bool
}

func (s *BlockSet) Add(b ir.Block) {
	if i, ok := s.c.IndexOf(b); ok {
		s.bits[i] = true
	}
}

func (s *BlockSet) Contains(b ir.Block) bool {
	i, ok := s.c.IndexOf(b)
	return ok && s.bits[i]
}

func (s *BlockSet) AddAt(i int)          { s.bits[i] = true }
func (s *BlockSet) ContainsAt(i int) bool { return s.bits[i] }
