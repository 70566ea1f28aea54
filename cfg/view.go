package cfg

import "github.com/m4rs-mt/ilgpu-go/ir"

// View is a CFG<Order, Direction> (spec §4.2): a read-only,
// order-and-direction-parameterized view over a method's blocks. It
// allocates no edges of its own — every Node's Predecessors/Successors
// simply reads through to the underlying IR, swapped when Direction is
// Backwards.
type View struct {
	collection *BasicBlockCollection
	dir        Direction
}

// Build traverses entry under dir/order and wraps the result in a View.
func Build(entry ir.Block, dir Direction, order Order) *View {
	return &View{collection: TraverseToCollection(entry, dir, order), dir: dir}
}

// Collection returns the underlying BasicBlockCollection.
func (v *View) Collection() *BasicBlockCollection { return v.collection }

// Root returns the Node wrapping the entry block.
func (v *View) Root() Node { return v.Node(v.collection.Entry()) }

// Len returns the number of blocks in the view.
func (v *View) Len() int { return v.collection.Len() }

// Node returns the Node wrapping b. O(1) — it only closes over b and the
// view, it does not allocate or search.
func (v *View) Node(b ir.Block) Node { return Node{blk: b, dir: v.dir} }

// At returns the Node at dense traversal index i.
func (v *View) At(i int) Node { return v.Node(v.collection.At(i)) }

// Each calls fn for every block in the view, in traversal order.
func (v *View) Each(fn func(Node)) {
	for _, b := range v.collection.Blocks() {
		fn(v.Node(b))
	}
}

// Node is a read-only, direction-aware facade over an ir.Block.
type Node struct {
	blk ir.Block
	dir Direction
}

// Block returns the underlying IR block.
func (n Node) Block() ir.Block { return n.blk }

// Successors returns n's Direction-selected successors: b.Successors() for
// Forwards views, b.Predecessors() for Backwards ones (spec §4.2).
func (n Node) Successors() []ir.Block { return n.dir.Successors(n.blk) }

// Predecessors returns n's Direction-selected predecessors — the mirror
// image of Successors.
func (n Node) Predecessors() []ir.Block { return n.dir.Predecessors(n.blk) }

// Format returns a short debug string for this node: its name followed by
// its predecessor names, mirroring the teacher's
// BasicBlock.FormatHeader/Builder.Format debugging pair.
func (n Node) Format() string {
	preds := n.Predecessors()
	s := n.blk.Name() + " <-- ("
	for i, p := range preds {
		if i > 0 {
			s += ", "
		}
		s += p.Name()
	}
	return s + ")"
}
