// Package irtest builds small, concrete ir.Method graphs for exercising
// the analysis core's packages, the way ssa/builder_test.go and
// ssa/pass_cfg_test.go wire up basic blocks by hand in the teacher
// package. It is a test-only fixture builder, never imported by
// non-test code.
package irtest

import (
	"fmt"

	"github.com/m4rs-mt/ilgpu-go/ir"
)

// Block is a mutable, concrete ir.Block used to hand-build test graphs.
type Block struct {
	id         int
	name       string
	preds      []ir.Block
	succs      []ir.Block
	values     []ir.Value
	terminator ir.Value
}

// NewBlock allocates a named, unwired block.
func NewBlock(id int, name string) *Block {
	return &Block{id: id, name: name}
}

func (b *Block) Successors() []ir.Block   { return b.succs }
func (b *Block) Predecessors() []ir.Block { return b.preds }
func (b *Block) Terminator() ir.Value     { return b.terminator }
func (b *Block) Values() []ir.Value       { return b.values }
func (b *Block) Name() string             { return b.name }

func (b *Block) FormatError(msg string) string {
	return fmt.Sprintf("%s: %s", b.name, msg)
}

// Append adds a non-terminating value to the block.
func (b *Block) Append(v ir.Value) {
	b.values = append(b.values, v)
}

// Terminate sets the block's terminator and wires successor/predecessor
// edges to targets, mirroring how ssa/basic_block.go's InsertInstruction
// calls addPred for branch-shaped opcodes.
func (b *Block) Terminate(v ir.Value, targets ...*Block) {
	if b.terminator != nil {
		panic("BUG: block already terminated: " + b.name)
	}
	b.terminator = v
	b.values = append(b.values, v)
	for _, t := range targets {
		b.succs = append(b.succs, t)
		t.preds = append(t.preds, b)
	}
}

// Method is a concrete ir.Method over hand-wired Blocks.
type Method struct {
	id         ir.MethodID
	name       string
	entry      *Block
	blocks     []*Block
	params     []ir.Value
	returnType ir.TypeNode
	isVoid     bool
	noBody     bool
}

// NewMethod creates a method with the given entry block already appended.
func NewMethod(id ir.MethodID, name string, entry *Block) *Method {
	m := &Method{id: id, name: name, entry: entry}
	m.blocks = append(m.blocks, entry)
	return m
}

// AddBlock appends b to the method's block list (order doesn't matter;
// reachability is determined by successor edges from the entry block).
func (m *Method) AddBlock(b *Block) *Block {
	m.blocks = append(m.blocks, b)
	return b
}

func (m *Method) SetVoid(v bool)                  { m.isVoid = v }
func (m *Method) SetHasImplementation(has bool)    { m.noBody = !has }
func (m *Method) SetReturnType(t ir.TypeNode)      { m.returnType = t }
func (m *Method) SetParameters(params ...ir.Value) { m.params = params }

func (m *Method) ID() ir.MethodID  { return m.id }
func (m *Method) Name() string     { return m.name }
func (m *Method) EntryBlock() ir.Block { return m.entry }

func (m *Method) AllBlocks() []ir.Block {
	out := make([]ir.Block, len(m.blocks))
	for i, b := range m.blocks {
		out[i] = b
	}
	return out
}

func (m *Method) IsVoid() bool             { return m.isVoid }
func (m *Method) HasImplementation() bool  { return !m.noBody }
func (m *Method) Parameters() []ir.Value   { return m.params }
func (m *Method) NumParameters() int       { return len(m.params) }
func (m *Method) ReturnType() ir.TypeNode  { return m.returnType }
