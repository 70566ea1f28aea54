package irtest

import "github.com/m4rs-mt/ilgpu-go/ir"

// base is embedded by every concrete value kind below; it supplies the
// common ir.Value methods so each kind-specific struct only has to add
// its own typed accessors; this mirrors how the teacher's flattened
// Instruction carries every field but dispatch in the rest of this
// package is by Kind(), not by method set, so a value only satisfies the
// ir.Phi/ir.Compare/… subkind interfaces its Kind() actually claims.
type base struct {
	id       int
	kind     ir.ValueKind
	block    ir.Block
	typ      ir.TypeNode
	operands []ir.Value
}

func (b *base) Kind() ir.ValueKind   { return b.kind }
func (b *base) Block() ir.Block      { return b.block }
func (b *base) Type() ir.TypeNode    { return b.typ }
func (b *base) Operands() []ir.Value { return b.operands }

var nextValueID int

func newBase(blk ir.Block, kind ir.ValueKind, typ ir.TypeNode, operands ...ir.Value) base {
	nextValueID++
	return base{id: nextValueID, kind: kind, block: blk, typ: typ, operands: operands}
}

// Parameter represents a KindParameter value.
type Parameter struct{ base }

func NewParameter(blk ir.Block, typ ir.TypeNode) *Parameter {
	return &Parameter{newBase(blk, ir.KindParameter, typ)}
}

// PhiValue represents a KindPhi value.
type PhiValue struct {
	base
	incoming []ir.PhiEdge
}

// NewPhi creates a phi with no incoming edges yet; use AddIncoming to wire
// them once the predecessor values exist (predecessors are often defined
// after the phi itself, e.g. loop back-edges).
func NewPhi(blk ir.Block, typ ir.TypeNode) *PhiValue {
	return &PhiValue{base: newBase(blk, ir.KindPhi, typ)}
}

func (p *PhiValue) AddIncoming(v ir.Value, from ir.Block) {
	p.incoming = append(p.incoming, ir.PhiEdge{Value: v, Block: from})
	p.operands = append(p.operands, v)
}

func (p *PhiValue) Incoming() []ir.PhiEdge { return p.incoming }

// Predicate represents a KindPredicate value.
type Predicate struct {
	base
	cond, ifTrue, ifFalse ir.Value
}

func NewPredicate(blk ir.Block, typ ir.TypeNode, cond, ifTrue, ifFalse ir.Value) *Predicate {
	return &Predicate{newBase(blk, ir.KindPredicate, typ, cond, ifTrue, ifFalse), cond, ifTrue, ifFalse}
}

func (p *Predicate) Condition() ir.Value { return p.cond }
func (p *Predicate) IfTrue() ir.Value    { return p.ifTrue }
func (p *Predicate) IfFalse() ir.Value   { return p.ifFalse }

// GetField represents a KindGetField value.
type GetFieldValue struct {
	base
	source      ir.Value
	offset, span int
}

func NewGetField(blk ir.Block, typ ir.TypeNode, source ir.Value, offset, span int) *GetFieldValue {
	return &GetFieldValue{newBase(blk, ir.KindGetField, typ, source), source, offset, span}
}

func (g *GetFieldValue) Source() ir.Value { return g.source }
func (g *GetFieldValue) FieldOffset() int { return g.offset }
func (g *GetFieldValue) FieldSpan() int   { return g.span }

// SetField represents a KindSetField value.
type SetFieldValue struct {
	base
	source   ir.Value
	index    int
	newValue ir.Value
}

func NewSetField(blk ir.Block, typ ir.TypeNode, source ir.Value, index int, newValue ir.Value) *SetFieldValue {
	return &SetFieldValue{newBase(blk, ir.KindSetField, typ, source, newValue), source, index, newValue}
}

func (s *SetFieldValue) Source() ir.Value   { return s.source }
func (s *SetFieldValue) FieldIndex() int    { return s.index }
func (s *SetFieldValue) NewValue() ir.Value { return s.newValue }

// StructureValue represents a KindStructureValue value.
type StructureValue struct {
	base
	fields []ir.Value
}

func NewStructureValue(blk ir.Block, typ ir.TypeNode, fields ...ir.Value) *StructureValue {
	return &StructureValue{newBase(blk, ir.KindStructureValue, typ, fields...), fields}
}

func (s *StructureValue) Fields() []ir.Value { return s.fields }

// MethodCallValue represents a KindMethodCall value.
type MethodCallValue struct {
	base
	target ir.Method
	args   []ir.Value
}

func NewMethodCall(blk ir.Block, typ ir.TypeNode, target ir.Method, args ...ir.Value) *MethodCallValue {
	return &MethodCallValue{newBase(blk, ir.KindMethodCall, typ, args...), target, args}
}

func (m *MethodCallValue) Target() ir.Method { return m.target }
func (m *MethodCallValue) Args() []ir.Value  { return m.args }

// AllocaValue represents a KindAlloca value.
type AllocaValue struct {
	base
	stackAlign int
}

func NewAlloca(blk ir.Block, typ ir.TypeNode, stackAlign int) *AllocaValue {
	return &AllocaValue{newBase(blk, ir.KindAlloca, typ), stackAlign}
}

func (a *AllocaValue) StackAlignment() int { return a.stackAlign }

// LoadElementAddressValue represents a KindLoadElementAddress value.
type LoadElementAddressValue struct {
	base
	source  ir.Value
	elemTyp ir.TypeNode
}

func NewLoadElementAddress(blk ir.Block, ptrTyp ir.TypeNode, source ir.Value, elemTyp ir.TypeNode) *LoadElementAddressValue {
	return &LoadElementAddressValue{newBase(blk, ir.KindLoadElementAddress, ptrTyp, source), source, elemTyp}
}

func (l *LoadElementAddressValue) Source() ir.Value      { return l.source }
func (l *LoadElementAddressValue) ElementType() ir.TypeNode { return l.elemTyp }

// LoadFieldAddressValue represents a KindLoadFieldAddress value.
type LoadFieldAddressValue struct {
	base
	source   ir.Value
	fieldTyp ir.TypeNode
}

func NewLoadFieldAddress(blk ir.Block, ptrTyp ir.TypeNode, source ir.Value, fieldTyp ir.TypeNode) *LoadFieldAddressValue {
	return &LoadFieldAddressValue{newBase(blk, ir.KindLoadFieldAddress, ptrTyp, source), source, fieldTyp}
}

func (l *LoadFieldAddressValue) Source() ir.Value    { return l.source }
func (l *LoadFieldAddressValue) FieldType() ir.TypeNode { return l.fieldTyp }

// AlignViewToValue represents a KindAlignViewTo value.
type AlignViewToValue struct {
	base
	source    ir.Value
	alignment int
}

func NewAlignViewTo(blk ir.Block, typ ir.TypeNode, source ir.Value, alignment int) *AlignViewToValue {
	return &AlignViewToValue{newBase(blk, ir.KindAlignViewTo, typ, source), source, alignment}
}

func (a *AlignViewToValue) Source() ir.Value { return a.source }
func (a *AlignViewToValue) Alignment() int   { return a.alignment }

// PrimitiveValue represents a KindPrimitive value, optionally an integer
// constant.
type PrimitiveValue struct {
	base
	isIntConst bool
	intConst   int64
}

func NewPrimitive(blk ir.Block, typ ir.TypeNode) *PrimitiveValue {
	return &PrimitiveValue{base: newBase(blk, ir.KindPrimitive, typ)}
}

// NewIntConst creates an integer-constant primitive value.
func NewIntConst(blk ir.Block, typ ir.TypeNode, v int64) *PrimitiveValue {
	return &PrimitiveValue{base: newBase(blk, ir.KindPrimitive, typ), isIntConst: true, intConst: v}
}

func (p *PrimitiveValue) IsIntegerConstant() bool { return p.isIntConst }
func (p *PrimitiveValue) IntegerConstant() int64  { return p.intConst }

// UndefinedValue represents a KindUndefined value.
type UndefinedValue struct{ base }

func NewUndefined(blk ir.Block, typ ir.TypeNode) *UndefinedValue {
	return &UndefinedValue{newBase(blk, ir.KindUndefined, typ)}
}

// CompareValue represents a KindCompare value.
type CompareValue struct {
	base
	left, right ir.Value
	cmpKind     ir.CompareKind
}

func NewCompare(blk ir.Block, typ ir.TypeNode, left, right ir.Value, kind ir.CompareKind) *CompareValue {
	return &CompareValue{newBase(blk, ir.KindCompare, typ, left, right), left, right, kind}
}

func (c *CompareValue) Left() ir.Value            { return c.left }
func (c *CompareValue) Right() ir.Value           { return c.right }
func (c *CompareValue) CompareKind() ir.CompareKind { return c.cmpKind }

// BinaryArithmeticValue represents a KindBinaryArithmetic value.
type BinaryArithmeticValue struct {
	base
	left, right ir.Value
	opKind      ir.ArithmeticKind
}

func NewBinaryArithmetic(blk ir.Block, typ ir.TypeNode, left, right ir.Value, kind ir.ArithmeticKind) *BinaryArithmeticValue {
	return &BinaryArithmeticValue{newBase(blk, ir.KindBinaryArithmetic, typ, left, right), left, right, kind}
}

func (b *BinaryArithmeticValue) Left() ir.Value  { return b.left }
func (b *BinaryArithmeticValue) Right() ir.Value { return b.right }
func (b *BinaryArithmeticValue) ArithmeticKind() ir.ArithmeticKind { return b.opKind }

// ConditionalBranchValue is the terminator value of KindConditionalBranch.
type ConditionalBranchValue struct {
	base
	cond              ir.Value
	trueBlk, falseBlk ir.Block
}

func NewConditionalBranch(blk ir.Block, cond ir.Value, trueBlk, falseBlk ir.Block) *ConditionalBranchValue {
	return &ConditionalBranchValue{newBase(blk, ir.KindConditionalBranch, nil, cond), cond, trueBlk, falseBlk}
}

func (c *ConditionalBranchValue) Condition() ir.Value  { return c.cond }
func (c *ConditionalBranchValue) TrueTarget() ir.Block  { return c.trueBlk }
func (c *ConditionalBranchValue) FalseTarget() ir.Block { return c.falseBlk }

// UnconditionalBranchValue is the terminator value of KindUnconditionalBranch.
type UnconditionalBranchValue struct {
	base
	target ir.Block
}

func NewUnconditionalBranch(blk ir.Block, target ir.Block) *UnconditionalBranchValue {
	return &UnconditionalBranchValue{newBase(blk, ir.KindUnconditionalBranch, nil), target}
}

func (u *UnconditionalBranchValue) Target() ir.Block { return u.target }

// ReturnValue is the terminator value of KindReturn.
type ReturnValue struct {
	base
	results []ir.Value
}

func NewReturn(blk ir.Block, results ...ir.Value) *ReturnValue {
	return &ReturnValue{newBase(blk, ir.KindReturn, nil, results...), results}
}

func (r *ReturnValue) Results() []ir.Value { return r.results }

// LaneIdxValue, GroupIndexValue and GridIndexValue are the thread-intrinsic
// values of their respective kinds; they carry no extra data.
type LaneIdxValue struct{ base }

func NewLaneIdx(blk ir.Block, typ ir.TypeNode) *LaneIdxValue {
	return &LaneIdxValue{newBase(blk, ir.KindLaneIdx, typ)}
}

type GroupIndexValue struct{ base }

func NewGroupIndex(blk ir.Block, typ ir.TypeNode) *GroupIndexValue {
	return &GroupIndexValue{newBase(blk, ir.KindGroupIndex, typ)}
}

type GridIndexValue struct{ base }

func NewGridIndex(blk ir.Block, typ ir.TypeNode) *GridIndexValue {
	return &GridIndexValue{newBase(blk, ir.KindGridIndex, typ)}
}
