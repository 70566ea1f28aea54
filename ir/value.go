package ir

// ValueKind discriminates the Value subkinds referenced by the analyses
// (spec §3). A Value's Kind determines which typed accessor interface it
// additionally implements; callers type-assert to the interface matching
// Kind().
type ValueKind int

const (
	KindParameter ValueKind = iota
	KindPhi
	KindPredicate
	KindGetField
	KindSetField
	KindStructureValue
	KindMethodCall
	KindAlloca
	KindLoadElementAddress
	KindLoadFieldAddress
	KindAlignViewTo
	KindPrimitive
	KindUndefined
	KindCompare
	KindBinaryArithmetic
	KindConditionalBranch
	KindUnconditionalBranch
	KindReturn
	KindLaneIdx
	KindGroupIndex
	KindGridIndex
)

func (k ValueKind) String() string {
	switch k {
	case KindParameter:
		return "Parameter"
	case KindPhi:
		return "PhiValue"
	case KindPredicate:
		return "Predicate"
	case KindGetField:
		return "GetField"
	case KindSetField:
		return "SetField"
	case KindStructureValue:
		return "StructureValue"
	case KindMethodCall:
		return "MethodCall"
	case KindAlloca:
		return "Alloca"
	case KindLoadElementAddress:
		return "LoadElementAddress"
	case KindLoadFieldAddress:
		return "LoadFieldAddress"
	case KindAlignViewTo:
		return "AlignViewTo"
	case KindPrimitive:
		return "PrimitiveValue"
	case KindUndefined:
		return "UndefinedValue"
	case KindCompare:
		return "CompareValue"
	case KindBinaryArithmetic:
		return "BinaryArithmeticValue"
	case KindConditionalBranch:
		return "ConditionalBranch"
	case KindUnconditionalBranch:
		return "UnconditionalBranch"
	case KindReturn:
		return "ReturnTerminator"
	case KindLaneIdx:
		return "LaneIdxValue"
	case KindGroupIndex:
		return "GroupIndexValue"
	case KindGridIndex:
		return "GridIndexValue"
	default:
		return "Unknown"
	}
}

// Value is an opaque instruction identity inside exactly one block.
type Value interface {
	Kind() ValueKind
	// Block returns the block this value is defined in.
	Block() Block
	// Type returns the static type of this value.
	Type() TypeNode
	// Operands returns the raw operand list, used by analyses that don't
	// care about a specific subkind's typed accessors (the fixed-point
	// framework's default per-value merge rule, §4.9).
	Operands() []Value
}

// PhiEdge pairs an incoming value with the predecessor block it flows in
// from.
type PhiEdge struct {
	Value Value
	Block Block
}

// Phi is implemented by values of KindPhi.
type Phi interface {
	Value
	Incoming() []PhiEdge
}

// Predicate is implemented by values of KindPredicate: an if-then-else
// merge of two values keyed by a boolean condition, as opposed to Phi's
// per-predecessor-block merge.
type Predicate interface {
	Value
	Condition() Value
	IfTrue() Value
	IfFalse() Value
}

// GetField is implemented by values of KindGetField.
type GetField interface {
	Value
	Source() Value
	FieldOffset() int
	FieldSpan() int
}

// SetField is implemented by values of KindSetField.
type SetField interface {
	Value
	Source() Value
	FieldIndex() int
	NewValue() Value
}

// Structure is implemented by values of KindStructureValue.
type Structure interface {
	Value
	Fields() []Value
}

// MethodCall is implemented by values of KindMethodCall.
type MethodCall interface {
	Value
	Target() Method
	Args() []Value
}

// Alloca is implemented by values of KindAlloca.
type Alloca interface {
	Value
	// StackAlignment is the alignment, in bytes, the IR assigns this
	// stack slot.
	StackAlignment() int
}

// LoadElementAddress is implemented by values of KindLoadElementAddress.
type LoadElementAddress interface {
	Value
	Source() Value
	ElementType() TypeNode
}

// LoadFieldAddress is implemented by values of KindLoadFieldAddress.
type LoadFieldAddress interface {
	Value
	Source() Value
	FieldType() TypeNode
}

// AlignViewTo is implemented by values of KindAlignViewTo.
type AlignViewTo interface {
	Value
	Source() Value
	Alignment() int
}

// CompareKind enumerates comparison operators.
type CompareKind int

const (
	CompareLT CompareKind = iota
	CompareLE
	CompareGT
	CompareGE
	CompareEQ
	CompareNE
)

// Compare is implemented by values of KindCompare.
type Compare interface {
	Value
	Left() Value
	Right() Value
	CompareKind() CompareKind
}

// ArithmeticKind enumerates binary arithmetic operators relevant to
// induction-variable update resolution.
type ArithmeticKind int

const (
	ArithmeticAdd ArithmeticKind = iota
	ArithmeticSub
	ArithmeticMul
	ArithmeticDiv
)

// BinaryArithmetic is implemented by values of KindBinaryArithmetic.
type BinaryArithmetic interface {
	Value
	Left() Value
	Right() Value
	ArithmeticKind() ArithmeticKind
}

// ConditionalBranch is implemented by the terminator value of KindConditionalBranch.
type ConditionalBranch interface {
	Value
	Condition() Value
	TrueTarget() Block
	FalseTarget() Block
}

// UnconditionalBranch is implemented by the terminator value of KindUnconditionalBranch.
type UnconditionalBranch interface {
	Value
	Target() Block
}

// Return is implemented by the terminator value of KindReturn.
type Return interface {
	Value
	Results() []Value
}

// Constant is implemented by any value that carries a known integer
// constant at compile time (PrimitiveValue of integer type). Analyses use
// this instead of switching on Kind() directly so that constant-folded
// non-primitive values (if a future IR adds any) still participate.
type Constant interface {
	Value
	IsIntegerConstant() bool
	IntegerConstant() int64
}
