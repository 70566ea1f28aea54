package irtest

import "github.com/m4rs-mt/ilgpu-go/ir"

// Type is a minimal concrete ir.TypeNode for fixtures.
type Type struct {
	flags     ir.TypeFlags
	align     int
	fields    []ir.TypeNode
	addrSpace ir.AddressSpace
	hasAddr   bool
}

// Int32 is a plain 32-bit integer type with 4-byte alignment.
func Int32() *Type { return &Type{flags: ir.TypeFlagInteger, align: 4} }

// Int64 is a plain 64-bit integer type with 8-byte alignment.
func Int64() *Type { return &Type{flags: ir.TypeFlagInteger, align: 8} }

// Pointer builds a pointer type declared in the given address space with
// the given alignment.
func Pointer(align int, space ir.AddressSpace) *Type {
	return &Type{flags: ir.TypeFlagPointer, align: align, addrSpace: space, hasAddr: true}
}

// Struct builds a structure type from its field types; alignment is the
// max of its fields' alignments.
func Struct(fields ...ir.TypeNode) *Type {
	align := 1
	for _, f := range fields {
		align = ir.Max(align, f.Alignment())
	}
	return &Type{flags: ir.TypeFlagStructure, align: align, fields: fields}
}

func (t *Type) HasFlags(flags ir.TypeFlags) bool { return t.flags&flags == flags }
func (t *Type) Alignment() int                   { return t.align }
func (t *Type) IsStructure() bool                { return t.flags&ir.TypeFlagStructure != 0 }
func (t *Type) Fields() []ir.TypeNode            { return t.fields }

func (t *Type) AddressSpace() (ir.AddressSpace, bool) {
	return t.addrSpace, t.hasAddr
}
