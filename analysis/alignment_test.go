package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/analysis"
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/ir/irtest"
)

// TestComputeAlignmentFieldThenElementAddress walks spec §4.10 scenario S5:
// p is a stack slot aligned to 64; q loads a field of p whose declared
// alignment is 16 (min(64, 16) = 16); r loads an element off q whose
// declared alignment is 32 (max(16, 32) = 32).
func TestComputeAlignmentFieldThenElementAddress(t *testing.T) {
	entry := irtest.NewBlock(0, "entry")

	ptrTyp := irtest.Pointer(64, ir.AddressSpaceLocal)
	p := irtest.NewAlloca(entry, ptrTyp, 64)
	entry.Append(p)

	fieldTyp := &scaledType{irtest.Int32(), 16}
	q := irtest.NewLoadFieldAddress(entry, ptrTyp, p, fieldTyp)
	entry.Append(q)

	elemTyp := &scaledType{irtest.Int32(), 32}
	r := irtest.NewLoadElementAddress(entry, ptrTyp, q, elemTyp)
	entry.Append(r)

	entry.Terminate(irtest.NewReturn(entry, r))

	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	info := analysis.ComputeAlignment(view)

	require.Equal(t, 64, info.Alignment(p))
	require.Equal(t, 16, info.Alignment(q))
	require.Equal(t, 32, info.Alignment(r))
}

// scaledType wraps a base ir.TypeNode but overrides Alignment, letting
// tests declare a field/element type with an alignment independent of its
// other properties.
type scaledType struct {
	ir.TypeNode
	align int
}

func (s *scaledType) Alignment() int { return s.align }
