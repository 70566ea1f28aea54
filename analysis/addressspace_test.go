package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/analysis"
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/ir/irtest"
)

// TestComputeAddressSpacePhiUnifiesToGeneric walks spec §4.10 scenario S6:
// p1 is declared Global, p2 is declared Shared, p = phi(p1, p2) should carry
// both bits and unify to Generic since no single space is agreed on.
func TestComputeAddressSpacePhiUnifiesToGeneric(t *testing.T) {
	entry := irtest.NewBlock(0, "entry")

	p1 := irtest.NewParameter(entry, irtest.Pointer(8, ir.AddressSpaceGlobal))
	entry.Append(p1)
	p2 := irtest.NewParameter(entry, irtest.Pointer(8, ir.AddressSpaceShared))
	entry.Append(p2)

	phi := irtest.NewPhi(entry, irtest.Pointer(8, ir.AddressSpaceGeneric))
	phi.AddIncoming(p1, entry)
	phi.AddIncoming(p2, entry)
	entry.Append(phi)

	entry.Terminate(irtest.NewReturn(entry, phi))

	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	info := analysis.ComputeAddressSpace(view, analysis.Automatic, ir.AddressSpaceGeneric)

	require.Equal(t, ir.AddressSpaceGlobal, info.Unify(p1))
	require.Equal(t, ir.AddressSpaceShared, info.Unify(p2))
	require.Equal(t, ir.AddressSpaceGeneric, info.Unify(phi))
}

func TestComputeAddressSpaceConstContextOverridesParameterType(t *testing.T) {
	entry := irtest.NewBlock(0, "entry")
	p := irtest.NewParameter(entry, irtest.Pointer(8, ir.AddressSpaceGlobal))
	entry.Append(p)
	entry.Terminate(irtest.NewReturn(entry, p))

	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	info := analysis.ComputeAddressSpace(view, analysis.Const, ir.AddressSpaceLocal)

	require.Equal(t, ir.AddressSpaceLocal, info.Unify(p))
}
