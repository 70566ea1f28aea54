package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/flow"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/ir/irtest"
	"github.com/m4rs-mt/ilgpu-go/loop"
)

func TestCollectPhisPreservesDefinitionOrder(t *testing.T) {
	header := irtest.NewBlock(0, "header")
	p1 := irtest.NewPhi(header, irtest.Int32())
	p2 := irtest.NewPhi(header, irtest.Int32())
	header.Append(p1)
	header.Append(p2)
	header.Terminate(irtest.NewReturn(header))

	phis := flow.CollectPhis(header)
	require.Len(t, phis, 2)
	require.Same(t, p1, phis[0])
	require.Same(t, p2, phis[1])
}

func TestCollectLoopPhisFindsOutsideOperand(t *testing.T) {
	entry := irtest.NewBlock(0, "entry")
	header := irtest.NewBlock(1, "header")
	body := irtest.NewBlock(2, "body")
	exit := irtest.NewBlock(3, "exit")

	init := irtest.NewIntConst(entry, irtest.Int32(), 0)
	entry.Append(init)
	iv := irtest.NewPhi(header, irtest.Int32())

	internalOnly := irtest.NewPhi(header, irtest.Int32())

	entry.Terminate(irtest.NewUnconditionalBranch(entry, header), header)
	header.Append(iv)
	header.Append(internalOnly)
	header.Terminate(irtest.NewConditionalBranch(header, irtest.NewPrimitive(header, irtest.Int32()), body, exit), body, exit)

	step := irtest.NewIntConst(body, irtest.Int32(), 1)
	updated := irtest.NewBinaryArithmetic(body, irtest.Int32(), iv, step, ir.ArithmeticAdd)
	body.Append(step)
	body.Append(updated)
	body.Terminate(irtest.NewUnconditionalBranch(body, header), header)

	iv.AddIncoming(init, entry)
	iv.AddIncoming(updated, body)
	internalOnly.AddIncoming(updated, body)
	internalOnly.AddIncoming(updated, body)

	exit.Terminate(irtest.NewReturn(exit))

	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	forest := loop.Detect(view)
	require.Len(t, forest.TopLevel(), 1)
	n := forest.TopLevel()[0]

	phis := flow.CollectLoopPhis(n)
	require.Len(t, phis, 1)
	require.Same(t, iv, phis[0])
}

func TestReferencesOrderedDeduplicatedAndFiltered(t *testing.T) {
	entryA := irtest.NewBlock(0, "entryA")
	a := irtest.NewMethod(1, "A", entryA)

	entryB := irtest.NewBlock(0, "entryB")
	b := irtest.NewMethod(2, "B", entryB)

	entryC := irtest.NewBlock(0, "entryC")
	c := irtest.NewMethod(3, "C", entryC)

	entryD := irtest.NewBlock(0, "entryD")
	d := irtest.NewMethod(4, "D", entryD)

	call1 := irtest.NewMethodCall(entryA, nil, b)
	call2 := irtest.NewMethodCall(entryA, nil, c)
	call3 := irtest.NewMethodCall(entryA, nil, b) // duplicate target
	entryA.Append(call1)
	entryA.Append(call2)
	entryA.Append(call3)
	entryA.Terminate(irtest.NewReturn(entryA))

	entryB.Terminate(irtest.NewReturn(entryB))
	entryC.Terminate(irtest.NewReturn(entryC))
	entryD.Terminate(irtest.NewReturn(entryD))

	refs := flow.References(a, nil)
	require.Len(t, refs, 2)
	require.Equal(t, b, refs[0])
	require.Equal(t, c, refs[1])

	filtered := flow.References(a, map[ir.Method]bool{c: true})
	require.Len(t, filtered, 1)
	require.Equal(t, c, filtered[0])
}
