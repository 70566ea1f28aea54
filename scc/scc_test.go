package scc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/ir/irtest"
	"github.com/m4rs-mt/ilgpu-go/scc"
)

func TestComputeDiamondHasNoCycles(t *testing.T) {
	a := irtest.NewBlock(0, "A")
	b := irtest.NewBlock(1, "B")
	c := irtest.NewBlock(2, "C")
	d := irtest.NewBlock(3, "D")
	a.Terminate(irtest.NewConditionalBranch(a, irtest.NewPrimitive(a, irtest.Int32()), b, c), b, c)
	b.Terminate(irtest.NewUnconditionalBranch(b, d), d)
	c.Terminate(irtest.NewUnconditionalBranch(c, d), d)
	d.Terminate(irtest.NewReturn(d))

	view := cfg.Build(a, cfg.Forwards, cfg.ReversePostOrder)
	result := scc.Compute(view)

	require.Len(t, result.SCCs(), 4)
	for _, s := range result.SCCs() {
		require.Equal(t, 1, s.Len())
	}
}

func TestComputeFindsLoopCycle(t *testing.T) {
	entry := irtest.NewBlock(0, "entry")
	header := irtest.NewBlock(1, "header")
	body := irtest.NewBlock(2, "body")
	exit := irtest.NewBlock(3, "exit")

	entry.Terminate(irtest.NewUnconditionalBranch(entry, header), header)
	header.Terminate(irtest.NewConditionalBranch(header, irtest.NewPrimitive(header, irtest.Int32()), body, exit), body, exit)
	body.Terminate(irtest.NewUnconditionalBranch(body, header), header)
	exit.Terminate(irtest.NewReturn(exit))

	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	result := scc.Compute(view)

	headerSCC, ok := result.Of(header)
	require.True(t, ok)
	bodySCC, ok := result.Of(body)
	require.True(t, ok)
	require.Same(t, headerSCC, bodySCC)
	require.Equal(t, 2, headerSCC.Len())

	entrySCC, ok := result.Of(entry)
	require.True(t, ok)
	require.NotSame(t, entrySCC, headerSCC)
	require.Equal(t, 1, entrySCC.Len())

	breakers := headerSCC.BreakingBlocks(view)
	require.ElementsMatch(t, []string{"header"}, namesOf(breakers))
}

func namesOf(blocks []ir.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Name()
	}
	return out
}
