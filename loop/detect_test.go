package loop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/ir/irtest"
	"github.com/m4rs-mt/ilgpu-go/loop"
)

func namesOf(blocks []ir.Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Name()
	}
	return out
}

// simpleCountedLoop builds the S2 fixture: a header that conditionally
// branches into the body or out to exit, with the body branching straight
// back to the header.
func simpleCountedLoop() (entry, header, body, exit *irtest.Block) {
	entry = irtest.NewBlock(0, "entry")
	header = irtest.NewBlock(1, "header")
	body = irtest.NewBlock(2, "body")
	exit = irtest.NewBlock(3, "exit")

	entry.Terminate(irtest.NewUnconditionalBranch(entry, header), header)
	header.Terminate(irtest.NewConditionalBranch(header, irtest.NewPrimitive(header, irtest.Int32()), body, exit), body, exit)
	body.Terminate(irtest.NewUnconditionalBranch(body, header), header)
	exit.Terminate(irtest.NewReturn(exit))
	return
}

// doWhileLoop builds the S3 fixture: a single block that is both header and
// body, conditionally branching back to itself or out to exit.
func doWhileLoop() (entry, body, exit *irtest.Block) {
	entry = irtest.NewBlock(0, "entry")
	body = irtest.NewBlock(1, "body")
	exit = irtest.NewBlock(2, "exit")

	entry.Terminate(irtest.NewUnconditionalBranch(entry, body), body)
	body.Terminate(irtest.NewConditionalBranch(body, irtest.NewPrimitive(body, irtest.Int32()), body, exit), body, exit)
	exit.Terminate(irtest.NewReturn(exit))
	return
}

// nestedLoop builds the S4 fixture: an outer counted loop whose body
// contains a fully nested inner counted loop.
func nestedLoop() (entry, outerHeader, outerBody, innerHeader, innerBody, outerLatch, exit *irtest.Block) {
	entry = irtest.NewBlock(0, "entry")
	outerHeader = irtest.NewBlock(1, "outerHeader")
	outerBody = irtest.NewBlock(2, "outerBody")
	innerHeader = irtest.NewBlock(3, "innerHeader")
	innerBody = irtest.NewBlock(4, "innerBody")
	outerLatch = irtest.NewBlock(5, "outerLatch")
	exit = irtest.NewBlock(6, "exit")

	entry.Terminate(irtest.NewUnconditionalBranch(entry, outerHeader), outerHeader)
	outerHeader.Terminate(irtest.NewConditionalBranch(outerHeader, irtest.NewPrimitive(outerHeader, irtest.Int32()), outerBody, exit), outerBody, exit)
	outerBody.Terminate(irtest.NewUnconditionalBranch(outerBody, innerHeader), innerHeader)
	innerHeader.Terminate(irtest.NewConditionalBranch(innerHeader, irtest.NewPrimitive(innerHeader, irtest.Int32()), innerBody, outerLatch), innerBody, outerLatch)
	innerBody.Terminate(irtest.NewUnconditionalBranch(innerBody, innerHeader), innerHeader)
	outerLatch.Terminate(irtest.NewUnconditionalBranch(outerLatch, outerHeader), outerHeader)
	exit.Terminate(irtest.NewReturn(exit))
	return
}

func TestDetectSimpleCountedLoop(t *testing.T) {
	entry, header, body, exit := simpleCountedLoop()
	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	forest := loop.Detect(view)

	require.Len(t, forest.TopLevel(), 1)
	n := forest.TopLevel()[0]

	require.ElementsMatch(t, []string{"header", "body"}, namesOf(n.Members()))
	require.ElementsMatch(t, []string{"header"}, namesOf(n.Headers()))
	require.ElementsMatch(t, []string{"header"}, namesOf(n.Breakers()))
	require.ElementsMatch(t, []string{"body"}, namesOf(n.BackEdges()))
	require.ElementsMatch(t, []string{"entry"}, namesOf(n.Entries()))
	require.ElementsMatch(t, []string{"exit"}, namesOf(n.Exits()))
	require.False(t, n.IsNested())
	require.Equal(t, 0, n.Depth())

	got, ok := forest.InnermostLoop(header)
	require.True(t, ok)
	require.Same(t, n, got)
	_, ok = forest.InnermostLoop(exit)
	require.False(t, ok)
}

func TestDetectDoWhileLoop(t *testing.T) {
	entry, body, exit := doWhileLoop()
	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	forest := loop.Detect(view)

	require.Len(t, forest.TopLevel(), 1)
	n := forest.TopLevel()[0]
	require.ElementsMatch(t, []string{"body"}, namesOf(n.Members()))
	require.ElementsMatch(t, []string{"body"}, namesOf(n.Headers()))
	require.ElementsMatch(t, []string{"body"}, namesOf(n.Breakers()))
	require.ElementsMatch(t, []string{"body"}, namesOf(n.BackEdges()))
	require.ElementsMatch(t, []string{"entry"}, namesOf(n.Entries()))
	require.ElementsMatch(t, []string{"exit"}, namesOf(n.Exits()))

	_, ok := forest.InnermostLoop(exit)
	require.False(t, ok)
}

func TestDetectNestedLoop(t *testing.T) {
	entry, outerHeader, _, innerHeader, innerBody, _, _ := nestedLoop()
	view := cfg.Build(entry, cfg.Forwards, cfg.ReversePostOrder)
	forest := loop.Detect(view)

	require.Len(t, forest.TopLevel(), 1)
	outer := forest.TopLevel()[0]
	require.Len(t, outer.Children(), 1)
	inner := outer.Children()[0]

	require.ElementsMatch(t, []string{"outerHeader", "outerBody", "innerHeader", "innerBody", "outerLatch"}, namesOf(outer.Members()))
	require.ElementsMatch(t, []string{"outerHeader"}, namesOf(outer.Headers()))
	require.ElementsMatch(t, []string{"outerLatch"}, namesOf(outer.BackEdges()))

	require.ElementsMatch(t, []string{"innerHeader", "innerBody"}, namesOf(inner.Members()))
	require.ElementsMatch(t, []string{"innerHeader"}, namesOf(inner.Headers()))
	require.ElementsMatch(t, []string{"innerBody"}, namesOf(inner.BackEdges()))
	require.ElementsMatch(t, []string{"outerBody"}, namesOf(inner.Entries()))
	require.ElementsMatch(t, []string{"outerLatch"}, namesOf(inner.Exits()))

	require.True(t, inner.IsNested())
	require.Same(t, outer, inner.Parent())
	require.Equal(t, 1, inner.Depth())
	require.Equal(t, 0, outer.Depth())

	got, ok := forest.InnermostLoop(innerHeader)
	require.True(t, ok)
	require.Same(t, inner, got)
	got, ok = forest.InnermostLoop(outerHeader)
	require.True(t, ok)
	require.Same(t, outer, got)
	got, ok = forest.InnermostLoop(innerBody)
	require.True(t, ok)
	require.Same(t, inner, got)

	order := forest.BottomUp()
	require.Len(t, order, 2)
	require.Same(t, inner, order[0])
	require.Same(t, outer, order[1])
}
