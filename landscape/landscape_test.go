package landscape_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/ir/irtest"
	"github.com/m4rs-mt/ilgpu-go/landscape"
)

// callGraph builds A calls B calls C; D calls C (spec §4.7 S7), returning
// the four methods in a stable, caller-declared order.
func callGraph() (a, b, c, d *irtest.Method) {
	cEntry := irtest.NewBlock(0, "c.entry")
	cEntry.Terminate(irtest.NewReturn(cEntry))
	c = irtest.NewMethod(ir.MethodID(3), "C", cEntry)
	c.SetHasImplementation(true)

	bEntry := irtest.NewBlock(0, "b.entry")
	callC := irtest.NewMethodCall(bEntry, irtest.Int32(), c)
	bEntry.Append(callC)
	bEntry.Terminate(irtest.NewReturn(bEntry, callC))
	b = irtest.NewMethod(ir.MethodID(2), "B", bEntry)
	b.SetHasImplementation(true)

	aEntry := irtest.NewBlock(0, "a.entry")
	callB := irtest.NewMethodCall(aEntry, irtest.Int32(), b)
	aEntry.Append(callB)
	aEntry.Terminate(irtest.NewReturn(aEntry, callB))
	a = irtest.NewMethod(ir.MethodID(1), "A", aEntry)
	a.SetHasImplementation(true)

	dEntry := irtest.NewBlock(0, "d.entry")
	callC2 := irtest.NewMethodCall(dEntry, irtest.Int32(), c)
	dEntry.Append(callC2)
	dEntry.Terminate(irtest.NewReturn(dEntry, callC2))
	d = irtest.NewMethod(ir.MethodID(4), "D", dEntry)
	d.SetHasImplementation(true)

	return a, b, c, d
}

func TestBuildPostOrderPlacesEveryCalleeBeforeItsCaller(t *testing.T) {
	a, b, c, d := callGraph()
	methods := []ir.Method{a, b, c, d}

	g, err := landscape.Build(context.Background(), methods, nil)
	require.NoError(t, err)

	require.ElementsMatch(t, []ir.Method{c}, g.Sinks())

	post := g.PostOrder()
	index := map[ir.MethodID]int{}
	for i, m := range post {
		index[m.ID()] = i
	}
	require.Len(t, post, 4)
	require.Less(t, index[c.ID()], index[b.ID()])
	require.Less(t, index[c.ID()], index[d.ID()])
	require.Less(t, index[b.ID()], index[a.ID()])
}

func TestEntryReferencesAndUses(t *testing.T) {
	a, b, c, d := callGraph()
	methods := []ir.Method{a, b, c, d}

	g, err := landscape.Build(context.Background(), methods, nil)
	require.NoError(t, err)

	cEntry, ok := g.Entry(c)
	require.True(t, ok)
	require.Empty(t, cEntry.References)
	require.Len(t, cEntry.Uses(), 2)
	require.Equal(t, b.ID(), cEntry.Uses()[0].ID())
	require.Equal(t, d.ID(), cEntry.Uses()[1].ID())

	aEntry, ok := g.Entry(a)
	require.True(t, ok)
	require.Len(t, aEntry.References, 1)
	require.Equal(t, b.ID(), aEntry.References[0].ID())
}

func TestBuildCarriesProviderData(t *testing.T) {
	a, _, _, _ := callGraph()
	g, err := landscape.Build(context.Background(), []ir.Method{a}, func(m ir.Method) any {
		return m.Name() + "!"
	})
	require.NoError(t, err)

	e, ok := g.Entry(a)
	require.True(t, ok)
	require.Equal(t, "A!", e.Data)
}
