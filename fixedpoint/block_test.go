package fixedpoint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/fixedpoint"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/ir/irtest"
)

// diamond builds A -> {B, C} -> D, the longest-path-from-entry distance
// being 0/1/1/2 for A/B/C/D respectively.
func diamond() *cfg.View {
	a := irtest.NewBlock(0, "A")
	b := irtest.NewBlock(1, "B")
	c := irtest.NewBlock(2, "C")
	d := irtest.NewBlock(3, "D")
	a.Terminate(irtest.NewUnconditionalBranch(a, nil), b, c)
	b.Terminate(irtest.NewUnconditionalBranch(b, nil), d)
	c.Terminate(irtest.NewUnconditionalBranch(c, nil), d)
	d.Terminate(irtest.NewReturn(d))
	return cfg.Build(a, cfg.Forwards, cfg.ReversePostOrder)
}

func TestRunBlockPropagatesLongestPathFromEntry(t *testing.T) {
	view := diamond()

	depth := fixedpoint.RunBlock(view, func(b ir.Block) int { return 0 },
		func(b ir.Block, mapping *cfg.BlockMap[int]) (int, bool) {
			best := 0
			if len(view.Node(b).Predecessors()) > 0 {
				best = -1
				for _, p := range view.Node(b).Predecessors() {
					if d := mapping.Get(p) + 1; d > best {
						best = d
					}
				}
			}
			old := mapping.Get(b)
			return best, best != old
		})

	coll := view.Collection()
	byName := map[string]ir.Block{}
	for i := 0; i < coll.Len(); i++ {
		byName[coll.At(i).Name()] = coll.At(i)
	}

	require.Equal(t, 0, depth.Get(byName["A"]))
	require.Equal(t, 1, depth.Get(byName["B"]))
	require.Equal(t, 1, depth.Get(byName["C"]))
	require.Equal(t, 2, depth.Get(byName["D"]))
}
