package loop

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/internal/pool"
	"github.com/m4rs-mt/ilgpu-go/ir"
)

// Forest is the set of all loops discovered in a method, arranged into a
// parent/child nesting forest (spec §3, §4.4).
type Forest struct {
	arena    pool.Pool[Node]
	all      []*Node
	topLevel []*Node
	loopOf   map[ir.Block]*Node
}

// TopLevel returns the loops with no parent.
func (f *Forest) TopLevel() []*Node { return f.topLevel }

// All returns every loop discovered, parents before their children (the
// order they were discovered in, which is also a valid top-down walk).
func (f *Forest) All() []*Node { return f.all }

// InnermostLoop returns the innermost loop containing b, and whether b is
// a member of any loop at all.
func (f *Forest) InnermostLoop(b ir.Block) (*Node, bool) {
	n, ok := f.loopOf[b]
	return n, ok
}

// BottomUp returns the forest's loops ordered innermost-first: every
// child appears before its parent. This is the order transformations
// (unrolling, etc.) require when processing loops bottom-up.
func (f *Forest) BottomUp() []*Node {
	out := make([]*Node, 0, len(f.all))
	var visit func(n *Node)
	visited := make(map[*Node]bool, len(f.all))
	visit = func(n *Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, c := range n.children {
			visit(c)
		}
		out = append(out, n)
	}
	for _, n := range f.topLevel {
		visit(n)
	}
	return out
}

func (f *Forest) newNode(memberOrder []ir.Block) *Node {
	n, _ := f.arena.Allocate()
	n.members = toSet(memberOrder)
	n.memberOrder = memberOrder
	return n
}

// Detect runs the modified Tarjan loop search of spec §4.4 over view and
// returns the resulting nesting forest. view's direction must be
// Forwards: loops are a forward-control-flow concept.
func Detect(view *cfg.View) *Forest {
	f := &Forest{loopOf: map[ir.Block]*Node{}}
	f.arena = pool.New[Node]()

	order := view.Collection().Blocks()

	allMembers := make(map[ir.Block]bool, len(order))
	for _, b := range order {
		allMembers[b] = true
	}

	headerSet := map[ir.Block]bool{}

	type queued struct {
		node    *Node
		members map[ir.Block]bool
	}

	discover := func(members map[ir.Block]bool, parent *Node) []*queued {
		successors := func(b ir.Block) []ir.Block {
			real := view.Node(b).Successors()
			out := make([]ir.Block, 0, len(real))
			for _, s := range real {
				if members[s] {
					out = append(out, s)
				}
			}
			return out
		}

		// Keep root-candidate iteration in the stable order the
		// collection was traversed in, restricted to this region.
		localOrder := make([]ir.Block, 0, len(members))
		for _, b := range order {
			if members[b] {
				localOrder = append(localOrder, b)
			}
		}

		raw := tarjanOverSet(members, successors, localOrder)

		var out []*queued
		for _, scc := range raw {
			sccMembers := toSet(scc.members)

			// spec §4.4: an SCC is a loop iff some non-header
			// predecessor of the SCC root is itself in the SCC.
			isLoop := false
			for _, p := range view.Node(scc.root).Predecessors() {
				if sccMembers[p] && !headerSet[p] {
					isLoop = true
					break
				}
			}
			if !isLoop {
				continue
			}

			node := f.newNode(scc.members)
			node.parent = parent
			if parent != nil {
				parent.children = append(parent.children, node)
			}

			headerSeen := map[ir.Block]bool{}
			entrySeen := map[ir.Block]bool{}
			for _, m := range scc.members {
				for _, p := range view.Node(m).Predecessors() {
					if !sccMembers[p] {
						node.headers = appendUnique(headerSeen, node.headers, m)
						node.entries = appendUnique(entrySeen, node.entries, p)
					}
				}
			}
			for _, h := range node.headers {
				headerSet[h] = true
			}

			breakerSeen := map[ir.Block]bool{}
			exitSeen := map[ir.Block]bool{}
			for _, m := range scc.members {
				for _, s := range view.Node(m).Successors() {
					if !sccMembers[s] {
						node.breakers = appendUnique(breakerSeen, node.breakers, m)
						node.exits = appendUnique(exitSeen, node.exits, s)
					}
				}
			}

			headerLocal := toSet(node.headers)
			backSeen := map[ir.Block]bool{}
			for _, m := range scc.members {
				for _, s := range view.Node(m).Successors() {
					if headerLocal[s] {
						node.backEdges = appendUnique(backSeen, node.backEdges, m)
						break
					}
				}
			}

			for _, m := range node.memberOrder {
				f.loopOf[m] = node
			}
			f.all = append(f.all, node)
			if parent == nil {
				f.topLevel = append(f.topLevel, node)
			}

			nested := make(map[ir.Block]bool, len(sccMembers))
			for b := range sccMembers {
				if !headerSet[b] {
					nested[b] = true
				}
			}
			out = append(out, &queued{node: node, members: nested})
		}
		return out
	}

	queue := discover(allMembers, nil)
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		queue = append(queue, discover(q.members, q.node)...)
	}

	return f
}
