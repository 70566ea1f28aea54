// Package landscape builds an inter-procedural call graph over a set of
// methods, ordered so that every method's callees precede it (spec §4.7
// P6, C7) — the order a bottom-up whole-program pass needs to have every
// callee's result ready before its caller is visited.
package landscape

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/m4rs-mt/ilgpu-go/flow"
	"github.com/m4rs-mt/ilgpu-go/ir"
)

// DataProvider supplies a method's custom, analysis-specific payload at
// entry-construction time.
type DataProvider func(ir.Method) any

// Entry is one method's landscape record: its resolved outgoing
// references (restricted to the method set the Graph was built over),
// custom data from the DataProvider, and the sorted list of methods that
// call it.
type Entry struct {
	Method     ir.Method
	References []ir.Method
	Data       any
	uses       []ir.Method
}

// Uses returns the methods that reference this entry's method, sorted by
// method ID.
func (e *Entry) Uses() []ir.Method { return e.uses }

// Graph is the built call graph: every method's Entry, plus the
// callee-before-caller iteration order of spec §4.7 step 5 / P6.
type Graph struct {
	entries  map[ir.MethodID]*Entry
	order    []ir.MethodID // method ids, in build (candidate-set) order
	postOrder []ir.Method
}

// Entry returns m's landscape entry, if it was part of the method set the
// graph was built over.
func (g *Graph) Entry(m ir.Method) (*Entry, bool) {
	e, ok := g.entries[m.ID()]
	return e, ok
}

// Sinks returns the entries with no outgoing references, sorted by method
// ID — the seeds for the post-order DFS.
func (g *Graph) Sinks() []ir.Method {
	var out []ir.Method
	for _, id := range g.order {
		e := g.entries[id]
		if len(e.References) == 0 {
			out = append(out, e.Method)
		}
	}
	sortByID(out)
	return out
}

// PostOrder returns every method in the graph ordered so that a method
// appears only after every method it calls (its References) has already
// appeared (spec §4.7 P6) — the order bottom-up whole-program passes
// require.
func (g *Graph) PostOrder() []ir.Method { return g.postOrder }

func sortByID(methods []ir.Method) {
	sort.Slice(methods, func(i, j int) bool { return methods[i].ID() < methods[j].ID() })
}

// Option configures Build.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger attaches a structured logger; Build is silent without one.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Build computes the landscape over methods: per-method References
// restricted to the set, marks sinks, transposes into sorted Uses lists,
// and runs the serial callee-before-caller post-order DFS over References
// from every method in the order supplied (spec §4.7). Steps 1 and the
// uses-sort are computed in parallel
// via an errgroup; the final DFS is serial by construction.
func Build(ctx context.Context, methods []ir.Method, provider DataProvider, opts ...Option) (*Graph, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	candidates := make(map[ir.Method]bool, len(methods))
	for _, m := range methods {
		candidates[m] = true
	}

	entries := make(map[ir.MethodID]*Entry, len(methods))
	order := make([]ir.MethodID, len(methods))
	for i, m := range methods {
		order[i] = m.ID()
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([]*Entry, len(methods))
	for i, m := range methods {
		i, m := i, m
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			var data any
			if provider != nil {
				data = provider(m)
			}
			results[i] = &Entry{
				Method:     m,
				References: flow.References(m, candidates),
				Data:       data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, e := range results {
		entries[e.Method.ID()] = e
	}

	if o.logger != nil {
		o.logger.Debug("landscape: references computed", zap.Int("methods", len(methods)))
	}

	// Step 3: transpose into uses.
	for _, e := range results {
		for _, r := range e.References {
			target, ok := entries[r.ID()]
			if !ok {
				continue
			}
			target.uses = append(target.uses, e.Method)
		}
	}

	// Step 4: sort uses by ID — embarrassingly parallel; every entry is
	// dispatched onto the errgroup.
	g2, _ := errgroup.WithContext(ctx)
	for _, e := range results {
		e := e
		g2.Go(func() error {
			sortByID(e.uses)
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	graph := &Graph{entries: entries, order: order}
	graph.postOrder = computePostOrder(graph)

	if o.logger != nil {
		o.logger.Debug("landscape: built", zap.Int("sinks", len(graph.Sinks())))
	}

	return graph, nil
}

// computePostOrder runs the serial DFS of spec §4.7 step 5 / P6: a
// standard postorder over the forward References edges (method → callee),
// emitting a method only after every one of its callees has already been
// emitted. Traversal is seeded from every candidate in the order the
// methods were supplied to Build, so that methods unreachable from any
// single root are still covered.
func computePostOrder(g *Graph) []ir.Method {
	visited := make(map[ir.MethodID]bool, len(g.order))
	var out []ir.Method

	type frame struct {
		entry *Entry
		next  int
	}
	var stack []frame

	visit := func(start *Entry) {
		if visited[start.Method.ID()] {
			return
		}
		visited[start.Method.ID()] = true
		stack = append(stack, frame{entry: start})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.entry.References) {
				callee := top.entry.References[top.next]
				top.next++
				ce := g.entries[callee.ID()]
				if ce != nil && !visited[callee.ID()] {
					visited[callee.ID()] = true
					stack = append(stack, frame{entry: ce})
				}
				continue
			}
			out = append(out, top.entry.Method)
			stack = stack[:len(stack)-1]
		}
	}

	for _, id := range g.order {
		visit(g.entries[id])
	}

	return out
}
