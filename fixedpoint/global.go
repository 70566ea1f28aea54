package fixedpoint

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/internal/scopecache"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/lattice"
)

// Option customizes a RunGlobal invocation.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger enables debug tracing of the configuration worklist: every
// (Method, ArgVector) enqueued and every reprocessing triggered by a
// callee's refined return value.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ArgVector is a resolved argument vector: one lattice value per formal
// parameter, in declaration order.
type ArgVector[T comparable] []lattice.Value[T]

// GlobalRules customizes the global (inter-procedural) driver. Its
// Merge/Bottom/Seed fields are passed on to the value driver for every
// configuration it runs; ViewFor is the only global-specific field.
type GlobalRules[T comparable] struct {
	Merge lattice.Merge[T]
	Bottom T
	// Seed overrides non-parameter values the same way ValueRules.Seed
	// does (an analysis's Alloca/type-driven seeding, say); parameters are
	// always seeded from the active configuration's ArgVector.
	Seed func(v ir.Value) (lattice.Value[T], bool)
	// ViewFor builds the CFG view to analyze a method under. Methods
	// without an implementation are never passed here.
	ViewFor func(m ir.Method) *cfg.View
}

type configResult[T comparable] struct {
	values map[ir.Value]lattice.Value[T]
	ret    lattice.Value[T]
}

func configKey[T comparable](m ir.Method, args ArgVector[T]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", m.ID())
	for i, a := range args {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%v", a.Data)
		for _, c := range a.Children {
			fmt.Fprintf(&b, ",%v", c)
		}
	}
	return b.String()
}

// globalRun holds the mutable state of one RunGlobal invocation: the
// memoized per-configuration results, the pending-configuration worklist,
// and the caller→callee dependency edges that let a callee's improved
// return value wake its callers back up.
type globalRun[T comparable] struct {
	rules    GlobalRules[T]
	cache    *scopecache.Cache[string, *configResult[T]]
	methods  map[string]ir.Method
	args     map[string]ArgVector[T]
	callers  map[string]map[string]bool
	worklist *Worklist[string]
	logger   *zap.Logger
}

// RunGlobal computes the inter-procedural fixed point rooted at entry
// called with entryArgs (spec §4.9's global driver): every (Method,
// ArgVector) configuration reachable by the call graph from entry is
// analyzed, memoized by that pair via internal/scopecache, and
// re-analyzed whenever a callee it depends on refines its return value.
// It returns the values map and return value of the entry configuration.
func RunGlobal[T comparable](rules GlobalRules[T], entry ir.Method, entryArgs ArgVector[T], opts ...Option) (map[ir.Value]lattice.Value[T], lattice.Value[T]) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	run := &globalRun[T]{
		rules:    rules,
		cache:    scopecache.New[string, *configResult[T]](1024),
		methods:  map[string]ir.Method{},
		args:     map[string]ArgVector[T]{},
		callers:  map[string]map[string]bool{},
		worklist: NewWorklist[string](),
		logger:   o.logger,
	}

	entryKey := run.register(entry, entryArgs)
	run.worklist.Push(entryKey)
	if run.logger != nil {
		run.logger.Debug("global driver seeded", zap.String("entry", entry.Name()), zap.String("config", entryKey))
	}

	for {
		key, ok := run.worklist.Pop()
		if !ok {
			break
		}
		run.process(key)
	}

	final, ok := run.cache.Get(entryKey)
	if !ok {
		return map[ir.Value]lattice.Value[T]{}, lattice.Value[T]{Data: rules.Bottom}
	}
	return final.values, final.ret
}

func (g *globalRun[T]) register(m ir.Method, args ArgVector[T]) string {
	key := configKey(m, args)
	if _, known := g.methods[key]; !known {
		g.methods[key] = m
		g.args[key] = args
	}
	return key
}

func (g *globalRun[T]) process(key string) {
	method := g.methods[key]
	args := g.args[key]
	if !method.HasImplementation() {
		g.cache.Put(key, &configResult[T]{values: map[ir.Value]lattice.Value[T]{}, ret: lattice.Value[T]{Data: g.rules.Bottom}})
		return
	}

	view := g.rules.ViewFor(method)
	params := method.Parameters()

	valueRules := ValueRules[T]{
		Merge:  g.rules.Merge,
		Bottom: g.rules.Bottom,
		Seed: func(v ir.Value) (lattice.Value[T], bool) {
			for i, p := range params {
				if p == v {
					if i < len(args) {
						return args[i], true
					}
					return lattice.Value[T]{Data: g.rules.Bottom}, true
				}
			}
			if g.rules.Seed != nil {
				return g.rules.Seed(v)
			}
			return lattice.Value[T]{}, false
		},
		ReturnValue: func(target ir.Method, callArgs []lattice.Value[T]) (lattice.Value[T], bool) {
			if target == nil || !target.HasImplementation() {
				return lattice.Value[T]{}, false
			}
			childKey := g.register(target, callArgs)
			if childKey == key {
				return lattice.Value[T]{}, false
			}
			deps, ok := g.callers[childKey]
			if !ok {
				deps = map[string]bool{}
				g.callers[childKey] = deps
			}
			deps[key] = true

			r, computed := g.cache.Get(childKey)
			if !computed {
				if g.logger != nil {
					g.logger.Debug("enqueuing callee configuration", zap.String("callee", target.Name()), zap.String("config", childKey))
				}
				g.worklist.Push(childKey)
				return lattice.Value[T]{}, false
			}
			return r.ret, true
		},
	}

	values, ret := RunValue(view, valueRules)

	prev, hadPrev := g.cache.Get(key)
	changed := !hadPrev || !equalValue(prev.ret, ret)
	g.cache.Put(key, &configResult[T]{values: values, ret: ret})

	if changed {
		if g.logger != nil {
			g.logger.Debug("return value changed, reprocessing callers", zap.String("config", key), zap.Int("callers", len(g.callers[key])))
		}
		for caller := range g.callers[key] {
			g.worklist.Push(caller)
		}
	}
}
