// Package loopinfo extracts induction variables and trip-count bounds from
// a structurally well-formed natural loop (spec §4.6, C6).
package loopinfo

import (
	"github.com/m4rs-mt/ilgpu-go/cfg"
	"github.com/m4rs-mt/ilgpu-go/flow"
	"github.com/m4rs-mt/ilgpu-go/internal/ierr"
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/loop"
)

// OutsidePhi is a loop phi that is not an induction variable but still
// carries a resolvable operand from outside the loop, recorded via a back
// edge plus an external source (spec §4.6 item 3(b)).
type OutsidePhi struct {
	Phi           ir.Phi
	OutsideValue  ir.Value
	OutsideBlock  ir.Block
}

// InductionVariable is a loop phi whose break-branch condition compares it
// against a value, with one incoming operand from inside the loop (the
// update) and one from outside (the initial value).
type InductionVariable struct {
	Index int
	Phi   ir.Phi

	Init      ir.Value
	InitBlock ir.Block

	Update      ir.Value
	UpdateBlock ir.Block

	BreakBranch ir.ConditionalBranch
	BreakBlock  ir.Block
}

// UpdateOperation is the resolved shape of an induction variable's update
// value: a binary arithmetic op with a known step operand.
type UpdateOperation struct {
	Arithmetic ir.BinaryArithmetic
	Step       ir.Value
}

// TryResolveUpdateOperation requires Update to be an integer
// BinaryArithmeticValue and identifies the step operand.
//
// The step is always operand index 1 (Right()), regardless of which side
// the induction variable itself resolves to — the source's
// stepValueIndex computation collapses to a constant 1 in both branches
// of its ternary, and that observable behavior is retained here rather
// than "fixed" to pick whichever side isn't the phi.
func (iv *InductionVariable) TryResolveUpdateOperation() (*UpdateOperation, bool) {
	arith, ok := iv.Update.(ir.BinaryArithmetic)
	if !ok {
		return nil, false
	}
	if arith.Type() == nil || !arith.Type().HasFlags(ir.TypeFlagInteger) {
		return nil, false
	}
	return &UpdateOperation{Arithmetic: arith, Step: arith.Right()}, true
}

// BreakOperation is the resolved shape of an induction variable's
// break-branch condition: a comparison of the phi against a bound value.
type BreakOperation struct {
	Compare ir.Compare
	Kind    ir.CompareKind
	Bound   ir.Value
}

// TryResolveBreakOperation identifies the compare kind and the non-phi
// bound operand of BreakBranch's condition.
func (iv *InductionVariable) TryResolveBreakOperation() (*BreakOperation, bool) {
	cmp, ok := iv.BreakBranch.Condition().(ir.Compare)
	if !ok {
		return nil, false
	}
	var bound ir.Value
	switch {
	case cmp.Left() == iv.Phi:
		bound = cmp.Right()
	case cmp.Right() == iv.Phi:
		bound = cmp.Left()
	default:
		return nil, false
	}
	return &BreakOperation{Compare: cmp, Kind: cmp.CompareKind(), Bound: bound}, true
}

// InductionVariableBounds holds the fully-resolved integer constants
// needed to compute a trip count.
type InductionVariableBounds struct {
	init, step, breakConst int64
	updateKind             ir.ArithmeticKind
	cmpKind                ir.CompareKind
	isDoWhile              bool
}

// TryResolveBounds requires the update operation, break operation, and
// Init/step/bound values to all be resolvable integer constants.
func (iv *InductionVariable) TryResolveBounds(isDoWhile bool) (*InductionVariableBounds, bool) {
	update, ok := iv.TryResolveUpdateOperation()
	if !ok {
		return nil, false
	}
	brk, ok := iv.TryResolveBreakOperation()
	if !ok {
		return nil, false
	}

	initConst, ok := asIntConst(iv.Init)
	if !ok {
		return nil, false
	}
	stepConst, ok := asIntConst(update.Step)
	if !ok {
		return nil, false
	}
	boundConst, ok := asIntConst(brk.Bound)
	if !ok {
		return nil, false
	}

	return &InductionVariableBounds{
		init:       initConst,
		step:       stepConst,
		breakConst: boundConst,
		updateKind: update.Arithmetic.ArithmeticKind(),
		cmpKind:    brk.Kind,
		isDoWhile:  isDoWhile,
	}, true
}

func asIntConst(v ir.Value) (int64, bool) {
	c, ok := v.(ir.Constant)
	if !ok || !c.IsIntegerConstant() {
		return 0, false
	}
	return c.IntegerConstant(), true
}

// TryGetTripCount returns the loop's trip count, implementing the exact
// arithmetic of spec §4.6: update kinds other than add/sub, or a zero
// step, abort as absent; an EQ compare that is entered always runs
// exactly once (plus the do-while offset); otherwise the last iterated
// value is the break bound minus one (plus one for a negative step) for
// LT/GT/NE comparisons, and the bound itself for LE/GE.
func (b *InductionVariableBounds) TryGetTripCount() (int64, bool) {
	var offset int64
	if b.isDoWhile {
		offset = 1
	}

	step := b.step
	switch b.updateKind {
	case ir.ArithmeticAdd:
	case ir.ArithmeticSub:
		step = -step
	default:
		return 0, false
	}
	if step == 0 {
		return 0, false
	}

	if !evalCompare(b.init, b.cmpKind, b.breakConst) {
		return offset, true
	}
	if b.cmpKind == ir.CompareEQ {
		return 1 + offset, true
	}

	last := b.breakConst
	switch b.cmpKind {
	case ir.CompareLT, ir.CompareGT, ir.CompareNE:
		if step > 0 {
			last = b.breakConst - 1
		} else {
			last = b.breakConst + 1
		}
	}

	count := (last - b.init) / step
	if count < 0 {
		return 0, false
	}
	return count + 1 + offset, true
}

func evalCompare(a int64, kind ir.CompareKind, c int64) bool {
	switch kind {
	case ir.CompareLT:
		return a < c
	case ir.CompareLE:
		return a <= c
	case ir.CompareGT:
		return a > c
	case ir.CompareGE:
		return a >= c
	case ir.CompareEQ:
		return a == c
	case ir.CompareNE:
		return a != c
	default:
		return false
	}
}

// Info is a fully-validated natural loop's induction-variable and phi
// structure (spec §4.6).
type Info struct {
	node *loop.Node

	body       ir.Block
	isDoWhile  bool
	inductionVars []*InductionVariable
	outsidePhis   []OutsidePhi
}

func (i *Info) Loop() *loop.Node              { return i.node }
func (i *Info) Body() ir.Block                { return i.body }
func (i *Info) IsDoWhile() bool               { return i.isDoWhile }
func (i *Info) InductionVars() []*InductionVariable { return i.inductionVars }
func (i *Info) OutsidePhis() []OutsidePhi     { return i.outsidePhis }

// MustBuild calls TryBuild and panics with an *ierr.Invalid if the loop is
// not well-formed; the message is decorated through the first header's
// FormatError when the loop has one.
func MustBuild(view *cfg.View, n *loop.Node) *Info {
	info, ok := TryBuild(view, n)
	if !ok {
		msg := "loop is not eligible for LoopInfo construction"
		if hs := n.Headers(); len(hs) > 0 {
			msg = hs[0].FormatError(msg)
		}
		panic(ierr.NewInvalid("loopinfo.MustBuild", "%s", msg))
	}
	return info
}

// TryBuild validates n against spec §4.6's structural requirements and,
// if they hold, extracts its induction variables and other outside-facing
// phis. It returns (nil, false) for any violation rather than erroring.
func TryBuild(view *cfg.View, n *loop.Node) (*Info, bool) {
	if len(n.Entries()) != 1 || len(n.Exits()) != 1 ||
		len(n.Headers()) != 1 || len(n.Breakers()) != 1 || len(n.BackEdges()) != 1 {
		return nil, false
	}

	exit := n.Exits()[0]
	entry := n.Entries()[0]
	breaker := n.Breakers()[0]

	// Body is the breaker's non-exit successor. When the header is also
	// the breaker (the common while-style shape) this is the same as
	// "the header's non-exit successor"; for a do-while shape, where the
	// header only ever flows onward (its external predecessor is the
	// sole entry and it has no exit edge of its own), the breaker is the
	// block that actually decides continue-vs-exit, so it alone can tell
	// us which successor is the loop body.
	breakerSuccs := view.Node(breaker).Successors()
	var nonExit []ir.Block
	for _, s := range breakerSuccs {
		if s != exit {
			nonExit = append(nonExit, s)
		}
	}
	if len(nonExit) != 1 {
		return nil, false
	}
	body := nonExit[0]

	isDoWhile := false
	for _, s := range view.Node(entry).Successors() {
		if s == body {
			isDoWhile = true
			break
		}
	}

	info := &Info{node: n, body: body, isDoWhile: isDoWhile}

	inductionPhis := map[ir.Phi]bool{}

	if condBranch, ok := breaker.Terminator().(ir.ConditionalBranch); ok {
		if cmp, ok := condBranch.Condition().(ir.Compare); ok {
			leftPhi, leftIsLoopPhi := asLoopPhi(n, cmp.Left())
			rightPhi, rightIsLoopPhi := asLoopPhi(n, cmp.Right())
			if leftIsLoopPhi != rightIsLoopPhi {
				phi := leftPhi
				if rightIsLoopPhi {
					phi = rightPhi
				}
				if inV, outV, inB, outB, ok := splitPhiOperands(n, phi); ok {
					info.inductionVars = append(info.inductionVars, &InductionVariable{
						Index:       0,
						Phi:         phi,
						Init:        outV,
						InitBlock:   outB,
						Update:      inV,
						UpdateBlock: inB,
						BreakBranch: condBranch,
						BreakBlock:  breaker,
					})
					inductionPhis[phi] = true
				}
			}
		}
	}
	for idx, iv := range info.inductionVars {
		iv.Index = idx
	}

	backEdgeSet := map[ir.Block]bool{}
	for _, b := range n.BackEdges() {
		backEdgeSet[b] = true
	}

	for _, blk := range n.Members() {
		for _, phi := range flow.CollectPhis(blk) {
			if inductionPhis[phi] {
				continue
			}
			incoming := phi.Incoming()
			allInternal := true
			for _, e := range incoming {
				if !n.Contains(e.Block) {
					allInternal = false
					break
				}
			}
			if allInternal {
				continue // ignored: unrolling will rename these
			}

			hasBackEdgeSource := false
			var outsideVal ir.Value
			var outsideBlock ir.Block
			foundOutside := false
			for _, e := range incoming {
				if backEdgeSet[e.Block] {
					hasBackEdgeSource = true
				}
				if !n.Contains(e.Block) {
					outsideVal = e.Value
					outsideBlock = e.Block
					foundOutside = true
				}
			}
			if !hasBackEdgeSource || !foundOutside {
				return nil, false
			}
			info.outsidePhis = append(info.outsidePhis, OutsidePhi{
				Phi: phi, OutsideValue: outsideVal, OutsideBlock: outsideBlock,
			})
		}
	}

	return info, true
}

func asLoopPhi(n *loop.Node, v ir.Value) (ir.Phi, bool) {
	phi, ok := v.(ir.Phi)
	if !ok || !n.Contains(phi.Block()) {
		return nil, false
	}
	return phi, true
}

// splitPhiOperands requires phi to have exactly two incoming edges, one
// from inside the loop and one from outside, and returns
// (inside, outside, insideBlock, outsideBlock, true).
func splitPhiOperands(n *loop.Node, phi ir.Phi) (inV, outV ir.Value, inB, outB ir.Block, ok bool) {
	incoming := phi.Incoming()
	if len(incoming) != 2 {
		return nil, nil, nil, nil, false
	}
	var sawIn, sawOut bool
	for _, e := range incoming {
		if n.Contains(e.Block) {
			inV, inB, sawIn = e.Value, e.Block, true
		} else {
			outV, outB, sawOut = e.Value, e.Block, true
		}
	}
	if !sawIn || !sawOut {
		return nil, nil, nil, nil, false
	}
	return inV, outV, inB, outB, true
}
