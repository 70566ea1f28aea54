// Package flow collects phi values and method-call references out of an
// IR method's blocks (spec §4.5, C5).
package flow

import (
	"github.com/m4rs-mt/ilgpu-go/ir"
	"github.com/m4rs-mt/ilgpu-go/loop"
)

// CollectPhis gathers every PhiValue in block, preserving definition order.
func CollectPhis(block ir.Block) []ir.Phi {
	var out []ir.Phi
	for _, v := range block.Values() {
		if v.Kind() != ir.KindPhi {
			continue
		}
		if phi, ok := v.(ir.Phi); ok {
			out = append(out, phi)
		}
	}
	return out
}

// CollectLoopPhis gathers the phi values in n's member blocks that
// reference at least one operand defined outside the loop.
func CollectLoopPhis(n *loop.Node) []ir.Phi {
	var out []ir.Phi
	for _, b := range n.Members() {
		for _, phi := range CollectPhis(b) {
			if hasOutsideOperand(n, phi) {
				out = append(out, phi)
			}
		}
	}
	return out
}

func hasOutsideOperand(n *loop.Node, phi ir.Phi) bool {
	for _, e := range phi.Incoming() {
		if e.Value == nil || e.Value.Block() == nil || !n.Contains(e.Value.Block()) {
			return true
		}
	}
	return false
}

// References returns the ordered, deduplicated set of methods targeted by
// MethodCall values in m's blocks. When candidates is non-nil, only calls
// to methods present in candidates are included.
func References(m ir.Method, candidates map[ir.Method]bool) []ir.Method {
	var out []ir.Method
	seen := map[ir.MethodID]bool{}
	for _, b := range m.AllBlocks() {
		for _, v := range b.Values() {
			call, ok := v.(ir.MethodCall)
			if !ok {
				continue
			}
			target := call.Target()
			if target == nil || seen[target.ID()] {
				continue
			}
			if candidates != nil && !candidates[target] {
				continue
			}
			seen[target.ID()] = true
			out = append(out, target)
		}
	}
	return out
}
