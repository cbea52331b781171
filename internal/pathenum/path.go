// Package pathenum walks a compiled NFA to produce a finite, structurally
// covering set of accepting paths (spec §4.4).
package pathenum

import "github.com/egret-dev/egret/internal/nfa"

// Path is an ordered accepting walk through the NFA: concatenating its
// consuming transitions' labels (ignoring markers) yields a string the
// original regex accepts.
type Path struct {
	Transitions []nfa.Transition

	HasLeadingCaret   bool
	HasTrailingDollar bool

	// LoopIDs lists, in traversal order, every loop this path entered.
	LoopIDs []int
}

// computeFlags derives the cached booleans and in-scope loop-id list from
// the transition sequence. A caret is "leading" only if every transition
// before it was itself zero-width (marker/epsilon); likewise a dollar is
// "trailing" only if every transition after it is zero-width.
func (p *Path) computeFlags() {
	p.HasLeadingCaret = false
	p.HasTrailingDollar = false
	p.LoopIDs = nil

	for _, t := range p.Transitions {
		if t.Kind == nfa.TransMarker && t.Marker == nfa.MarkBeginLoop {
			p.LoopIDs = appendUnique(p.LoopIDs, t.LoopID)
		}
	}

	consumedBefore := false
	for _, t := range p.Transitions {
		if t.Kind == nfa.TransMarker && t.Marker == nfa.MarkAnchor && isCaret(t) && !consumedBefore {
			p.HasLeadingCaret = true
		}
		if t.Kind == nfa.TransConsume {
			consumedBefore = true
		}
	}

	consumedAfter := false
	for i := len(p.Transitions) - 1; i >= 0; i-- {
		t := p.Transitions[i]
		if t.Kind == nfa.TransMarker && t.Marker == nfa.MarkAnchor && isDollar(t) && !consumedAfter {
			p.HasTrailingDollar = true
		}
		if t.Kind == nfa.TransConsume {
			consumedAfter = true
		}
	}
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
