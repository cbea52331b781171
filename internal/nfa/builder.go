package nfa

import "github.com/egret-dev/egret/internal/parsetree"

// printableASCII is the wildcard's character class: any printable ASCII
// character except newline (spec §4.3).
var printableASCII = &parsetree.CharClass{Ranges: []parsetree.RuneRange{{Lo: 0x20, Hi: 0x7E}}}

type builder struct {
	nfa *NFA
}

// Build compiles a parsetree.Tree into an annotated epsilon-NFA via
// Thompson-style construction, layering BeginLoop/EndLoop, BeginGroup/
// EndGroup, Anchor, and Backref markers on top (spec §4.3).
func Build(tree *parsetree.Tree) (*NFA, error) {
	b := &builder{nfa: &NFA{Loops: make(map[int]*RegexLoop)}}

	start := b.nfa.newState()
	entry, exit, err := b.buildNode(tree.Root)
	if err != nil {
		return nil, err
	}
	b.nfa.addTransition(start, Transition{Kind: TransEpsilon, To: entry})

	accept := b.nfa.newState()
	b.nfa.State(accept).Accepting = true
	b.nfa.addTransition(exit, Transition{Kind: TransEpsilon, To: accept})

	b.nfa.Start = start
	b.nfa.Accept = accept

	b.minimizeEpsilonChains()

	return b.nfa, nil
}

// buildNode compiles one parse-tree node into a fragment with a single
// entry state and a single exit state, neither of which is accepting.
func (b *builder) buildNode(n parsetree.Node) (entry, exit StateID, err error) {
	switch v := n.(type) {
	case *parsetree.Literal:
		cc := &parsetree.CharClass{Ranges: []parsetree.RuneRange{{Lo: v.Char, Hi: v.Char}}}
		return b.buildConsume(cc)
	case *parsetree.Wildcard:
		return b.buildUnconstrainedConsume(printableASCII)
	case *parsetree.CharClass:
		return b.buildConsume(v)
	case *parsetree.Concat:
		return b.buildConcat(v)
	case *parsetree.Alt:
		return b.buildAlt(v)
	case *parsetree.Repeat:
		return b.buildRepeat(v)
	case *parsetree.Group:
		return b.buildGroup(v)
	case *parsetree.Anchor:
		return b.buildAnchor(v)
	case *parsetree.Backref:
		return b.buildBackref(v)
	default:
		return 0, 0, newBuildError("unknown parse-tree node type %T", n)
	}
}

func (b *builder) buildConsume(cc *parsetree.CharClass) (StateID, StateID, error) {
	entry := b.nfa.newState()
	exit := b.nfa.newState()
	b.nfa.addTransition(entry, Transition{Kind: TransConsume, To: exit, Class: cc, Unconstrained: isUnconstrained(cc)})
	return entry, exit, nil
}

// isUnconstrained reports whether cc admits every printable ASCII
// character, in which case the test generator substitutes the base
// substring for it exactly as it does for a bare wildcard (spec §4.6).
func isUnconstrained(cc *parsetree.CharClass) bool {
	for r := rune(0x20); r <= 0x7E; r++ {
		if !cc.Matches(r) {
			return false
		}
	}
	return true
}

func (b *builder) buildUnconstrainedConsume(cc *parsetree.CharClass) (StateID, StateID, error) {
	entry := b.nfa.newState()
	exit := b.nfa.newState()
	b.nfa.addTransition(entry, Transition{Kind: TransConsume, To: exit, Class: cc, Unconstrained: true})
	return entry, exit, nil
}

func (b *builder) buildConcat(c *parsetree.Concat) (StateID, StateID, error) {
	if len(c.Children) == 0 {
		s := b.nfa.newState()
		return s, s, nil
	}
	entry, prevExit, err := b.buildNode(c.Children[0])
	if err != nil {
		return 0, 0, err
	}
	for _, child := range c.Children[1:] {
		childEntry, childExit, err := b.buildNode(child)
		if err != nil {
			return 0, 0, err
		}
		b.nfa.addTransition(prevExit, Transition{Kind: TransEpsilon, To: childEntry})
		prevExit = childExit
	}
	return entry, prevExit, nil
}

func (b *builder) buildAlt(a *parsetree.Alt) (StateID, StateID, error) {
	entry := b.nfa.newState()
	exit := b.nfa.newState()
	for _, branch := range a.Branches {
		bEntry, bExit, err := b.buildNode(branch)
		if err != nil {
			return 0, 0, err
		}
		b.nfa.addTransition(entry, Transition{Kind: TransEpsilon, To: bEntry})
		b.nfa.addTransition(bExit, Transition{Kind: TransEpsilon, To: exit})
	}
	return entry, exit, nil
}

// buildRepeat compiles a quantified sub-expression. The loop body is
// represented with a single physical iteration plus a back-edge, making the
// graph genuinely cyclic (spec §9), but the body is only ever walked once
// per basis path (spec §4.4) — the lower/upper bounds feed the loop model
// (§4.5) and the test generator (§4.6) instead of being unrolled here.
func (b *builder) buildRepeat(r *parsetree.Repeat) (StateID, StateID, error) {
	b.nfa.Loops[r.LoopID] = &RegexLoop{LoopID: r.LoopID, Lower: r.Lower, Upper: r.Upper}

	pre := b.nfa.newState()
	bodyEntry, bodyExit, err := b.buildNode(r.Child)
	if err != nil {
		return 0, 0, err
	}
	loopSplit := b.nfa.newState()
	exit := b.nfa.newState()

	b.nfa.addTransition(pre, Transition{Kind: TransMarker, To: bodyEntry, Marker: MarkBeginLoop, LoopID: r.LoopID})
	b.nfa.addTransition(bodyExit, Transition{Kind: TransMarker, To: loopSplit, Marker: MarkEndLoop, LoopID: r.LoopID})
	b.nfa.addTransition(loopSplit, Transition{Kind: TransEpsilon, To: exit})
	b.nfa.addTransition(loopSplit, Transition{Kind: TransMarker, To: bodyEntry, Marker: MarkBeginLoop, LoopID: r.LoopID})

	if r.Lower == 0 {
		b.nfa.addTransition(pre, Transition{Kind: TransEpsilon, To: exit})
	}

	return pre, exit, nil
}

func (b *builder) buildGroup(g *parsetree.Group) (StateID, StateID, error) {
	childEntry, childExit, err := b.buildNode(g.Child)
	if err != nil {
		return 0, 0, err
	}
	if !g.Capturing {
		return childEntry, childExit, nil
	}
	entry := b.nfa.newState()
	exit := b.nfa.newState()
	b.nfa.addTransition(entry, Transition{Kind: TransMarker, To: childEntry, Marker: MarkBeginGroup, GroupID: g.ID})
	b.nfa.addTransition(childExit, Transition{Kind: TransMarker, To: exit, Marker: MarkEndGroup, GroupID: g.ID})
	return entry, exit, nil
}

func (b *builder) buildAnchor(a *parsetree.Anchor) (StateID, StateID, error) {
	entry := b.nfa.newState()
	exit := b.nfa.newState()
	b.nfa.addTransition(entry, Transition{Kind: TransMarker, To: exit, Marker: MarkAnchor, Anchor: a.Kind})
	return entry, exit, nil
}

func (b *builder) buildBackref(r *parsetree.Backref) (StateID, StateID, error) {
	entry := b.nfa.newState()
	exit := b.nfa.newState()
	b.nfa.addTransition(entry, Transition{Kind: TransMarker, To: exit, Marker: MarkBackref, RefID: r.GroupID})
	return entry, exit, nil
}

// minimizeEpsilonChains collapses states that have exactly one incoming and
// one outgoing transition, both plain epsilons carrying no marker, folding
// them into a single direct edge. Marker-bearing epsilon edges are never
// touched (spec §4.3): the path enumerator and loop model depend on them
// surviving intact.
func (b *builder) minimizeEpsilonChains() {
	incoming := make(map[StateID]int)
	for i := range b.nfa.States {
		for _, t := range b.nfa.States[i].Out {
			incoming[t.To]++
		}
	}

	for i := range b.nfa.States {
		out := b.nfa.States[i].Out
		for oi, t := range out {
			if t.Kind != TransEpsilon {
				continue
			}
			target := b.nfa.State(t.To)
			if target.Accepting || target.ID == b.nfa.Start {
				continue
			}
			if len(target.Out) != 1 || incoming[target.ID] != 1 {
				continue
			}
			only := target.Out[0]
			if only.Kind != TransEpsilon {
				continue
			}
			// Redirect this transition straight to the collapsed target's
			// destination; the intermediate state becomes unreachable.
			b.nfa.States[i].Out[oi].To = only.To
			incoming[target.ID]--
			incoming[only.To]++
		}
	}
}
