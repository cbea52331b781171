// Package nfa compiles a parsetree.Tree into an annotated epsilon-NFA:
// states and transitions live in flat arenas and are addressed by index,
// never by pointer, so that Paths built over the graph stay trivially
// copyable and comparable (spec §9, "Cyclic NFA references").
package nfa

import "github.com/egret-dev/egret/internal/parsetree"

// StateID indexes into NFA.States.
type StateID int32

// TransitionID uniquely identifies a Transition across the whole NFA, used
// by the path enumerator to track basis-path coverage.
type TransitionID int32

// TransKind tags what a Transition does.
type TransKind int

const (
	// TransConsume consumes exactly one input rune matching Class.
	TransConsume TransKind = iota
	// TransEpsilon consumes no input and carries no semantic meaning.
	TransEpsilon
	// TransMarker consumes no input but carries semantic structure (loop,
	// group, anchor, or backreference boundary) that must survive into
	// path enumeration.
	TransMarker
)

// MarkerKind tags the semantic meaning of a TransMarker transition.
type MarkerKind int

const (
	MarkBeginLoop MarkerKind = iota
	MarkEndLoop
	MarkBeginGroup
	MarkEndGroup
	MarkAnchor
	MarkBackref
)

// Transition is a single edge of the NFA.
type Transition struct {
	ID   TransitionID
	Kind TransKind
	To   StateID

	// TransConsume
	Class *parsetree.CharClass
	// Unconstrained marks a TransConsume transition compiled from a
	// wildcard or from a class that admits every printable ASCII
	// character: the test generator substitutes the whole base substring
	// for it rather than a single witness character (spec §4.6).
	Unconstrained bool

	// TransMarker
	Marker  MarkerKind
	LoopID  int // MarkBeginLoop, MarkEndLoop
	GroupID int // MarkBeginGroup, MarkEndGroup
	RefID   int // MarkBackref

	// MarkAnchor
	Anchor parsetree.AnchorKind
}

// State is a node of the NFA; Out holds every outgoing Transition.
type State struct {
	ID         StateID
	Accepting  bool
	Out        []Transition
}

// RegexLoop is per-loop metadata keyed by loop-id (spec §3, §4.5).
// It is owned by the NFA; Paths refer to it by LoopID. PathPrefix and
// PathSubstring are frozen by the loop model on first traversal
// (first-writer-wins, spec §9).
type RegexLoop struct {
	LoopID int
	Lower  int
	Upper  int // -1 denotes unbounded

	PathPrefix      string
	PathSubstring   string
	prefixFrozen    bool
	substringFrozen bool

	CurrPrefix    string
	CurrSubstring string
}

// FreezePrefix records the current path-prefix into CurrPrefix; the first
// time it is called for this loop, it also freezes PathPrefix
// (first-writer-wins, spec §9). Returns whether the loop had already been
// primed by an earlier path.
func (l *RegexLoop) FreezePrefix(prefix string) (alreadyProcessed bool) {
	alreadyProcessed = l.prefixFrozen
	l.CurrPrefix = prefix
	if !l.prefixFrozen {
		l.PathPrefix = prefix
		l.prefixFrozen = true
	}
	return alreadyProcessed
}

// FreezeSubstring records the current iteration's substring into
// CurrSubstring; the first time it is called for this loop, it also
// freezes PathSubstring (first-writer-wins, spec §9). Returns whether the
// loop had already been primed by an earlier path.
func (l *RegexLoop) FreezeSubstring(substring string) (alreadyProcessed bool) {
	alreadyProcessed = l.substringFrozen
	l.CurrSubstring = substring
	if !l.substringFrozen {
		l.PathSubstring = substring
		l.substringFrozen = true
	}
	return alreadyProcessed
}

// NFA is the compiled graph.
type NFA struct {
	States []State
	Start  StateID
	Accept StateID
	Loops  map[int]*RegexLoop

	nextTransitionID TransitionID
}

func (n *NFA) newState() StateID {
	id := StateID(len(n.States))
	n.States = append(n.States, State{ID: id})
	return id
}

func (n *NFA) addTransition(from StateID, t Transition) {
	t.ID = n.nextTransitionID
	n.nextTransitionID++
	n.States[from].Out = append(n.States[from].Out, t)
}

// State returns the state for id.
func (n *NFA) State(id StateID) *State {
	return &n.States[id]
}
