package pathenum

import (
	"testing"

	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/parsetree"
	"github.com/egret-dev/egret/internal/scanner"
)

func buildGraph(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	sc := scanner.New(pattern)
	toks, err := sc.Scan()
	if err != nil {
		t.Fatalf("scan %q: %v", pattern, err)
	}
	tree, err := parsetree.Parse(toks, sc.Punctuation())
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	graph, err := nfa.Build(tree)
	if err != nil {
		t.Fatalf("build %q: %v", pattern, err)
	}
	return graph
}

func TestEnumerateCoversEveryReachableTransition(t *testing.T) {
	graph := buildGraph(t, "a|b|c")
	paths, err := Enumerate(graph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	covered := make(map[nfa.TransitionID]bool)
	for _, p := range paths {
		for _, tr := range p.Transitions {
			covered[tr.ID] = true
		}
	}

	reachable := reachableOnAccepting(graph)
	for id := range reachable {
		if !covered[id] {
			t.Errorf("transition %d is reachable on an accepting path but not covered by any basis path", id)
		}
	}
}

func TestEnumerateWalksEachLoopAtMostOnce(t *testing.T) {
	graph := buildGraph(t, "a*b*")
	paths, err := Enumerate(graph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range paths {
		seen := make(map[int]int)
		for _, tr := range p.Transitions {
			if tr.Kind == nfa.TransMarker && tr.Marker == nfa.MarkBeginLoop {
				seen[tr.LoopID]++
			}
		}
		for loopID, n := range seen {
			if n > 1 {
				t.Errorf("loop %d entered %d times within a single path, expected at most once", loopID, n)
			}
		}
	}
}

func TestEnumerateIsDeterministic(t *testing.T) {
	graph := buildGraph(t, "[a-z]{2,3}\\d+")
	first, err := Enumerate(graph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Enumerate(graph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("non-deterministic path counts: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i].Transitions) != len(second[i].Transitions) {
			t.Fatalf("path %d differs in length between runs", i)
		}
		for j := range first[i].Transitions {
			if first[i].Transitions[j].ID != second[i].Transitions[j].ID {
				t.Fatalf("path %d transition %d differs between runs", i, j)
			}
		}
	}
}

func TestPathFlagsLeadingCaretAndTrailingDollar(t *testing.T) {
	graph := buildGraph(t, "^abc$")
	paths, err := Enumerate(graph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range paths {
		if !p.HasLeadingCaret {
			t.Error("expected HasLeadingCaret for ^abc$")
		}
		if !p.HasTrailingDollar {
			t.Error("expected HasTrailingDollar for ^abc$")
		}
	}
}

func TestPathFlagsInconsistentAnchor(t *testing.T) {
	graph := buildGraph(t, "^a|b")
	paths, err := Enumerate(graph)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawCaret, sawNoCaret bool
	for _, p := range paths {
		if p.HasLeadingCaret {
			sawCaret = true
		} else {
			sawNoCaret = true
		}
	}
	if !sawCaret || !sawNoCaret {
		t.Error("expected ^a|b to produce both a leading-caret path and a non-leading-caret path")
	}
}
