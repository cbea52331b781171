package pathenum

import (
	"sort"

	"github.com/egret-dev/egret/internal/nfa"
)

// Enumerate walks graph and returns a basis set of accepting paths: every
// transition that lies on some accepting path is included in at least one
// returned Path (spec §4.4). Transitions are considered in the order they
// were added during NFA construction (their TransitionID), making the
// result deterministic.
//
// A loop's body is, by construction, walked at most once per basis path
// (the "traverse each loop at most once" rule that guarantees
// termination); the back-edge that lets the loop repeat is therefore
// exempt from the coverage obligation — the test generator reconstructs
// additional-iteration strings textually from RegexLoop metadata instead
// of by unrolling the graph (spec §4.5, §9).
func Enumerate(graph *nfa.NFA) ([]Path, error) {
	reachable := reachableOnAccepting(graph)
	// Exempt each loop's back-edge: the BeginLoop leaving its EndLoop's target.
	loopSplit := make(map[int]nfa.StateID)
	for i := range graph.States {
		for _, t := range graph.States[i].Out {
			if t.Kind == nfa.TransMarker && t.Marker == nfa.MarkEndLoop {
				loopSplit[t.LoopID] = t.To
			}
		}
	}
	for i := range graph.States {
		for _, t := range graph.States[i].Out {
			if s, ok := loopSplit[t.LoopID]; ok && t.Kind == nfa.TransMarker && t.Marker == nfa.MarkBeginLoop && s == graph.States[i].ID {
				delete(reachable, t.ID)
			}
		}
	}
	covered := make(map[nfa.TransitionID]bool, len(reachable))

	var paths []Path
	maxPasses := len(reachable) + len(graph.States) + 16
	for pass := 0; pass < maxPasses; pass++ {
		if isFullyCovered(reachable, covered) {
			return paths, nil
		}

		trans, ok := singlePass(graph, covered)
		if !ok {
			return nil, newInternalError("failed to find an accepting continuation while transitions remain uncovered")
		}

		path := Path{Transitions: trans}
		path.computeFlags()
		paths = append(paths, path)

		progressed := false
		for _, t := range trans {
			if !covered[t.ID] {
				covered[t.ID] = true
				progressed = true
			}
		}
		if !progressed {
			return nil, newInternalError("enumeration made no coverage progress with uncovered transitions remaining")
		}
	}
	return nil, newInternalError("path enumeration failed to terminate within bounds")
}

func isFullyCovered(reachable map[nfa.TransitionID]bool, covered map[nfa.TransitionID]bool) bool {
	for id := range reachable {
		if !covered[id] {
			return false
		}
	}
	return true
}

// singlePass performs one deterministic DFS from Start to Accept, at every
// state preferring an uncovered transition over a covered one (ties broken
// by construction order), and refusing to re-enter a loop body already
// taken on the current path.
func singlePass(g *nfa.NFA, covered map[nfa.TransitionID]bool) ([]nfa.Transition, bool) {
	visitedLoops := make(map[int]bool)
	maxDepth := len(g.States)*4 + 32

	var dfs func(state nfa.StateID, depth int) ([]nfa.Transition, bool)
	dfs = func(state nfa.StateID, depth int) ([]nfa.Transition, bool) {
		if state == g.Accept {
			return nil, true
		}
		if depth > maxDepth {
			return nil, false
		}

		candidates := g.State(state).Out
		order := make([]int, len(candidates))
		for i := range candidates {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			ca, cb := candidates[order[a]], candidates[order[b]]
			ua, ub := !covered[ca.ID], !covered[cb.ID]
			if ua != ub {
				return ua
			}
			return ca.ID < cb.ID
		})

		for _, idx := range order {
			t := candidates[idx]
			isLoopBegin := t.Kind == nfa.TransMarker && t.Marker == nfa.MarkBeginLoop
			if isLoopBegin && visitedLoops[t.LoopID] {
				continue
			}
			if isLoopBegin {
				visitedLoops[t.LoopID] = true
			}
			rest, ok := dfs(t.To, depth+1)
			if ok {
				return append([]nfa.Transition{t}, rest...), true
			}
			if isLoopBegin {
				delete(visitedLoops, t.LoopID)
			}
		}
		return nil, false
	}

	return dfs(g.Start, 0)
}

// reachableOnAccepting returns every TransitionID that lies on some walk
// from Start to Accept (ignoring the "loop at most once" restriction, since
// that restriction governs path construction, not reachability).
func reachableOnAccepting(g *nfa.NFA) map[nfa.TransitionID]bool {
	fromStart := make(map[nfa.StateID]bool)
	var walk func(nfa.StateID)
	walk = func(s nfa.StateID) {
		if fromStart[s] {
			return
		}
		fromStart[s] = true
		for _, t := range g.State(s).Out {
			walk(t.To)
		}
	}
	walk(g.Start)

	reverse := make(map[nfa.StateID][]nfa.StateID)
	for i := range g.States {
		for _, t := range g.States[i].Out {
			reverse[t.To] = append(reverse[t.To], g.States[i].ID)
		}
	}
	canReachAccept := make(map[nfa.StateID]bool)
	queue := []nfa.StateID{g.Accept}
	canReachAccept[g.Accept] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, pred := range reverse[s] {
			if !canReachAccept[pred] {
				canReachAccept[pred] = true
				queue = append(queue, pred)
			}
		}
	}

	result := make(map[nfa.TransitionID]bool)
	for i := range g.States {
		s := g.States[i]
		if !fromStart[s.ID] {
			continue
		}
		for _, t := range s.Out {
			if canReachAccept[t.To] || t.To == g.Accept {
				result[t.ID] = true
			}
		}
	}
	return result
}
