package generator

import (
	"github.com/egret-dev/egret/internal/loopmodel"
	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/pathenum"
)

// backrefOcc records where, in a rendered StringPath, a backreference's
// placeholder text was substituted.
type backrefOcc struct {
	GroupID  int
	SegIndex int
}

// rendered is the Phase I materialization of one basis path. sp holds the
// raw one-physical-iteration rendering (every loop body walked exactly
// once, per spec §4.4) — Phase II and Phase III both derive their evil
// variants from this raw form. loopSpan records, per loop this path
// entered, the [start, end) rune range within sp.String() occupied by that
// one iteration, so padInitial (the actual Phase I output) and the
// quantifier-evil math (phase3.go) can locate it without re-rendering.
type rendered struct {
	path      pathenum.Path
	sp        StringPath
	groupText map[int]string
	backrefs  []backrefOcc
	loopSpan  map[int][2]int
}

// renderPath walks path's transitions in order, substituting a concrete
// character for every consuming transition and driving the loop model at
// every BeginLoop/EndLoop marker (spec §4.6 Phase I).
func renderPath(path pathenum.Path, base string, model *loopmodel.Model) rendered {
	r := rendered{path: path, groupText: make(map[int]string), loopSpan: make(map[int][2]int)}
	groupStart := make(map[int]int)
	loopStart := make(map[int]int)

	for _, t := range path.Transitions {
		switch t.Kind {
		case nfa.TransConsume:
			var text string
			if t.Unconstrained {
				text = base
			} else {
				text = string(pickWitness(t.Class, base))
			}
			r.sp.Add(Segment{Text: text, Transition: t})

		case nfa.TransMarker:
			switch t.Marker {
			case nfa.MarkBeginLoop:
				model.ProcessBeginLoop(t.LoopID, r.sp.String())
				loopStart[t.LoopID] = r.sp.Len()
			case nfa.MarkEndLoop:
				model.ProcessEndLoop(t.LoopID, r.sp.String())
				r.loopSpan[t.LoopID] = [2]int{loopStart[t.LoopID], r.sp.Len()}
			case nfa.MarkBeginGroup:
				groupStart[t.GroupID] = r.sp.Len()
			case nfa.MarkEndGroup:
				full := []rune(r.sp.String())
				start := groupStart[t.GroupID]
				if start <= len(full) {
					r.groupText[t.GroupID] = string(full[start:])
				}
			case nfa.MarkBackref:
				text := r.groupText[t.RefID]
				r.backrefs = append(r.backrefs, backrefOcc{GroupID: t.RefID, SegIndex: len(r.sp.Segments)})
				r.sp.Add(Segment{Text: text, Transition: t})
			case nfa.MarkAnchor:
				// zero-width; nothing rendered.
			}
		}
	}

	return r
}
