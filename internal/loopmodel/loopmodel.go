// Package loopmodel implements the per-loop bookkeeping described in spec
// §4.5: as a Path is rendered, it receives callbacks at every BeginLoop/
// EndLoop marker and uses them to reconstruct boundary-iteration strings
// without ever physically unrolling the NFA.
package loopmodel

import (
	"strings"

	"github.com/egret-dev/egret/internal/nfa"
)

// Model drives the RegexLoop metadata owned by an NFA.
type Model struct {
	loops map[int]*nfa.RegexLoop
}

// New wraps the loop metadata owned by graph.
func New(loops map[int]*nfa.RegexLoop) *Model {
	return &Model{loops: loops}
}

// ProcessBeginLoop records prefix (the path-string rendered so far) as the
// current traversal's prefix, freezing it as the loop's canonical
// path_prefix on the first traversal only.
func (m *Model) ProcessBeginLoop(loopID int, prefix string) (alreadyProcessed bool) {
	return m.loops[loopID].FreezePrefix(prefix)
}

// ProcessEndLoop takes the path-string rendered up through the matching end
// marker, slices out the portion emitted since the matching begin marker,
// and records it as the current traversal's substring, freezing it as the
// loop's canonical path_substring on the first traversal only.
func (m *Model) ProcessEndLoop(loopID int, textAtEnd string) (alreadyProcessed bool) {
	loop := m.loops[loopID]
	prefixRunes := []rune(loop.CurrPrefix)
	endRunes := []rune(textAtEnd)
	var substring string
	if len(endRunes) >= len(prefixRunes) {
		substring = string(endRunes[len(prefixRunes):])
	}
	return loop.FreezeSubstring(substring)
}

// GetSubstring returns the loop's canonical path_substring repeated
// max(0, lower-1) times: the path already contains one physical iteration,
// so padding to the lower bound needs lower-1 more copies.
func (m *Model) GetSubstring(loopID int) string {
	loop := m.loops[loopID]
	reps := loop.Lower - 1
	if reps < 0 {
		reps = 0
	}
	return strings.Repeat(loop.PathSubstring, reps)
}

// ProcessMinIterString yields the minimum-iteration string for loopID given
// s, a rendering that ends with one physical iteration of the loop (the
// generator passes just that iteration's span). If lower > 0, it pads s up to the lower bound. If lower == 0,
// it removes that one physical iteration by trimming the loop's
// path_substring's worth of trailing runes.
func (m *Model) ProcessMinIterString(loopID int, s string) string {
	loop := m.loops[loopID]
	if loop.Lower > 0 {
		return s + m.GetSubstring(loopID)
	}
	subRunes := []rune(loop.PathSubstring)
	sRunes := []rune(s)
	if len(subRunes) > len(sRunes) {
		return ""
	}
	return string(sRunes[:len(sRunes)-len(subRunes)])
}

// Loop returns the RegexLoop for loopID.
func (m *Model) Loop(loopID int) *nfa.RegexLoop {
	return m.loops[loopID]
}
