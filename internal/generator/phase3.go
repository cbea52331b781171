package generator

import (
	"strings"

	"github.com/egret-dev/egret/internal/loopmodel"
)

// quantifierEvilStrings produces, for each path and each loop it traverses,
// the boundary-iteration variants described in spec §4.6 Phase III. prefix,
// substring, and suffix are taken from this path's own raw one-iteration
// rendering (not the loop's frozen canonical prefix/substring, which exist
// only to drive Phase I's minimum-iteration padding): a path's own
// continuation after the loop is what "suffix" means here, and different
// paths can legitimately continue differently after the same loop.
func quantifierEvilStrings(renders []rendered, model *loopmodel.Model) []string {
	var out []string
	for _, r := range renders {
		raw := []rune(r.sp.String())
		for _, loopID := range r.path.LoopIDs {
			span, ok := r.loopSpan[loopID]
			if !ok {
				continue
			}
			out = append(out, quantifierEvilsForLoop(raw, span, loopID, model)...)
		}
	}
	return out
}

// quantifierEvilsForLoop derives boundary-iteration variants relative to the
// loop's lower bound, not the raw one-physical-iteration rendering: one_less
// is one iteration short of the bound the loop actually enforces
// (max(1, lower)) and one_more is one past it, matching the RegexLoop
// bookkeeping a padded minimum-iteration string would have (§4.5) rather
// than the single pass the basis path happened to walk.
func quantifierEvilsForLoop(raw []rune, span [2]int, loopID int, model *loopmodel.Model) []string {
	prefix := string(raw[:span[0]])
	substring := string(raw[span[0]:span[1]])
	suffix := string(raw[span[1]:])

	loop := model.Loop(loopID)
	lower, upper := loop.Lower, loop.Upper

	boundary := lower
	if boundary < 1 {
		boundary = 1
	}
	oneLess := prefix + strings.Repeat(substring, boundary-1) + suffix
	oneMore := prefix + strings.Repeat(substring, boundary+1) + suffix

	switch {
	case upper != -1 && lower == upper:
		return []string{oneLess, oneMore}
	case upper != -1 && lower < upper:
		atUpper := prefix + strings.Repeat(substring, upper) + suffix
		pastUpper := prefix + strings.Repeat(substring, upper+1) + suffix
		return []string{oneLess, atUpper, pastUpper}
	case upper == -1 && (lower == 0 || lower == 1):
		return []string{oneLess, oneMore}
	case upper == -1 && lower >= 2:
		return []string{oneLess}
	}
	return nil
}

// punctuationEvilStrings substitutes every punctuation character recorded
// by the scanner into the first character-class position of each path's
// rendering that does not already admit it, producing a "wrong
// punctuation" variant per (path, punctuation character) pair (spec §4.6).
func punctuationEvilStrings(renders []rendered, punctuation []rune) []string {
	var out []string
	for _, r := range renders {
		for _, p := range punctuation {
			if v, ok := punctuationVariant(r.sp, p); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

func punctuationVariant(sp StringPath, p rune) (string, bool) {
	for i, seg := range sp.Segments {
		cc := seg.Transition.Class
		if cc == nil || seg.Transition.Unconstrained {
			continue
		}
		if cc.Matches(p) {
			continue
		}
		return spliceSegment(sp, i, string(p)), true
	}
	return "", false
}
