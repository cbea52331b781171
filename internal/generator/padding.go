package generator

import (
	"sort"
	"strings"

	"github.com/egret-dev/egret/internal/loopmodel"
)

// padInitial turns r's raw one-physical-iteration rendering into the
// actual Phase I output string: every loop the path entered is padded up
// to (or trimmed down to) its lower bound via the loop model's
// process_min_iter_string rule (spec §4.5), so the emitted initial string
// genuinely satisfies the regex instead of reflecting a single pass
// through each loop body.
func padInitial(r rendered, model *loopmodel.Model) string {
	raw := []rune(r.sp.String())

	type span struct {
		start, end int
		loopID     int
	}
	spans := make([]span, 0, len(r.loopSpan))
	for id, s := range r.loopSpan {
		spans = append(spans, span{start: s[0], end: s[1], loopID: id})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.start < pos {
			continue // nested loop span already consumed by an enclosing one
		}
		b.WriteString(string(raw[pos:sp.start]))
		// A span is exactly this path's one iteration, so a zero lower bound
		// drops it whole rather than trimming by another path's iteration.
		if model.Loop(sp.loopID).Lower > 0 {
			b.WriteString(model.ProcessMinIterString(sp.loopID, string(raw[sp.start:sp.end])))
		}
		pos = sp.end
	}
	b.WriteString(string(raw[pos:]))
	return b.String()
}
