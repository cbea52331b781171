package report

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// StatRow is one labeled row of the --stat summary table.
type StatRow struct {
	Label string
	Value string
}

// FormatStatTable renders rows as a two-column table with the value
// column aligned under the widest label, measured in display columns via
// uniseg so multi-byte glyphs don't throw off alignment.
func FormatStatTable(rows []StatRow) string {
	width := 0
	for _, r := range rows {
		if w := uniseg.StringWidth(r.Label); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(padRight(r.Label, width))
		b.WriteString("  ")
		b.WriteString(r.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

func padRight(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// StatsFor builds the standard row set for a Trace.
func StatsFor(t *Trace) []StatRow {
	return []StatRow{
		{Label: "basis paths", Value: strconv.Itoa(t.PathCount)},
		{Label: "loops", Value: strconv.Itoa(t.LoopCount)},
		{Label: "warnings", Value: strconv.Itoa(t.WarningCount)},
		{Label: "generated strings", Value: strconv.Itoa(t.LineCount)},
	}
}
