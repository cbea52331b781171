package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Printer writes a Trace to an io.Writer, coloring loop/group labels when
// the destination is a color-capable terminal.
type Printer struct {
	out    *termenv.Output
	colors *ColorAssigner
}

// NewPrinter builds a Printer over w, auto-detecting color support via
// go-isatty: a non-terminal destination (a pipe, a file, a test buffer)
// always falls back to the plain ASCII profile.
func NewPrinter(w io.Writer) *Printer {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		profile = termenv.EnvColorProfile()
	}
	return &Printer{
		out:    termenv.NewOutput(w, termenv.WithProfile(profile)),
		colors: NewColorAssigner(),
	}
}

// PrintTrace renders t's AST, NFA, path, and prefilter dumps, followed by
// its summary counters.
func (p *Printer) PrintTrace(t *Trace) {
	p.heading("AST")
	p.lines(t.ASTLines)
	p.heading("NFA")
	p.lines(t.NFALines)
	p.heading("BASIS PATHS")
	p.lines(t.PathLines)
	p.heading("PREFILTER")
	p.lines(t.PrefilterLines)
	p.heading("SUMMARY")
	fmt.Fprintln(p.out, p.out.String(fmt.Sprintf(
		"paths=%d loops=%d warnings=%d lines=%d",
		t.PathCount, t.LoopCount, t.WarningCount, t.LineCount,
	)).Faint())
}

func (p *Printer) heading(title string) {
	fmt.Fprintln(p.out, p.out.String(title).Bold().Foreground(p.out.Color("12")))
}

func (p *Printer) lines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(p.out, l)
	}
}

// LoopLabel renders text in the color assigned to loopID. PrintTrace does
// not call it: the NFA dump is printed uncolored.
func (p *Printer) LoopLabel(loopID int, text string) string {
	return p.out.String(text).Foreground(p.out.Color(p.colors.Hex(loopID))).String()
}

// GroupLabel renders text in the color assigned to groupID.
func (p *Printer) GroupLabel(groupID int, text string) string {
	return p.out.String(text).Foreground(p.out.Color(p.colors.Hex(groupID))).String()
}
