// Package report formats the optional diagnostic trace that internal/engine
// produces for --debug and --stat: an AST/NFA/path dump plus summary
// counters, entirely separate from the core's []string output contract
// (spec §9 expansion, "Debug trace").
package report

import (
	"fmt"
	"strings"

	"github.com/egret-dev/egret/internal/generator"
	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/parsetree"
	"github.com/egret-dev/egret/internal/pathenum"
	"github.com/egret-dev/egret/internal/scanner"
)

// Trace is a snapshot of one run_engine invocation's intermediate state.
type Trace struct {
	ASTLines       []string
	NFALines       []string
	PathLines      []string
	PrefilterLines []string
	Warnings       []string

	PathCount    int
	LoopCount    int
	WarningCount int
	LineCount    int
}

// Build assembles a Trace from the compiled pipeline stages of one
// invocation. hits is the scanner's Aho-Corasick prefilter result, shown
// in the trace as an informational cross-check alongside the AST/NFA/path
// dumps — it is not otherwise consulted by generation.
func Build(tree *parsetree.Tree, graph *nfa.NFA, paths []pathenum.Path, result *generator.Result, hits []scanner.Hit) *Trace {
	return &Trace{
		ASTLines:       dumpAST(tree),
		NFALines:       dumpNFA(graph),
		PathLines:      dumpPaths(paths),
		PrefilterLines: dumpPrefilter(hits),
		Warnings:       result.Warnings,
		PathCount:      len(paths),
		LoopCount:      len(graph.Loops),
		WarningCount:   len(result.Warnings),
		LineCount:      len(result.Lines),
	}
}

func dumpPrefilter(hits []scanner.Hit) []string {
	lines := make([]string, len(hits))
	for i, h := range hits {
		lines[i] = fmt.Sprintf("%q at byte %d", h.Needle, h.Pos)
	}
	return lines
}

func dumpAST(tree *parsetree.Tree) []string {
	var lines []string
	parsetree.Walk(tree.Root, func(n parsetree.Node) {
		lines = append(lines, describeNode(n))
	})
	return lines
}

func describeNode(n parsetree.Node) string {
	switch v := n.(type) {
	case *parsetree.Literal:
		return fmt.Sprintf("Literal %q", v.Char)
	case *parsetree.Wildcard:
		return "Wildcard"
	case *parsetree.CharClass:
		return fmt.Sprintf("CharClass ranges=%d shorthands=%q negated=%v", len(v.Ranges), string(v.Shorthands), v.Negated)
	case *parsetree.Concat:
		return fmt.Sprintf("Concat children=%d", len(v.Children))
	case *parsetree.Alt:
		return fmt.Sprintf("Alt branches=%d", len(v.Branches))
	case *parsetree.Repeat:
		return fmt.Sprintf("Repeat loop=%d lower=%d upper=%d lazy=%v", v.LoopID, v.Lower, v.Upper, v.Lazy)
	case *parsetree.Group:
		return fmt.Sprintf("Group id=%d capturing=%v", v.ID, v.Capturing)
	case *parsetree.Anchor:
		return fmt.Sprintf("Anchor kind=%d", v.Kind)
	case *parsetree.Backref:
		return fmt.Sprintf("Backref group=%d", v.GroupID)
	default:
		return fmt.Sprintf("%T", n)
	}
}

func dumpNFA(graph *nfa.NFA) []string {
	var lines []string
	for _, s := range graph.States {
		for _, t := range s.Out {
			lines = append(lines, describeTransition(s.ID, t))
		}
	}
	return lines
}

func describeTransition(from nfa.StateID, t nfa.Transition) string {
	switch t.Kind {
	case nfa.TransConsume:
		kind := "consume"
		if t.Unconstrained {
			kind = "consume*"
		}
		return fmt.Sprintf("%d --%s--> %d", from, kind, t.To)
	case nfa.TransMarker:
		return fmt.Sprintf("%d --marker(%s)--> %d", from, markerName(t.Marker), t.To)
	default:
		return fmt.Sprintf("%d --eps--> %d", from, t.To)
	}
}

func markerName(k nfa.MarkerKind) string {
	switch k {
	case nfa.MarkBeginLoop:
		return "begin-loop"
	case nfa.MarkEndLoop:
		return "end-loop"
	case nfa.MarkBeginGroup:
		return "begin-group"
	case nfa.MarkEndGroup:
		return "end-group"
	case nfa.MarkAnchor:
		return "anchor"
	case nfa.MarkBackref:
		return "backref"
	}
	return "?"
}

func dumpPaths(paths []pathenum.Path) []string {
	lines := make([]string, len(paths))
	for i, p := range paths {
		var sb strings.Builder
		fmt.Fprintf(&sb, "path %d: %d transitions, loops=%v", i, len(p.Transitions), p.LoopIDs)
		lines[i] = sb.String()
	}
	return lines
}
