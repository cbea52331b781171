// Package engine wires the scanner, parse tree, NFA builder, path
// enumerator, and test-string generator into the single entry point
// external collaborators call (spec §6).
package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/egret-dev/egret/internal/generator"
	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/parsetree"
	"github.com/egret-dev/egret/internal/pathenum"
	"github.com/egret-dev/egret/internal/report"
	"github.com/egret-dev/egret/internal/scanner"
)

// Run compiles regex, enumerates its basis paths against baseSubstring,
// and returns the spec's output contract: the first element is "SUCCESS"
// or a newline-joined warning report, and the rest are the generated test
// strings in Phase II/I/III order.
//
// When debug or stat is true, Run also returns a non-nil *report.Trace for
// the caller to format and print; the []string return value is unaffected
// by either flag except through the warnings generation itself raises.
func Run(regex, baseSubstring string, debug, stat bool) ([]string, *report.Trace) {
	if err := validateBase(baseSubstring); err != nil {
		return []string{"ERROR: " + err.Error()}, nil
	}

	sc := scanner.New(regex)
	tokens, err := sc.Scan()
	if err != nil {
		return []string{"ERROR: " + err.Error()}, nil
	}

	tree, err := parsetree.Parse(tokens, sc.Punctuation())
	if err != nil {
		return []string{"ERROR: " + err.Error()}, nil
	}

	graph, err := nfa.Build(tree)
	if err != nil {
		return []string{"ERROR: " + err.Error()}, nil
	}

	paths, err := pathenum.Enumerate(graph)
	if err != nil {
		return []string{"ERROR: " + err.Error()}, nil
	}

	result, err := generator.Generate(tree, graph, baseSubstring)
	if err != nil {
		return []string{"ERROR: " + err.Error()}, nil
	}

	var trace *report.Trace
	if debug || stat {
		trace = report.Build(tree, graph, paths, result, sc.PrefilterHits())
	}

	head := "SUCCESS"
	if len(result.Warnings) > 0 {
		head = strings.Join(result.Warnings, "\n")
	}

	out := make([]string, 0, 1+len(result.Lines))
	out = append(out, head)
	out = append(out, result.Lines...)
	return out, trace
}

// validateBase enforces the InputError contract of spec §6: at least two
// characters, all alphabetic.
func validateBase(base string) error {
	runes := []rune(base)
	if len(runes) < 2 {
		return fmt.Errorf("InputError: base substring must be at least 2 characters, got %q", base)
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("InputError: base substring must be all alphabetic, got %q", base)
		}
	}
	return nil
}
