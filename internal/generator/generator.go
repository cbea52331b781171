// Package generator turns a compiled NFA's basis paths into the final list
// of test strings and non-fatal warnings described in spec §4.6.
package generator

import (
	"github.com/egret-dev/egret/internal/loopmodel"
	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/parsetree"
	"github.com/egret-dev/egret/internal/pathenum"
)

// Result is the generator's complete output: the warnings raised during
// generation and the deduplicated, ordered list of test strings. The
// per-phase slices are exposed alongside the combined Lines (spec §4.6's
// official output contract) so callers — notably the §8 acceptance/
// rejection property tests — can check a single phase in isolation without
// re-deriving phase boundaries from the deduplicated list.
type Result struct {
	Warnings []string
	Lines    []string

	Initial        []string
	BackrefEvil    []string
	QuantifierEvil []string
}

// Generate enumerates basis paths over graph, renders each one against
// base, and produces the combined evil-backref / initial / evil-quantifier
// output list plus any warnings (spec §4.6).
func Generate(tree *parsetree.Tree, graph *nfa.NFA, base string) (*Result, error) {
	paths, err := pathenum.Enumerate(graph)
	if err != nil {
		return nil, err
	}

	model := loopmodel.New(graph.Loops)
	renders := make([]rendered, 0, len(paths))
	for _, p := range paths {
		renders = append(renders, renderPath(p, base, model))
	}

	var initial []string
	for _, r := range renders {
		initial = append(initial, padInitial(r, model))
	}

	backref := backrefEvilStrings(renders)

	var evilQuantifier []string
	evilQuantifier = append(evilQuantifier, quantifierEvilStrings(renders, model)...)
	evilQuantifier = append(evilQuantifier, punctuationEvilStrings(renders, tree.Punctuation)...)

	var combined []string
	combined = append(combined, backref...)
	combined = append(combined, initial...)
	combined = append(combined, evilQuantifier...)

	return &Result{
		Warnings:       collectWarnings(tree, renders),
		Lines:          dedupOrdered(combined),
		Initial:        initial,
		BackrefEvil:    backref,
		QuantifierEvil: evilQuantifier,
	}, nil
}

func dedupOrdered(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
