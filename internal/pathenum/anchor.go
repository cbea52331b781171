package pathenum

import (
	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/parsetree"
)

func isCaret(t nfa.Transition) bool {
	return t.Anchor == parsetree.AnchorCaret
}

func isDollar(t nfa.Transition) bool {
	return t.Anchor == parsetree.AnchorDollar
}
