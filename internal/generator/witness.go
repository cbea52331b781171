package generator

import "github.com/egret-dev/egret/internal/parsetree"

// pickWitness chooses the deterministic character-class witness: the first
// character of base that qualifies, else the lexicographically least
// printable ASCII member (spec §9, "Deterministic character-class
// witness").
func pickWitness(cc *parsetree.CharClass, base string) rune {
	for _, r := range base {
		if cc.Matches(r) {
			return r
		}
	}
	for r := rune(0x20); r <= 0x7E; r++ {
		if cc.Matches(r) {
			return r
		}
	}
	return 0
}
