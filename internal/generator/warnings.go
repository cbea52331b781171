package generator

import (
	"fmt"

	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/parsetree"
)

// collectWarnings implements the three non-fatal warning checks of spec
// §4.6: anchor inconsistency across basis paths, an anchor appearing
// somewhere other than the very start/end of a path, and two character
// classes in the parse tree sharing an identical member set.
func collectWarnings(tree *parsetree.Tree, renders []rendered) []string {
	var warnings []string

	if w := anchorInconsistency(renders); w != "" {
		warnings = append(warnings, w)
	}
	warnings = append(warnings, anchorMidString(renders)...)
	warnings = append(warnings, duplicateCharClasses(tree)...)

	return warnings
}

// anchorInconsistency fires once, the first time some basis path begins
// with ^ (respectively ends with $) while another does not.
func anchorInconsistency(renders []rendered) string {
	var haveCaret, lackCaret, haveDollar, lackDollar *rendered

	for i := range renders {
		r := &renders[i]
		if r.path.HasLeadingCaret {
			if haveCaret == nil {
				haveCaret = r
			}
		} else if lackCaret == nil {
			lackCaret = r
		}
		if r.path.HasTrailingDollar {
			if haveDollar == nil {
				haveDollar = r
			}
		} else if lackDollar == nil {
			lackDollar = r
		}
	}

	if haveCaret != nil && lackCaret != nil {
		return fmt.Sprintf("anchor inconsistency: %q begins with ^ but %q does not", haveCaret.sp.String(), lackCaret.sp.String())
	}
	if haveDollar != nil && lackDollar != nil {
		return fmt.Sprintf("anchor inconsistency: %q ends with $ but %q does not", haveDollar.sp.String(), lackDollar.sp.String())
	}
	return ""
}

// anchorMidString flags a ^ or $ marker that is not the first (respectively
// last) *consuming* position of its path. A raw transition index can't be
// used directly: nfa.Build always wraps every path in a synthetic
// Start->entry and exit->Accept epsilon, so a leading ^ never actually sits
// at transition index 0. Instead this follows the same zero-width-prefix/
// suffix rule Path.computeFlags uses for HasLeadingCaret/HasTrailingDollar:
// a caret is "leading" only if no consuming transition precedes it, a
// dollar "trailing" only if none follows it.
func anchorMidString(renders []rendered) []string {
	var warnings []string
	for _, r := range renders {
		consumedBefore := false
		for _, t := range r.path.Transitions {
			if t.Kind == nfa.TransMarker && t.Marker == nfa.MarkAnchor && t.Anchor == parsetree.AnchorCaret && consumedBefore {
				warnings = append(warnings, fmt.Sprintf("anchor mid-string: ^ is not the first transition of %q", r.sp.String()))
			}
			if t.Kind == nfa.TransConsume {
				consumedBefore = true
			}
		}

		consumedAfter := false
		for i := len(r.path.Transitions) - 1; i >= 0; i-- {
			t := r.path.Transitions[i]
			if t.Kind == nfa.TransMarker && t.Marker == nfa.MarkAnchor && t.Anchor == parsetree.AnchorDollar && consumedAfter {
				warnings = append(warnings, fmt.Sprintf("anchor mid-string: $ is not the last transition of %q", r.sp.String()))
			}
			if t.Kind == nfa.TransConsume {
				consumedAfter = true
			}
		}
	}
	return warnings
}

// duplicateCharClasses flags any two character classes in the parse tree
// that admit exactly the same set of printable ASCII members.
func duplicateCharClasses(tree *parsetree.Tree) []string {
	var warnings []string
	seen := map[int]bool{}

	for i := 0; i < len(tree.CharClasses); i++ {
		if seen[i] {
			continue
		}
		for j := i + 1; j < len(tree.CharClasses); j++ {
			if seen[j] {
				continue
			}
			if sameMemberSet(tree.CharClasses[i], tree.CharClasses[j]) {
				warnings = append(warnings, fmt.Sprintf("duplicate character sets: class #%d and class #%d admit the same members", i+1, j+1))
				seen[j] = true
			}
		}
	}
	return warnings
}

func sameMemberSet(a, b *parsetree.CharClass) bool {
	for r := rune(0x20); r <= 0x7E; r++ {
		if a.Matches(r) != b.Matches(r) {
			return false
		}
	}
	return true
}
