package generator

import (
	"strings"
	"testing"

	"github.com/dlclark/regexp2"

	"github.com/egret-dev/egret/internal/nfa"
	"github.com/egret-dev/egret/internal/parsetree"
	"github.com/egret-dev/egret/internal/scanner"
)

func compile(t *testing.T, regex, base string) (*parsetree.Tree, *nfa.NFA, *Result) {
	t.Helper()
	sc := scanner.New(regex)
	tokens, err := sc.Scan()
	if err != nil {
		t.Fatalf("scan %q: %v", regex, err)
	}
	tree, err := parsetree.Parse(tokens, sc.Punctuation())
	if err != nil {
		t.Fatalf("parse %q: %v", regex, err)
	}
	graph, err := nfa.Build(tree)
	if err != nil {
		t.Fatalf("build %q: %v", regex, err)
	}
	result, err := Generate(tree, graph, base)
	if err != nil {
		t.Fatalf("generate %q: %v", regex, err)
	}
	return tree, graph, result
}

// TestGenerate_InitialStringsAccepted checks spec §8's "Acceptance"
// property: every Phase I string is accepted by a reference engine running
// the original regex.
func TestGenerate_InitialStringsAccepted(t *testing.T) {
	cases := []struct {
		regex string
		base  string
	}{
		{regex: `a[bc]+d`, base: "xyz"},
		{regex: `(ab){2,4}`, base: "foo"},
		{regex: `^abc$`, base: "abc"},
		{regex: `(a+)\1`, base: "hello"},
		{regex: `colou?r`, base: "abc"},
		{regex: `[a-z]{3}\d{2}`, base: "abc"},
	}

	for _, c := range cases {
		_, _, result := compile(t, c.regex, c.base)
		re, err := regexp2.Compile(c.regex, 0)
		if err != nil {
			t.Fatalf("regex %q: reference engine failed to compile: %v", c.regex, err)
		}
		for _, s := range result.Initial {
			matched, err := re.MatchString(s)
			if err != nil {
				t.Fatalf("regex %q: reference match error on %q: %v", c.regex, s, err)
			}
			if !matched {
				t.Errorf("regex %q: Phase I string %q was not accepted by the reference engine", c.regex, s)
			}
		}
	}
}

// TestGenerate_FiniteQuantifierBoundaryRejected checks spec §8's
// "Rejection of boundary evil strings" property for a finite {n} bound.
func TestGenerate_FiniteQuantifierBoundaryRejected(t *testing.T) {
	regex := `a{3}`
	_, _, result := compile(t, regex, "xy")

	re, err := regexp2.Compile(`^`+regex+`$`, 0)
	if err != nil {
		t.Fatalf("reference engine failed to compile: %v", err)
	}

	wantLess, wantMore := "aa", "aaaa"
	var sawLess, sawMore bool
	for _, s := range result.QuantifierEvil {
		if s == wantLess {
			sawLess = true
		}
		if s == wantMore {
			sawMore = true
		}
	}
	if !sawLess || !sawMore {
		t.Fatalf("expected both %q and %q among %v", wantLess, wantMore, result.QuantifierEvil)
	}

	for _, s := range []string{wantLess, wantMore} {
		matched, err := re.MatchString(s)
		if err != nil {
			t.Fatalf("reference match error on %q: %v", s, err)
		}
		if matched {
			t.Errorf("boundary evil string %q should be rejected, was accepted", s)
		}
	}
}

// TestGenerate_RangeQuantifierBoundaries checks spec §8 scenario 2: for a
// range bound {lower,upper}, one_less is one short of the lower bound, not
// of the single physical iteration a basis path happens to walk.
func TestGenerate_RangeQuantifierBoundaries(t *testing.T) {
	_, _, result := compile(t, `a{2,4}`, "xy")
	want := []string{"a", "aaaa", "aaaaa"}
	for _, w := range want {
		found := false
		for _, s := range result.QuantifierEvil {
			if s == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q among %v", w, result.QuantifierEvil)
		}
	}
}

// TestGenerate_BackrefCoverage checks spec §8's "Backref coverage"
// property: for every capturing group referenced by \k, at least one
// emitted string deliberately violates the backref equality.
func TestGenerate_BackrefCoverage(t *testing.T) {
	regex := `(ab)\1`
	_, _, result := compile(t, regex, "xy")

	re, err := regexp2.Compile(`^`+regex+`$`, 0)
	if err != nil {
		t.Fatalf("reference engine failed to compile: %v", err)
	}

	if len(result.BackrefEvil) == 0 {
		t.Fatalf("expected at least one evil backref string, got none")
	}
	var sawViolation bool
	for _, s := range result.BackrefEvil {
		matched, err := re.MatchString(s)
		if err != nil {
			t.Fatalf("reference match error on %q: %v", s, err)
		}
		if !matched {
			sawViolation = true
		}
	}
	if !sawViolation {
		t.Fatalf("expected at least one evil backref string to violate backref equality, none did among %v", result.BackrefEvil)
	}
}

// TestGenerate_Dedup checks spec §8's "Dedup" property on the combined
// output list.
func TestGenerate_Dedup(t *testing.T) {
	_, _, result := compile(t, `(a|a)b`, "xy")
	seen := make(map[string]bool)
	for _, s := range result.Lines {
		if seen[s] {
			t.Fatalf("duplicate in Lines: %q", s)
		}
		seen[s] = true
	}
}

// TestGenerate_AnchorInconsistencyWarning checks spec §8's "Anchor
// warning" property.
func TestGenerate_AnchorInconsistencyWarning(t *testing.T) {
	_, _, result := compile(t, `^a|b`, "xy")
	if len(result.Warnings) == 0 {
		t.Fatalf("expected an anchor inconsistency warning for ^a|b")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "anchor inconsistency") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an anchor inconsistency warning, got %q", result.Warnings)
	}
}

// TestGenerate_OutputOrder checks that the combined list places evil
// backref strings before Phase I strings before evil quantifier strings
// (spec §4.6).
func TestGenerate_OutputOrder(t *testing.T) {
	_, _, result := compile(t, `(a+)\1b{2,4}`, "xy")

	indexOf := func(s string) int {
		for i, l := range result.Lines {
			if l == s {
				return i
			}
		}
		return -1
	}

	if len(result.BackrefEvil) == 0 || len(result.Initial) == 0 || len(result.QuantifierEvil) == 0 {
		t.Fatalf("expected all three phases to be non-empty for this regex")
	}

	lastBackref := -1
	for _, s := range result.BackrefEvil {
		if i := indexOf(s); i > lastBackref {
			lastBackref = i
		}
	}
	// A string that also occurs in an earlier phase keeps that earlier
	// position after dedup, so it does not mark where its later phase starts.
	inBackref := make(map[string]bool)
	for _, s := range result.BackrefEvil {
		inBackref[s] = true
	}
	inInitial := make(map[string]bool)
	for _, s := range result.Initial {
		inInitial[s] = true
	}

	firstInitial := len(result.Lines)
	for _, s := range result.Initial {
		if inBackref[s] {
			continue
		}
		if i := indexOf(s); i >= 0 && i < firstInitial {
			firstInitial = i
		}
	}
	lastInitial := -1
	for _, s := range result.Initial {
		if i := indexOf(s); i > lastInitial {
			lastInitial = i
		}
	}
	firstQuantifier := len(result.Lines)
	for _, s := range result.QuantifierEvil {
		if inBackref[s] || inInitial[s] {
			continue
		}
		if i := indexOf(s); i >= 0 && i < firstQuantifier {
			firstQuantifier = i
		}
	}

	if lastBackref >= firstInitial {
		t.Errorf("a backref-evil string appears at or after the first initial string")
	}
	if lastInitial >= firstQuantifier {
		t.Errorf("an initial string appears at or after the first evil-quantifier string")
	}
}
