package scanner

import "testing"

func TestScanLiteralsAndMeta(t *testing.T) {
	toks, err := New(`a.b`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds := []Kind{KindLiteral, KindWildcard, KindLiteral, KindEOF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestScanQuantifiers(t *testing.T) {
	cases := []struct {
		src         string
		lower, upper int
		lazy        bool
	}{
		{"a*", 0, -1, false},
		{"a+", 1, -1, false},
		{"a?", 0, 1, false},
		{"a*?", 0, -1, true},
		{"a{3}", 3, 3, false},
		{"a{2,}", 2, -1, false},
		{"a{2,4}", 2, 4, false},
	}
	for _, c := range cases {
		toks, err := New(c.src).Scan()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.src, err)
		}
		var q *Token
		for i := range toks {
			if toks[i].Kind == KindQuantifier {
				q = &toks[i]
			}
		}
		if q == nil {
			t.Fatalf("%s: no quantifier token found", c.src)
		}
		if q.Lower != c.lower || q.Upper != c.upper || q.Lazy != c.lazy {
			t.Errorf("%s: got {%d,%d,%v}, want {%d,%d,%v}", c.src, q.Lower, q.Upper, q.Lazy, c.lower, c.upper, c.lazy)
		}
	}
}

func TestScanMalformedBraceFallsBackToLiteral(t *testing.T) {
	toks, err := New(`a{x}`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawBrace bool
	for _, tok := range toks {
		if tok.Kind == KindLiteral && tok.Char == '{' {
			sawBrace = true
		}
	}
	if !sawBrace {
		t.Errorf("expected an unparseable brace to fall back to a literal '{', got %v", toks)
	}
}

func TestScanOutOfOrderBraceBoundsErrors(t *testing.T) {
	if _, err := New(`a{4,2}`).Scan(); err == nil {
		t.Fatal("expected an error for out-of-order quantifier bounds")
	}
}

func TestScanTrailingBackslashErrors(t *testing.T) {
	if _, err := New(`a\`).Scan(); err == nil {
		t.Fatal("expected an error for a trailing backslash")
	}
}

func TestScanUnsupportedEscapeErrors(t *testing.T) {
	if _, err := New(`\k`).Scan(); err == nil {
		t.Fatal("expected an error for an unsupported escape")
	}
}

func TestScanUnterminatedCharClassErrors(t *testing.T) {
	if _, err := New(`[abc`).Scan(); err == nil {
		t.Fatal("expected an error for an unterminated character class")
	}
}

func TestScanCharClassRange(t *testing.T) {
	toks, err := New(`[a-z]`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == KindCharClassRange && tok.RangeLo == 'a' && tok.RangeHi == 'z' {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a charclass range a-z, got %v", toks)
	}
}

func TestScanNonCapturingGroup(t *testing.T) {
	toks, err := New(`(?:ab)`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != KindGroupOpen || toks[0].Capturing {
		t.Errorf("expected a non-capturing group-open token, got %+v", toks[0])
	}
}

func TestPunctuationInventory(t *testing.T) {
	sc := New(`a.b,c!`)
	if _, err := sc.Scan(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	punct := sc.Punctuation()
	want := map[rune]bool{',': true, '!': true}
	for _, r := range punct {
		if !want[r] {
			t.Errorf("unexpected punctuation rune %q in %v", r, punct)
		}
		delete(want, r)
	}
	if len(want) != 0 {
		t.Errorf("missing expected punctuation runes: %v", want)
	}
}

func TestPrefilterFindsShorthands(t *testing.T) {
	hits := Prefilter(`\d+\s\w`)
	needles := make(map[string]bool)
	for _, h := range hits {
		needles[h.Needle] = true
	}
	for _, want := range []string{`\d`, `\s`, `\w`} {
		if !needles[want] {
			t.Errorf("expected prefilter to find %q among %v", want, hits)
		}
	}
}

func TestScannerExposesPrefilterHits(t *testing.T) {
	sc := New(`\d+\w`)
	hits := sc.PrefilterHits()
	if len(hits) != 2 {
		t.Fatalf("expected 2 prefilter hits, got %d: %v", len(hits), hits)
	}
	if hits[0].Needle != `\d` || hits[1].Needle != `\w` {
		t.Errorf("expected hits in byte-offset order [\\d, \\w], got %v", hits)
	}
}
