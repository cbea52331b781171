package scanner

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// prefilterNeedles are the fixed substrings the Aho-Corasick
// prefilter looks for before the rune-by-rune scan runs. They are exactly the
// multi-character escapes and anchors the surface syntax supports (spec §6).
var prefilterNeedles = []string{
	`\d`, `\D`, `\w`, `\W`, `\s`, `\S`, `\b`, `\B`,
}

// Hit is one prefilter match: which needle was found and at what byte offset.
type Hit struct {
	Needle string
	Pos    int
}

// Prefilter runs a fast multi-pattern scan over the raw pattern text using an
// Aho-Corasick automaton, returning every shorthand/anchor escape substring
// found. It never errors: a build failure degrades to "no hits" rather than
// failing the scan, since the prefilter is advisory (used only to annotate
// --debug traces, never to change output).
func Prefilter(pattern string) []Hit {
	builder := ahocorasick.NewBuilder()
	for _, needle := range prefilterNeedles {
		builder.AddPattern([]byte(needle))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil
	}

	haystack := []byte(pattern)
	var hits []Hit
	at := 0
	for at <= len(haystack) {
		m := automaton.Find(haystack, at)
		if m == nil {
			break
		}
		hits = append(hits, Hit{Needle: string(haystack[m.Start:m.End]), Pos: m.Start})
		at = m.Start + 1
	}
	return hits
}

// Scanner tokenizes a regex source string into a stream of Tokens, recording
// every literal punctuation character it encounters outside character
// classes into a punctuation inventory (§4.1).
type Scanner struct {
	src         []rune
	pos         int
	punctuation map[rune]struct{}
	tokens      []Token
	hits        []Hit
}

// New creates a Scanner over pattern. Scanning does not happen until Scan is
// called. The Aho-Corasick prefilter runs immediately, since it only needs
// the raw pattern text, not the token stream.
func New(pattern string) *Scanner {
	return &Scanner{
		src:         []rune(pattern),
		punctuation: make(map[rune]struct{}),
		hits:        Prefilter(pattern),
	}
}

// PrefilterHits returns the Aho-Corasick prefilter's findings over the raw
// pattern text, for display in the --debug trace (internal/report.Build).
// It is advisory only: the prefilter's needles are a fixed substring list
// rather than a proper lexical scan (e.g. it cannot tell `\d` inside a
// character class from one outside it), so its hits are never consulted by
// Scan or any later pipeline stage.
func (s *Scanner) PrefilterHits() []Hit {
	return s.hits
}

// Scan tokenizes the entire source and returns the resulting token stream,
// terminated by a KindEOF token. On any lexical malformation it returns a
// *Error.
func (s *Scanner) Scan() ([]Token, error) {
	for s.pos < len(s.src) {
		if err := s.scanOne(false); err != nil {
			return nil, err
		}
	}
	s.emit(Token{Kind: KindEOF, Pos: s.pos})
	return s.tokens, nil
}

// Punctuation returns the set of literal punctuation characters recorded
// outside character classes, in first-seen order.
func (s *Scanner) Punctuation() []rune {
	out := make([]rune, 0, len(s.punctuation))
	seen := make(map[rune]bool)
	for _, tok := range s.tokens {
		if tok.Kind != KindLiteral {
			continue
		}
		if _, ok := s.punctuation[tok.Char]; !ok {
			continue
		}
		if seen[tok.Char] {
			continue
		}
		seen[tok.Char] = true
		out = append(out, tok.Char)
	}
	return out
}

func (s *Scanner) emit(t Token) {
	s.tokens = append(s.tokens, t)
}

func (s *Scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *Scanner) peekAt(offset int) (rune, bool) {
	if s.pos+offset >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+offset], true
}

func (s *Scanner) advance() rune {
	r := s.src[s.pos]
	s.pos++
	return r
}

// scanOne scans the next token. inClass is not consulted: the contents of a
// character class are scanned by scanCharClass, reached through the '['
// case.
func (s *Scanner) scanOne(inClass bool) error {
	start := s.pos
	c := s.advance()

	switch c {
	case '(':
		capturing := true
		if r, ok := s.peek(); ok && r == '?' {
			if r2, ok2 := s.peekAt(1); ok2 && r2 == ':' {
				s.pos += 2
				capturing = false
			}
		}
		s.emit(Token{Kind: KindGroupOpen, Pos: start, Capturing: capturing})
		return nil
	case ')':
		s.emit(Token{Kind: KindGroupClose, Pos: start})
		return nil
	case '|':
		s.emit(Token{Kind: KindAlt, Pos: start})
		return nil
	case '.':
		s.emit(Token{Kind: KindWildcard, Pos: start})
		return nil
	case '^':
		s.emit(Token{Kind: KindAnchor, Pos: start, Anchor: AnchorCaret})
		return nil
	case '$':
		s.emit(Token{Kind: KindAnchor, Pos: start, Anchor: AnchorDollar})
		return nil
	case '*':
		return s.scanQuantifier(start, 0, -1)
	case '+':
		return s.scanQuantifier(start, 1, -1)
	case '?':
		return s.scanQuantifier(start, 0, 1)
	case '{':
		return s.scanBraceQuantifier(start)
	case '[':
		return s.scanCharClass(start)
	case '\\':
		return s.scanEscape(start)
	default:
		s.emitLiteral(start, c)
		return nil
	}
}

func (s *Scanner) emitLiteral(pos int, c rune) {
	s.emit(Token{Kind: KindLiteral, Pos: pos, Char: c})
	if isPunct(c) {
		s.punctuation[c] = struct{}{}
	}
}

func (s *Scanner) scanQuantifier(pos int, lower, upper int) error {
	lazy := false
	if r, ok := s.peek(); ok && r == '?' {
		s.pos++
		lazy = true
	}
	s.emit(Token{Kind: KindQuantifier, Pos: pos, Lower: lower, Upper: upper, Lazy: lazy})
	return nil
}

// scanBraceQuantifier scans {n}, {n,}, {n,m} starting just after the opening
// '{'. A malformed brace expression (no digits, non-numeric) is treated as a
// literal '{' per common regex practice rather than an error, since the
// surface grammar (§6) has no other use for an unparseable brace.
func (s *Scanner) scanBraceQuantifier(pos int) error {
	save := s.pos
	lower, okLower, consumedLower := s.scanDigits()
	if !okLower {
		s.pos = save
		s.emitLiteral(pos, '{')
		return nil
	}
	_ = consumedLower

	upper := lower
	if r, ok := s.peek(); ok && r == ',' {
		s.pos++
		if r2, ok2 := s.peek(); ok2 && r2 == '}' {
			upper = -1
		} else {
			u, okUpper, _ := s.scanDigits()
			if !okUpper {
				s.pos = save
				s.emitLiteral(pos, '{')
				return nil
			}
			upper = u
		}
	}

	if r, ok := s.peek(); !ok || r != '}' {
		s.pos = save
		s.emitLiteral(pos, '{')
		return nil
	}
	s.pos++ // consume '}'

	if upper != -1 && upper < lower {
		return newError(pos, "quantifier bounds out of order: {%d,%d}", lower, upper)
	}

	return s.scanQuantifier(pos, lower, upper)
}

func (s *Scanner) scanDigits() (value int, ok bool, consumed int) {
	start := s.pos
	for {
		r, has := s.peek()
		if !has || r < '0' || r > '9' {
			break
		}
		value = value*10 + int(r-'0')
		s.pos++
	}
	consumed = s.pos - start
	return value, consumed > 0, consumed
}

func (s *Scanner) scanEscape(pos int) error {
	r, ok := s.peek()
	if !ok {
		return newError(pos, "trailing backslash")
	}
	s.pos++

	switch r {
	case 'd', 'D', 'w', 'W', 's', 'S':
		s.emit(Token{Kind: KindCharClassShorthand, Pos: pos, Shorthand: byte(r)})
		return nil
	case 'b':
		s.emit(Token{Kind: KindAnchor, Pos: pos, Anchor: AnchorWordBoundary})
		return nil
	case 'B':
		s.emit(Token{Kind: KindAnchor, Pos: pos, Anchor: AnchorNonWordBoundary})
		return nil
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.emit(Token{Kind: KindBackref, Pos: pos, RefID: int(r - '0')})
		return nil
	case '.', '(', ')', '[', ']', '{', '}', '|', '*', '+', '?', '^', '$', '\\', '/', '-':
		s.emitLiteral(pos, r)
		return nil
	case 'n':
		s.emitLiteral(pos, '\n')
		return nil
	case 't':
		s.emitLiteral(pos, '\t')
		return nil
	case 'r':
		s.emitLiteral(pos, '\r')
		return nil
	default:
		return newError(pos, "unsupported escape '\\%c'", r)
	}
}

func (s *Scanner) scanCharClass(pos int) error {
	negated := false
	if r, ok := s.peek(); ok && r == '^' {
		s.pos++
		negated = true
	}
	s.emit(Token{Kind: KindCharClassOpen, Pos: pos, Negated: negated})

	first := true
	for {
		r, ok := s.peek()
		if !ok {
			return newError(pos, "unterminated character class")
		}
		if r == ']' && !first {
			s.pos++
			s.emit(Token{Kind: KindCharClassClose, Pos: s.pos - 1})
			return nil
		}
		first = false

		itemStart := s.pos
		var lo rune
		if r == '\\' {
			s.pos++
			esc, has := s.peek()
			if !has {
				return newError(itemStart, "trailing backslash in character class")
			}
			s.pos++
			switch esc {
			case 'd', 'D', 'w', 'W', 's', 'S':
				s.emit(Token{Kind: KindCharClassShorthand, Pos: itemStart, Shorthand: byte(esc)})
				continue
			case 'n':
				lo = '\n'
			case 't':
				lo = '\t'
			case 'r':
				lo = '\r'
			default:
				lo = esc
			}
		} else {
			s.pos++
			lo = r
		}

		// Check for a range a-z (but not when '-' is immediately before ']').
		if nr, ok := s.peek(); ok && nr == '-' {
			if nr2, ok2 := s.peekAt(1); ok2 && nr2 != ']' {
				s.pos++ // consume '-'
				hiStart := s.pos
				hc, has := s.peek()
				if !has {
					return newError(hiStart, "unterminated character class")
				}
				var hi rune
				if hc == '\\' {
					s.pos++
					e, has2 := s.peek()
					if !has2 {
						return newError(hiStart, "trailing backslash in character class")
					}
					s.pos++
					hi = e
				} else {
					s.pos++
					hi = hc
				}
				if hi < lo {
					return newError(itemStart, "character class range out of order: %c-%c", lo, hi)
				}
				s.emit(Token{Kind: KindCharClassRange, Pos: itemStart, RangeLo: lo, RangeHi: hi})
				continue
			}
		}

		s.emit(Token{Kind: KindCharClassLiteral, Pos: itemStart, Char: lo})
	}
}

func isPunct(c rune) bool {
	if c > 127 {
		return false
	}
	return strings.ContainsRune(`!"#$%&'()*+,-./:;<=>?@[\]^_`+"`"+`{|}~`, c)
}
