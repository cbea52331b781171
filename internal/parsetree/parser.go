package parsetree

import (
	"github.com/egret-dev/egret/internal/scanner"
)

// Parser is a recursive-descent parser over a scanner.Token stream,
// implementing the grammar:
//
//	regex   := alt
//	alt     := concat ('|' concat)*
//	concat  := repeat+
//	repeat  := atom quantifier?
//	atom    := group | charclass | literal | anchor | backref | wildcard
type Parser struct {
	tokens []scanner.Token
	pos    int

	nextGroupID int
	nextLoopID  int
	closedGroup map[int]bool

	charClasses []*CharClass
}

// Parse tokenizes-result-free parsing: it consumes an already-scanned token
// stream and returns the resulting Tree.
func Parse(tokens []scanner.Token, punctuation []rune) (*Tree, error) {
	p := &Parser{
		tokens:      tokens,
		closedGroup: make(map[int]bool),
	}
	root, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, newError(p.cur().Pos, "unexpected token %s", p.cur().Kind)
	}
	return &Tree{
		Root:        root,
		GroupCount:  p.nextGroupID,
		Punctuation: punctuation,
		CharClasses: p.charClasses,
	}, nil
}

func (p *Parser) cur() scanner.Token {
	return p.tokens[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == scanner.KindEOF
}

func (p *Parser) advance() scanner.Token {
	t := p.tokens[p.pos]
	if t.Kind != scanner.KindEOF {
		p.pos++
	}
	return t
}

func (p *Parser) parseAlt() (Node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != scanner.KindAlt {
		return first, nil
	}
	branches := []Node{first}
	for p.cur().Kind == scanner.KindAlt {
		p.advance()
		next, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}
	return &Alt{Branches: branches}, nil
}

func (p *Parser) parseConcat() (Node, error) {
	var children []Node
	for p.startsAtom() {
		n, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if len(children) == 0 {
		return &Concat{}, nil
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &Concat{Children: children}, nil
}

func (p *Parser) startsAtom() bool {
	switch p.cur().Kind {
	case scanner.KindLiteral, scanner.KindCharClassOpen, scanner.KindCharClassShorthand,
		scanner.KindAnchor, scanner.KindBackref, scanner.KindWildcard, scanner.KindGroupOpen:
		return true
	default:
		return false
	}
}

func (p *Parser) parseRepeat() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != scanner.KindQuantifier {
		return atom, nil
	}
	q := p.advance()
	loopID := p.nextLoopID
	p.nextLoopID++
	return &Repeat{Child: atom, Lower: q.Lower, Upper: q.Upper, Lazy: q.Lazy, LoopID: loopID}, nil
}

func (p *Parser) parseAtom() (Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case scanner.KindLiteral:
		p.advance()
		return &Literal{Char: tok.Char}, nil
	case scanner.KindWildcard:
		p.advance()
		return &Wildcard{}, nil
	case scanner.KindAnchor:
		p.advance()
		return &Anchor{Kind: convertAnchor(tok.Anchor)}, nil
	case scanner.KindBackref:
		p.advance()
		if !p.closedGroup[tok.RefID] {
			return nil, newError(tok.Pos, "backreference \\%d refers to a group that has not been closed yet", tok.RefID)
		}
		return &Backref{GroupID: tok.RefID}, nil
	case scanner.KindCharClassShorthand:
		p.advance()
		cc := &CharClass{Shorthands: []byte{tok.Shorthand}}
		p.charClasses = append(p.charClasses, cc)
		return cc, nil
	case scanner.KindCharClassOpen:
		return p.parseCharClass()
	case scanner.KindGroupOpen:
		return p.parseGroup()
	default:
		return nil, newError(tok.Pos, "unexpected token %s", tok.Kind)
	}
}

func (p *Parser) parseCharClass() (Node, error) {
	open := p.advance() // KindCharClassOpen
	cc := &CharClass{Negated: open.Negated}
	for {
		tok := p.cur()
		switch tok.Kind {
		case scanner.KindCharClassLiteral:
			p.advance()
			cc.Ranges = append(cc.Ranges, RuneRange{Lo: tok.Char, Hi: tok.Char})
		case scanner.KindCharClassRange:
			p.advance()
			cc.Ranges = append(cc.Ranges, RuneRange{Lo: tok.RangeLo, Hi: tok.RangeHi})
		case scanner.KindCharClassShorthand:
			p.advance()
			cc.Shorthands = append(cc.Shorthands, tok.Shorthand)
		case scanner.KindCharClassClose:
			p.advance()
			p.charClasses = append(p.charClasses, cc)
			return cc, nil
		default:
			return nil, newError(tok.Pos, "unterminated character class")
		}
	}
}

func (p *Parser) parseGroup() (Node, error) {
	open := p.advance() // KindGroupOpen
	var id int
	if open.Capturing {
		p.nextGroupID++
		id = p.nextGroupID
	}
	child, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != scanner.KindGroupClose {
		return nil, newError(p.cur().Pos, "unmatched '('")
	}
	p.advance()
	if open.Capturing {
		p.closedGroup[id] = true
	}
	return &Group{ID: id, Capturing: open.Capturing, Child: child}, nil
}

func convertAnchor(k scanner.AnchorKind) AnchorKind {
	switch k {
	case scanner.AnchorCaret:
		return AnchorCaret
	case scanner.AnchorDollar:
		return AnchorDollar
	case scanner.AnchorWordBoundary:
		return AnchorWordBoundary
	case scanner.AnchorNonWordBoundary:
		return AnchorNonWordBoundary
	}
	return AnchorCaret
}
