package generator

import "github.com/egret-dev/egret/internal/nfa"

// Segment is one rendered, character-emitting step of a StringPath: the
// text it contributed plus the Transition that produced it.
type Segment struct {
	Text       string
	Transition nfa.Transition
}

// StringPath is an ordered sequence of Segments. Rendering it concatenates
// every segment's text in order.
type StringPath struct {
	Segments []Segment
}

// Add appends seg to the path.
func (sp *StringPath) Add(seg Segment) {
	sp.Segments = append(sp.Segments, seg)
}

// String renders the StringPath to a plain string.
func (sp StringPath) String() string {
	total := 0
	for _, s := range sp.Segments {
		total += len(s.Text)
	}
	buf := make([]byte, 0, total)
	for _, s := range sp.Segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// Len returns the rendered length in runes.
func (sp StringPath) Len() int {
	n := 0
	for _, s := range sp.Segments {
		n += len([]rune(s.Text))
	}
	return n
}
