package tok

import "fmt"

// TokType is a category type for a Token. Applications are free to define
// their own constants; the chart and grammar packages only ever compare
// values for equality.
type TokType int

// Token represents an input token, usually produced by a scanner and
// reflecting one terminal of the grammar under parse.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// Span is a half-open interval [From, To) over input positions. It is
// used both for token extents and for chart edge spans.
type Span [2]uint64

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length To-From of a span.
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull returns true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// simpleToken is a minimal Token implementation, returned by NewToken
// for callers and tests that need to build token streams by hand.
type simpleToken struct {
	typ    TokType
	lexeme string
	value  interface{}
	span   Span
}

// NewToken creates a Token carrying a type, its surface lexeme, an
// optional semantic value and its span in the input.
func NewToken(typ TokType, lexeme string, value interface{}, span Span) Token {
	return simpleToken{typ: typ, lexeme: lexeme, value: value, span: span}
}

func (t simpleToken) TokType() TokType     { return t.typ }
func (t simpleToken) Lexeme() string       { return t.lexeme }
func (t simpleToken) Value() interface{}   { return t.value }
func (t simpleToken) Span() Span           { return t.span }
