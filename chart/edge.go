package chart

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/npillmayer/earleychart/grammar"
	"github.com/npillmayer/earleychart/tok"
)

// Kind discriminates the two edge variants.
type Kind int

const (
	// KindTree is a (partial or complete) application of a production.
	KindTree Kind = iota
	// KindLeaf is a terminal scanned at a single input position.
	KindLeaf
)

// Edge is a hypothesis about a subsequence of the input: either a
// TreeEdge (partial/complete application of a production) or a
// LeafEdge (a scanned terminal).
type Edge struct {
	Kind Kind

	// TreeEdge fields.
	LHS *grammar.Symbol
	RHS []*grammar.Symbol
	Dot int

	// LeafEdge field.
	Token tok.Token

	span tok.Span
}

// NewTreeEdge creates a TreeEdge hypothesis: rhs[0:dot) already matched
// over span.
func NewTreeEdge(lhs *grammar.Symbol, rhs []*grammar.Symbol, dot int, span tok.Span) *Edge {
	return &Edge{Kind: KindTree, LHS: lhs, RHS: rhs, Dot: dot, span: span}
}

// NewLeafEdge creates a LeafEdge for a token scanned at position p. Its
// span is always [p, p+1) and it is always complete.
func NewLeafEdge(token tok.Token, p uint64) *Edge {
	return &Edge{Kind: KindLeaf, Token: token, span: tok.Span{p, p + 1}}
}

// Start returns the edge's start position.
func (e *Edge) Start() uint64 { return e.span[0] }

// End returns the edge's end position.
func (e *Edge) End() uint64 { return e.span[1] }

// Span returns the edge's span.
func (e *Edge) Span() tok.Span { return e.span }

// IsComplete reports whether the edge represents a full derivation: a
// TreeEdge whose dot has reached the end of its RHS, or any LeafEdge.
func (e *Edge) IsComplete() bool {
	return e.Kind == KindLeaf || e.Dot == len(e.RHS)
}

// NextSymbol returns rhs[dot] for an incomplete TreeEdge, nil otherwise.
func (e *Edge) NextSymbol() *grammar.Symbol {
	if e.Kind != KindTree || e.IsComplete() {
		return nil
	}
	return e.RHS[e.Dot]
}

// Label returns the nonterminal for a TreeEdge (its LHS) and the
// matched token for a LeafEdge.
func (e *Edge) Label() interface{} {
	if e.Kind == KindLeaf {
		return e.Token
	}
	return e.LHS
}

// Advance returns a new TreeEdge with the dot moved one position to the
// right and its span extended to newEnd; it does not mutate e. Dot
// advancement is always modeled by deriving a new edge, never by
// mutating one in place.
func (e *Edge) Advance(newEnd uint64) *Edge {
	return &Edge{Kind: KindTree, LHS: e.LHS, RHS: e.RHS, Dot: e.Dot + 1, span: tok.Span{e.span[0], newEnd}}
}

// identity is the canonical structural key used for chart
// deduplication: two edges with the same identity are the same edge,
// regardless of allocation. It uses each symbol's CanonicalKey, not
// its Skeleton: two edges bound to different concrete feature values
// (NP[num=sg] vs. NP[num=pl] over the same span) are distinct edges,
// even though they share one Select index bucket.
func (e *Edge) identity() string {
	if e.Kind == KindLeaf {
		h, err := structhash.Hash(struct {
			K     Kind
			TT    tok.TokType
			Lex   string
			Start uint64
			End   uint64
		}{e.Kind, e.Token.TokType(), e.Token.Lexeme(), e.span[0], e.span[1]}, 1)
		if err != nil {
			panic(err) // structhash only fails on unhashable input, which cannot happen here
		}
		return h
	}
	rhsNames := make([]string, len(e.RHS))
	for i, s := range e.RHS {
		rhsNames[i] = s.CanonicalKey()
	}
	h, err := structhash.Hash(struct {
		K     Kind
		LHS   string
		RHS   []string
		Dot   int
		Start uint64
		End   uint64
	}{e.Kind, e.LHS.CanonicalKey(), rhsNames, e.Dot, e.span[0], e.span[1]}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

func (e *Edge) String() string {
	if e.Kind == KindLeaf {
		return fmt.Sprintf("[%q %s]", e.Token.Lexeme(), e.span)
	}
	s := fmt.Sprintf("[%s ->", e.LHS)
	for i, sym := range e.RHS {
		if i == e.Dot {
			s += " •"
		}
		s += " " + sym.String()
	}
	if e.Dot == len(e.RHS) {
		s += " •"
	}
	return s + fmt.Sprintf(", %s]", e.span)
}

// CPL is a child-pointer list: an ordered tuple of edges, one per
// matched RHS position, recording which child edge contributed to each
// dot advance.
type CPL []*Edge

func (c CPL) String() string {
	s := "⟨"
	for i, e := range c {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "⟩"
}
