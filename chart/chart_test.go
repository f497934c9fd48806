package chart

import (
	"testing"

	"github.com/npillmayer/earleychart/grammar"
	"github.com/npillmayer/earleychart/tok"
)

const (
	tokA tok.TokType = iota + 1
	tokB
)

func mkLeaf(tt tok.TokType, lexeme string, p uint64) *Edge {
	return NewLeafEdge(tok.NewToken(tt, lexeme, nil, tok.Span{p, p + 1}), p)
}

func TestInsertDeduplicatesByIdentity(t *testing.T) {
	c := New([]tok.Token{tok.NewToken(tokA, "a", nil, tok.Span{0, 1})}, false)
	leaf := mkLeaf(tokA, "a", 0)
	novel, err := c.Insert(leaf, nil)
	if err != nil || !novel {
		t.Fatalf("expected first insert to be novel, got novel=%v err=%v", novel, err)
	}
	leaf2 := mkLeaf(tokA, "a", 0)
	novel, err = c.Insert(leaf2, nil)
	if err != nil || novel {
		t.Fatalf("expected duplicate insert to be non-novel, got novel=%v err=%v", novel, err)
	}
	edges, err := c.Select(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected exactly one edge at position 1, got %d", len(edges))
	}
}

func TestInsertAccumulatesDistinctCPLs(t *testing.T) {
	s := grammar.NewNonterminal("S")
	a := grammar.NewTerminal("a", tokA)
	c := New([]tok.Token{tok.NewToken(tokA, "a", nil, tok.Span{0, 1})}, false)

	leaf, _ := c.Select(0, nil) // empty chart, just exercising no-restriction Select path
	_ = leaf

	leafEdge := mkLeaf(tokA, "a", 0)
	c.Insert(leafEdge, nil)

	e := NewTreeEdge(s, []*grammar.Symbol{a}, 0, tok.Span{0, 0})
	complete := e.Advance(1)
	novel, err := c.Insert(complete, CPL{leafEdge})
	if err != nil || !novel {
		t.Fatalf("expected novel insert, got novel=%v err=%v", novel, err)
	}
	if len(c.CPLs(complete)) != 1 {
		t.Fatalf("expected one CPL, got %d", len(c.CPLs(complete)))
	}
	// a separately allocated leaf (different object, same identity) should
	// not create a second CPL entry, since identity() is structural.
	leafEdge2 := mkLeaf(tokA, "a", 0)
	complete2 := NewTreeEdge(s, []*grammar.Symbol{a}, 0, tok.Span{0, 0}).Advance(1)
	novel, err = c.Insert(complete2, CPL{leafEdge2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if novel {
		t.Fatalf("expected re-insertion of structurally identical edge to be non-novel")
	}
	if len(c.CPLs(complete)) != 1 {
		t.Fatalf("expected the structurally identical CPL not to be added again, got %d CPLs", len(c.CPLs(complete)))
	}
}

func TestSelectByRestriction(t *testing.T) {
	s := grammar.NewNonterminal("S")
	a := grammar.NewTerminal("a", tokA)
	b := grammar.NewTerminal("b", tokB)
	c := New([]tok.Token{
		tok.NewToken(tokA, "a", nil, tok.Span{0, 1}),
		tok.NewToken(tokB, "b", nil, tok.Span{1, 2}),
	}, false)

	incomplete := NewTreeEdge(s, []*grammar.Symbol{a, b}, 0, tok.Span{0, 0})
	c.Insert(incomplete, CPL{})

	edges, err := c.Select(0, map[string]interface{}{AttrIsComplete: false, AttrNext: a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected one edge expecting 'a' next, got %d", len(edges))
	}

	edges, err = c.Select(0, map[string]interface{}{AttrNext: b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges expecting 'b' next, got %d", len(edges))
	}
}

func TestSelectRejectsUnknownRestriction(t *testing.T) {
	c := New(nil, false)
	if _, err := c.Select(0, map[string]interface{}{"bogus": true}); err == nil {
		t.Errorf("expected BadRestrictionError for unknown attribute")
	} else if _, ok := err.(*BadRestrictionError); !ok {
		t.Errorf("expected *BadRestrictionError, got %T", err)
	}
}

func TestIndexStaysConsistentAcrossInserts(t *testing.T) {
	s := grammar.NewNonterminal("S")
	a := grammar.NewTerminal("a", tokA)
	c := New([]tok.Token{tok.NewToken(tokA, "a", nil, tok.Span{0, 1})}, false)

	// Build the index before the matching edge exists.
	edges, _ := c.Select(0, map[string]interface{}{AttrIsComplete: false})
	if len(edges) != 0 {
		t.Fatalf("expected empty index result, got %d", len(edges))
	}

	incomplete := NewTreeEdge(s, []*grammar.Symbol{a}, 0, tok.Span{0, 0})
	c.Insert(incomplete, CPL{})

	edges, err := c.Select(0, map[string]interface{}{AttrIsComplete: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected the newly inserted edge to show up via the pre-built index, got %d", len(edges))
	}
}

func TestParsesSingleDerivation(t *testing.T) {
	s := grammar.NewNonterminal("S")
	a := grammar.NewTerminal("a", tokA)
	c := New([]tok.Token{tok.NewToken(tokA, "a", nil, tok.Span{0, 1})}, false)

	leaf := mkLeaf(tokA, "a", 0)
	c.Insert(leaf, nil)
	top := NewTreeEdge(s, []*grammar.Symbol{a}, 0, tok.Span{0, 0}).Advance(1)
	c.Insert(top, CPL{leaf})

	trees := c.Parses(s)
	if len(trees) != 1 {
		t.Fatalf("expected exactly one parse, got %d", len(trees))
	}
	if trees[0].String() != "(S a)" {
		t.Errorf("unexpected tree shape: %s", trees[0])
	}
}

func TestParsesNestedDerivation(t *testing.T) {
	// S -> S S | a, input "aa": the string has a single bracketing, so
	// one CPL on the top edge must come back as exactly one tree.
	s := grammar.NewNonterminal("S")
	a := grammar.NewTerminal("a", tokA)
	c := New([]tok.Token{
		tok.NewToken(tokA, "a", nil, tok.Span{0, 1}),
		tok.NewToken(tokA, "a", nil, tok.Span{1, 2}),
	}, false)

	leaf0 := mkLeaf(tokA, "a", 0)
	leaf1 := mkLeaf(tokA, "a", 1)
	c.Insert(leaf0, nil)
	c.Insert(leaf1, nil)

	sAt01 := NewTreeEdge(s, []*grammar.Symbol{a}, 0, tok.Span{0, 0}).Advance(1)
	c.Insert(sAt01, CPL{leaf0})
	sAt12 := NewTreeEdge(s, []*grammar.Symbol{a}, 0, tok.Span{1, 1}).Advance(2)
	c.Insert(sAt12, CPL{leaf1})

	ssRHS := []*grammar.Symbol{s, s}
	top := NewTreeEdge(s, ssRHS, 0, tok.Span{0, 0}).Advance(1).Advance(2)
	// one derivation: (S (S a) (S a)) built directly from the two S edges
	c.Insert(top, CPL{sAt01, sAt12})

	trees := c.Parses(s)
	if len(trees) != 1 {
		t.Fatalf("expected one derivation for this CPL set, got %d: %v", len(trees), trees)
	}
}

func TestIdentityDistinguishesFeatureBindingsOverSameSpan(t *testing.T) {
	// Two complete NP edges covering the identical span but bound to
	// different num values (as would arise from a lexically ambiguous
	// word like "sheep", singular or plural) must remain distinct chart
	// entries: identity has to key on the exact feature binding
	// (CanonicalKey), not the bucketing skeleton that deliberately
	// erases it.
	npSg := grammar.NewFeatureNonterminal("NP", grammar.Features{"num": "sg"})
	npPl := grammar.NewFeatureNonterminal("NP", grammar.Features{"num": "pl"})
	word := grammar.NewTerminal("sheep", tokA)
	c := New([]tok.Token{tok.NewToken(tokA, "sheep", nil, tok.Span{0, 1})}, true)

	leaf := mkLeaf(tokA, "sheep", 0)
	c.Insert(leaf, nil)

	sgEdge := NewTreeEdge(npSg, []*grammar.Symbol{word}, 0, tok.Span{0, 0}).Advance(1)
	novel, err := c.Insert(sgEdge, CPL{leaf})
	if err != nil || !novel {
		t.Fatalf("expected sg edge to be novel, got novel=%v err=%v", novel, err)
	}
	plEdge := NewTreeEdge(npPl, []*grammar.Symbol{word}, 0, tok.Span{0, 0}).Advance(1)
	novel, err = c.Insert(plEdge, CPL{leaf})
	if err != nil || !novel {
		t.Fatalf("expected pl edge to be a distinct, novel edge, got novel=%v err=%v", novel, err)
	}

	edges, err := c.Select(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the leaf also ends at position 1, next to the two NP edges
	if len(edges) != 3 {
		t.Fatalf("expected the leaf plus both feature-bound NP edges as distinct edges, got %d", len(edges))
	}
}
