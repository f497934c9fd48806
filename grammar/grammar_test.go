package grammar

import (
	"testing"

	"github.com/npillmayer/earleychart/tok"
)

const (
	tokA tok.TokType = iota + 1
	tokB
)

func abGrammar(t *testing.T) *Grammar {
	b := NewBuilder("AB")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").T("a", tokA).End()
	b.LHS("B").T("b", tokB).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestBuilderProducesStartSymbol(t *testing.T) {
	g := abGrammar(t)
	if g.StartSymbol().Name != "S" {
		t.Errorf("expected start symbol S, got %s", g.StartSymbol())
	}
}

func TestProductionsByLHS(t *testing.T) {
	g := abGrammar(t)
	prods := g.ProductionsByLHS("S")
	if len(prods) != 1 || len(prods[0].RHS) != 2 {
		t.Fatalf("unexpected productions for S: %v", prods)
	}
}

func TestEpsilonNullable(t *testing.T) {
	b := NewBuilder("EpsGrammar")
	b.LHS("S").T("a", tokA).N("S").End()
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.DerivesEpsilon("S") {
		t.Errorf("expected S to be nullable")
	}
}

func TestTransitivelyNullable(t *testing.T) {
	b := NewBuilder("Trans")
	b.LHS("A").N("B").N("C").End()
	b.LHS("B").Epsilon()
	b.LHS("C").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.DerivesEpsilon("A") {
		t.Errorf("expected A to be transitively nullable")
	}
}

func TestCheckCoverageRejectsUnknownToken(t *testing.T) {
	g := abGrammar(t)
	const tokC tok.TokType = 99
	bad := tok.NewToken(tokC, "c", nil, tok.Span{0, 1})
	if err := g.CheckCoverage([]tok.Token{bad}); err == nil {
		t.Errorf("expected coverage error for unknown token type")
	}
}

func TestCheckCoverageAcceptsKnownTokens(t *testing.T) {
	g := abGrammar(t)
	a := tok.NewToken(tokA, "a", nil, tok.Span{0, 1})
	b := tok.NewToken(tokB, "b", nil, tok.Span{1, 2})
	if err := g.CheckCoverage([]tok.Token{a, b}); err != nil {
		t.Errorf("unexpected coverage error: %v", err)
	}
}

func TestBuilderErrorOnMissingStart(t *testing.T) {
	b := NewBuilder("Bad").Start("Missing")
	b.LHS("S").T("a", tokA).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for start symbol never used as LHS")
	}
}

func TestFeatureUnificationAgreement(t *testing.T) {
	sg := Features{"num": "sg"}
	pl := Features{"num": "pl"}
	if _, _, ok := Unify(sg, pl); ok {
		t.Errorf("expected unification of num=sg and num=pl to fail")
	}
	nVar := Features{"num": &Var{Name: "n"}}
	merged, binding, ok := Unify(nVar, sg)
	if !ok {
		t.Fatalf("expected unification of ?n and sg to succeed")
	}
	if merged["num"] != "sg" || binding["n"] != "sg" {
		t.Errorf("expected ?n bound to sg, got merged=%v binding=%v", merged, binding)
	}
}
