package grammar

import (
	"fmt"

	"github.com/npillmayer/earleychart/tok"
)

// Production is a rule LHS -> RHS[0] RHS[1] ... RHS[k-1]. k == 0 denotes
// an epsilon production.
type Production struct {
	Serial int // ordinal position within the grammar (declaration order)
	LHS    *Symbol
	RHS    []*Symbol
}

func (p *Production) String() string {
	if len(p.RHS) == 0 {
		return fmt.Sprintf("%s -> ε", p.LHS)
	}
	s := fmt.Sprintf("%s ->", p.LHS)
	for _, sym := range p.RHS {
		s += " " + sym.String()
	}
	return s
}

// CoverageError is raised by CheckCoverage when some input token cannot
// be produced as a terminal by any production of the grammar.
type CoverageError struct {
	Token tok.Token
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("grammar coverage: no terminal matches token %q (type %v)", e.Token.Lexeme(), e.Token.TokType())
}

// Grammar is the read-only object the parser consumes: a start symbol,
// productions indexed by LHS, terminal/nonterminal classification, and
// epsilon-derivability, plus (for FCFG) unification over its symbols'
// feature structures.
type Grammar struct {
	Name        string
	start       *Symbol
	productions []*Production
	byLHS       map[string][]*Production
	nullable    map[string]bool
}

// StartSymbol returns the grammar's designated start symbol.
func (g *Grammar) StartSymbol() *Symbol {
	return g.start
}

// ProductionsByLHS returns every production whose LHS has the given
// name (there may be several alternatives A -> β1 | β2 | ...).
func (g *Grammar) ProductionsByLHS(name string) []*Production {
	return g.byLHS[name]
}

// IsTerminal reports whether sym is a terminal of this grammar.
func (g *Grammar) IsTerminal(sym *Symbol) bool {
	return sym.IsTerminal()
}

// DerivesEpsilon reports whether the nonterminal named `name` can derive
// the empty string, computed once at grammar-build time by fixpoint
// iteration over the productions. Epsilon productions must still
// advance the dot correctly without consuming any token.
func (g *Grammar) DerivesEpsilon(name string) bool {
	return g.nullable[name]
}

// CheckCoverage raises a CoverageError for the first token not
// producible as a terminal by some production in the grammar. Called
// before any edge is inserted, so an uncoverable token fails fast
// rather than silently starving the parse.
func (g *Grammar) CheckCoverage(tokens []tok.Token) error {
	terminals := map[tok.TokType]bool{}
	for _, p := range g.productions {
		for _, sym := range p.RHS {
			if sym.IsTerminal() {
				terminals[sym.tokType] = true
			}
		}
	}
	for _, t := range tokens {
		if !terminals[t.TokType()] {
			return &CoverageError{Token: t}
		}
	}
	return nil
}

// Productions returns every production of the grammar, in declaration
// order (their Serial matches their index).
func (g *Grammar) Productions() []*Production {
	return g.productions
}

func (g *Grammar) String() string {
	s := fmt.Sprintf("Grammar %q (start=%s)\n", g.Name, g.start)
	for _, p := range g.productions {
		s += fmt.Sprintf("  %2d: %s\n", p.Serial, p)
	}
	return s
}

// computeNullable runs a least-fixpoint over the productions to find
// every nonterminal that derives the empty string, directly (an epsilon
// production) or transitively (all RHS symbols nullable).
func computeNullable(productions []*Production) map[string]bool {
	nullable := map[string]bool{}
	changed := true
	for changed {
		changed = false
		for _, p := range productions {
			if nullable[p.LHS.Name] {
				continue
			}
			ok := true
			for _, sym := range p.RHS {
				if sym.IsTerminal() || !nullable[sym.Name] {
					ok = false
					break
				}
			}
			if ok {
				nullable[p.LHS.Name] = true
				changed = true
			}
		}
	}
	return nullable
}
