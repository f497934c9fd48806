package grammar

import (
	"fmt"

	"github.com/npillmayer/earleychart/tok"
)

// Builder builds a Grammar rule by rule, in the style of a fluent
// grammar builder:
//
//	b := grammar.NewBuilder("Expr")
//	b.LHS("Sum").N("Sum").T("+", opPlus).N("Product").End()
//	b.LHS("Sum").N("Product").End()
//	b.LHS("Product").N("Product").T("*", opTimes).N("Factor").End()
//	b.LHS("Product").N("Factor").End()
//	b.LHS("Factor").T("number", opNumber).End()
//	g, err := b.Grammar()
//
// The LHS of the first production added becomes the grammar's start
// symbol unless overridden with Start().
type Builder struct {
	name    string
	start   string
	prods   []*Production
	cur     *Production
	nonterm map[string]*Symbol
	err     error
}

// NewBuilder creates an empty grammar builder named `name` (for
// diagnostics only).
func NewBuilder(name string) *Builder {
	return &Builder{name: name, nonterm: map[string]*Symbol{}}
}

// Start overrides the default start-symbol choice (the LHS of the
// first production added).
func (b *Builder) Start(name string) *Builder {
	b.start = name
	return b
}

func (b *Builder) nonterminal(name string, f Features) *Symbol {
	if sym, ok := b.nonterm[name]; ok {
		if f != nil {
			sym.Features = f
		}
		return sym
	}
	sym := &Symbol{Name: name, Features: f}
	b.nonterm[name] = sym
	return sym
}

// LHS begins a new production with the given (plain) LHS nonterminal.
func (b *Builder) LHS(name string) *Builder {
	return b.LHSF(name, nil)
}

// LHSF begins a new production with an LHS nonterminal carrying
// Features (FCFG).
func (b *Builder) LHSF(name string, f Features) *Builder {
	if b.err != nil {
		return b
	}
	if b.start == "" {
		b.start = name
	}
	b.cur = &Production{LHS: b.nonterminal(name, f)}
	return b
}

// N appends a plain nonterminal to the RHS of the production under
// construction.
func (b *Builder) N(name string) *Builder {
	return b.NF(name, nil)
}

// NF appends a feature nonterminal to the RHS.
func (b *Builder) NF(name string, f Features) *Builder {
	if b.err != nil || b.cur == nil {
		return b
	}
	b.cur.RHS = append(b.cur.RHS, b.nonterminal(name, f))
	return b
}

// T appends a terminal to the RHS, matching token type tt.
func (b *Builder) T(name string, tt tok.TokType) *Builder {
	if b.err != nil || b.cur == nil {
		return b
	}
	b.cur.RHS = append(b.cur.RHS, NewTerminal(name, tt))
	return b
}

// TF appends a feature terminal (its pattern unified against a token's
// Value()) to the RHS.
func (b *Builder) TF(name string, tt tok.TokType, f Features) *Builder {
	if b.err != nil || b.cur == nil {
		return b
	}
	sym := NewTerminal(name, tt)
	sym.Features = f
	b.cur.RHS = append(b.cur.RHS, sym)
	return b
}

// End finalizes the production under construction.
func (b *Builder) End() *Builder {
	return b.finish()
}

// Epsilon finalizes the production under construction as an
// epsilon-production (empty RHS).
func (b *Builder) Epsilon() *Builder {
	if b.cur != nil {
		b.cur.RHS = nil
	}
	return b.finish()
}

func (b *Builder) finish() *Builder {
	if b.err != nil {
		return b
	}
	if b.cur == nil {
		b.err = fmt.Errorf("grammar %q: End()/Epsilon() called without a preceding LHS()", b.name)
		return b
	}
	b.cur.Serial = len(b.prods)
	b.prods = append(b.prods, b.cur)
	b.cur = nil
	return b
}

// Grammar finalizes the builder and returns the constructed Grammar, or
// the first error encountered while building it.
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.prods) == 0 {
		return nil, fmt.Errorf("grammar %q: no productions defined", b.name)
	}
	start, ok := b.nonterm[b.start]
	if !ok {
		return nil, fmt.Errorf("grammar %q: start symbol %q is never an LHS", b.name, b.start)
	}
	g := &Grammar{
		Name:        b.name,
		start:       start,
		productions: b.prods,
		byLHS:       map[string][]*Production{},
	}
	for _, p := range b.prods {
		g.byLHS[p.LHS.Name] = append(g.byLHS[p.LHS.Name], p)
	}
	g.nullable = computeNullable(b.prods)
	tracer().Debugf("built %s", g)
	return g, nil
}
