/*
Package grammar implements the grammar model the chart parser operates
on: symbols (terminals and nonterminals), productions, and a read-only
Grammar exposing exactly the surface the parser needs
(start symbol, productions indexed by LHS, terminal/nonterminal
classification, epsilon-derivability, and a coverage check over an
input token stream).

A second flavor, feature grammars (FCFG), attaches an attribute-value
map to nonterminals and replaces symbol equality with unification; see
features.go.

Grammars are built with a Builder:

    b := grammar.NewBuilder("Expr")
    b.LHS("Sum").N("Sum").T("+", opPlus).N("Product").End()
    b.LHS("Sum").N("Product").End()
    g, err := b.Grammar()

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earley.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("earley.grammar")
}
