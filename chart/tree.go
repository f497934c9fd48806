package chart

import (
	"strings"

	"github.com/npillmayer/earleychart/grammar"
	"github.com/npillmayer/earleychart/tok"
)

// Tree is one concrete parse: a node labeled either by a grammar symbol
// (an internal node) or by an input token (a leaf), with children in
// production order. Each distinct reading of the input is enumerated as
// its own root Tree; subtrees common to several readings may be shared
// between them (see Parses).
type Tree struct {
	Symbol   *grammar.Symbol // nil for leaves
	Token    tok.Token       // nil for internal nodes
	Children []*Tree
}

func (t *Tree) String() string {
	if t.Token != nil {
		return t.Token.Lexeme()
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(t.Symbol.Name)
	for _, c := range t.Children {
		b.WriteString(" ")
		b.WriteString(c.String())
	}
	b.WriteString(")")
	return b.String()
}

// Parses extracts every complete derivation of start spanning the whole
// input, by walking the chart's CPLs backward from the accepting edge.
// When the grammar is ambiguous, the cross product of children
// derivations is taken at every branch point, so the result enumerates
// one Tree per distinct reading. Derivations are memoized per edge so
// that shared substructure is computed once even though it may be
// referenced from many parent CPLs.
func (c *Chart) Parses(start *grammar.Symbol) []*Tree {
	memo := map[string][]*Tree{}
	var out []*Tree
	for _, e := range edgeValues(c.edgelists[c.n]) {
		if e.Kind != KindTree || !e.IsComplete() || e.Start() != 0 {
			continue
		}
		// the root label may carry features unified in from its children,
		// so match start by name and unifiability, not by skeleton
		if e.LHS.Name != start.Name {
			continue
		}
		if _, _, ok := grammar.Unify(e.LHS.Features, start.Features); !ok {
			continue
		}
		out = append(out, c.derive(e, memo)...)
	}
	return out
}

func (c *Chart) derive(e *Edge, memo map[string][]*Tree) []*Tree {
	id := e.identity()
	if cached, ok := memo[id]; ok {
		return cached
	}
	if e.Kind == KindLeaf {
		t := []*Tree{{Token: e.Token}}
		memo[id] = t
		return t
	}
	var trees []*Tree
	for _, cpl := range c.cpls[id] {
		childLists := make([][]*Tree, len(cpl))
		for i, child := range cpl {
			childLists[i] = c.derive(child, memo)
		}
		for _, combo := range cartesian(childLists) {
			trees = append(trees, &Tree{Symbol: e.LHS, Children: combo})
		}
	}
	memo[id] = trees
	return trees
}

// cartesian returns the cross product of lists, preserving order. An
// empty lists slice (epsilon production) yields a single empty combo.
func cartesian(lists [][]*Tree) [][]*Tree {
	result := [][]*Tree{{}}
	for _, list := range lists {
		var next [][]*Tree
		for _, combo := range result {
			for _, t := range list {
				nc := make([]*Tree, len(combo), len(combo)+1)
				copy(nc, combo)
				nc = append(nc, t)
				next = append(next, nc)
			}
		}
		result = next
	}
	return result
}
