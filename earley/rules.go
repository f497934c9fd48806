package earley

import (
	"github.com/npillmayer/earleychart/chart"
	"github.com/npillmayer/earleychart/grammar"
	"github.com/npillmayer/earleychart/tok"
)

// Rule is the common shape of an Earley inference rule. NumEdges is 0
// for an axiom applied once per position regardless of chart content,
// 1 for a trigger rule applied once per edge newly discovered at the
// current position. Strategy.validate uses it to reject a
// misconfigured rule set before parsing starts.
type Rule interface {
	NumEdges() int
	Name() string
}

// Axiom seeds the chart at a position, independent of what is already
// there.
type Axiom interface {
	Rule
	ApplyAxiom(ch *chart.Chart, g *grammar.Grammar, pos uint64) ([]*chart.Edge, error)
}

// TriggerRule reacts to one edge newly discovered at the current
// position, producing zero or more further edges.
type TriggerRule interface {
	Rule
	ApplyTrigger(ch *chart.Chart, g *grammar.Grammar, edge *chart.Edge) ([]*chart.Edge, error)
}

// TopDownInitRule seeds position 0 with one incomplete TreeEdge per
// production of the start symbol, dot at 0.
type TopDownInitRule struct{}

func (TopDownInitRule) NumEdges() int { return 0 }
func (TopDownInitRule) Name() string  { return "TopDownInit" }

func (TopDownInitRule) ApplyAxiom(ch *chart.Chart, g *grammar.Grammar, pos uint64) ([]*chart.Edge, error) {
	if pos != 0 {
		return nil, nil
	}
	var out []*chart.Edge
	for _, p := range g.ProductionsByLHS(g.StartSymbol().Name) {
		ne := chart.NewTreeEdge(p.LHS, p.RHS, 0, tok.Span{0, 0})
		novel, err := ch.Insert(ne, chart.CPL{})
		if err != nil {
			return out, err
		}
		if novel {
			out = append(out, ne)
		}
	}
	return out, nil
}

// LeafInitRule inserts the LeafEdge for the token occupying position
// pos, if any. In the incremental driver this fires exactly once, the
// moment that token is fed.
type LeafInitRule struct{}

func (LeafInitRule) NumEdges() int { return 0 }
func (LeafInitRule) Name() string  { return "LeafInit" }

func (LeafInitRule) ApplyAxiom(ch *chart.Chart, g *grammar.Grammar, pos uint64) ([]*chart.Edge, error) {
	t := ch.TokenAt(pos)
	if t == nil {
		return nil, nil
	}
	leaf := chart.NewLeafEdge(t, pos)
	novel, err := ch.Insert(leaf, nil)
	if err != nil {
		return nil, err
	}
	if !novel {
		return nil, nil
	}
	return []*chart.Edge{leaf}, nil
}

// PredictorRule: for every incomplete edge expecting a nonterminal Y,
// add an edge for every production Y -> ... at the edge's end
// position, dot at 0 ("For every state of the form X -> a . Y b,
// add Y -> . g for every production with Y on the left").
type PredictorRule struct{}

func (PredictorRule) NumEdges() int { return 1 }
func (PredictorRule) Name() string  { return "Predictor" }

func (PredictorRule) ApplyTrigger(ch *chart.Chart, g *grammar.Grammar, edge *chart.Edge) ([]*chart.Edge, error) {
	if edge.Kind != chart.KindTree || edge.IsComplete() {
		return nil, nil
	}
	next := edge.NextSymbol()
	if next.IsTerminal() {
		return nil, nil
	}
	var out []*chart.Edge
	for _, p := range g.ProductionsByLHS(next.Name) {
		ne := chart.NewTreeEdge(p.LHS, p.RHS, 0, tok.Span{edge.End(), edge.End()})
		novel, err := ch.Insert(ne, chart.CPL{})
		if err != nil {
			return out, err
		}
		if novel {
			out = append(out, ne)
		}
	}
	return out, nil
}

// ScannerRule: for an incomplete edge expecting a terminal, check the
// token occupying the edge's end position; on a match, materialize its
// LeafEdge and advance the dot across it via the fundamental rule.
type ScannerRule struct{}

func (ScannerRule) NumEdges() int { return 1 }
func (ScannerRule) Name() string  { return "Scanner" }

func (ScannerRule) ApplyTrigger(ch *chart.Chart, g *grammar.Grammar, edge *chart.Edge) ([]*chart.Edge, error) {
	if edge.Kind != chart.KindTree || edge.IsComplete() {
		return nil, nil
	}
	next := edge.NextSymbol()
	if !next.IsTerminal() {
		return nil, nil
	}
	pos := edge.End()
	t := ch.TokenAt(pos)
	if t == nil || !next.Matches(t) {
		return nil, nil
	}
	leaf := chart.NewLeafEdge(t, pos)
	if _, err := ch.Insert(leaf, nil); err != nil {
		return nil, err
	}
	return combineLeftToRight(ch, edge, leaf)
}

// CompleterRule: for an edge that has just become complete, find every
// incomplete edge ending where it begins and expecting its label, and
// advance each across it via the fundamental rule. This is the
// "secondary index" hot path: the chart.AttrIsComplete/chart.AttrNext
// restriction pair is exactly the index Select materializes lazily.
type CompleterRule struct{}

func (CompleterRule) NumEdges() int { return 1 }
func (CompleterRule) Name() string  { return "Completer" }

func (CompleterRule) ApplyTrigger(ch *chart.Chart, g *grammar.Grammar, edge *chart.Edge) ([]*chart.Edge, error) {
	if edge.Kind != chart.KindTree || !edge.IsComplete() {
		return nil, nil
	}
	lefts, err := ch.Select(edge.Start(), map[string]interface{}{
		chart.AttrIsComplete: false,
		chart.AttrNext:       edge.LHS,
	})
	if err != nil {
		return nil, err
	}
	var out []*chart.Edge
	for _, left := range lefts {
		produced, err := combineLeftToRight(ch, left, edge)
		if err != nil {
			return out, err
		}
		out = append(out, produced...)
	}
	return out, nil
}

// combineLeftToRight implements the fundamental rule: left is
// incomplete and expects right's label at left.End()==right.Start();
// for every child-pointer-list prefix left has accumulated so far, a
// new edge is produced with the dot advanced across right and that
// prefix extended by right. Used by both ScannerRule (right is a
// LeafEdge) and CompleterRule (right is a freshly completed TreeEdge).
//
// In FCFG mode this also carries forward feature bindings: the
// variable bindings discovered while unifying the expected RHS symbol
// against right's actual label are applied to left's own LHS AVM, so
// an edge's label always reflects everything unified into it so far,
// not just the bare production skeleton.
func combineLeftToRight(ch *chart.Chart, left, right *chart.Edge) ([]*chart.Edge, error) {
	boundLHS, ok := bindLHS(left, right)
	if !ok {
		return nil, nil
	}
	var out []*chart.Edge
	for _, prefix := range ch.CPLs(left) {
		cpl := make(chart.CPL, len(prefix), len(prefix)+1)
		copy(cpl, prefix)
		cpl = append(cpl, right)
		newEdge := chart.NewTreeEdge(boundLHS, left.RHS, left.Dot+1, tok.Span{left.Start(), right.End()})
		novel, err := ch.Insert(newEdge, cpl)
		if err != nil {
			return out, err
		}
		if novel {
			out = append(out, newEdge)
		}
	}
	return out, nil
}

// bindLHS computes left's LHS symbol as it should read once right has
// been matched against the RHS slot at left.Dot: unchanged for plain
// CFG (no Features anywhere), feature-bound for FCFG.
//
// The RHS slot's own variables (e.g. NP[num=?n]) are first resolved
// against what right actually produced, then the result is unified
// (not merely substituted) into left's own accumulated LHS features.
// Going through Unify here, rather than a plain substitution, is what
// catches cross-child disagreement: if an earlier sibling already
// bound the shared variable to a concrete value and this sibling
// implies a different one, the two concrete values collide in Unify
// and bindLHS reports failure (feature agreement across RHS
// positions). ok is false exactly when that happens, or when the slot
// and right's label do not unify at all (which should already have
// been ruled out by ScannerRule/CompleterRule's own pre-check; it is
// re-verified here defensively rather than assumed).
func bindLHS(left, right *chart.Edge) (*grammar.Symbol, bool) {
	want := left.RHS[left.Dot]
	var produced grammar.Features
	switch right.Kind {
	case chart.KindLeaf:
		if tf, ok := right.Token.Value().(grammar.Features); ok {
			produced = tf
		}
	case chart.KindTree:
		produced = right.LHS.Features
	}
	if want.Features == nil && produced == nil {
		return left.LHS, true
	}
	_, binding, ok := grammar.Unify(want.Features, produced)
	if !ok {
		return nil, false
	}
	boundWant := want.Features.Apply(binding)
	merged, _, ok := grammar.Unify(left.LHS.Features, boundWant)
	if !ok {
		return nil, false
	}
	if len(merged) == 0 {
		return left.LHS, true
	}
	return left.LHS.WithFeatures(merged), true
}
