package earley

import (
	"fmt"

	"github.com/npillmayer/earleychart/chart"
	"github.com/npillmayer/earleychart/grammar"
	"github.com/npillmayer/earleychart/tok"
)

// ChartFamily selects between the plain-equality and unification-based
// chart implementations. The two families share one chart.Chart type
// parameterized by a unify flag; ChartFamily exists so a caller can pin
// that choice explicitly and have it checked against the chosen
// Strategy, rather than always inferring it silently from the
// grammar's start symbol.
type ChartFamily int

const (
	// AutoChartFamily infers plain-vs-feature from the grammar's start
	// symbol, the default when no WithChartFamily option is given.
	AutoChartFamily ChartFamily = iota
	// PlainChart forces symbol-equality matching.
	PlainChart
	// FeatureChart forces unification-based matching.
	FeatureChart
)

// Option configures a Parser at construction time, following the
// usual functional-options convention.
type Option func(*Parser)

// WithStrategy overrides the strategy NewParser would otherwise pick
// automatically.
func WithStrategy(s Strategy) Option {
	return func(p *Parser) { p.strategy = s }
}

// WithTrace sets the trace verbosity: 0 silent, 1 logs every edge an
// axiom or trigger rule discovers, 2 additionally banners each new position.
func WithTrace(level int) Option {
	return func(p *Parser) { p.traceLevel = level }
}

// WithTraceChartWidth sets the advisory width used when
// rendering the trace_level>=2 per-position banners.
func WithTraceChartWidth(width int) Option {
	return func(p *Parser) { p.traceChartWidth = width }
}

// WithChartFamily pins the parser to a specific chart implementation
// instead of letting NewParser infer one from the grammar. NewParser
// rejects a mismatched (rule-family, chart-family) pairing with a
// StrategyShapeError.
func WithChartFamily(f ChartFamily) Option {
	return func(p *Parser) { p.chartFamily = f }
}

// Parser drives a Strategy's rules over a chart.Chart for one grammar.
type Parser struct {
	grammar         *grammar.Grammar
	strategy        Strategy
	chartFamily     ChartFamily
	traceLevel      int
	traceChartWidth int
}

// NewParser builds a Parser for g. FeatureEarleyStrategy is selected
// automatically when g's start symbol carries Features; EarleyStrategy
// otherwise. Either choice can be overridden with WithStrategy, and the
// chart family it is paired with can be pinned with WithChartFamily.
func NewParser(g *grammar.Grammar, opts ...Option) (*Parser, error) {
	strategy := EarleyStrategy()
	if g.StartSymbol().Features != nil {
		strategy = FeatureEarleyStrategy()
	}
	p := &Parser{grammar: g, strategy: strategy}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.strategy.validate(); err != nil {
		return nil, err
	}
	if err := p.checkChartFamily(); err != nil {
		return nil, err
	}
	tracer().Debugf("parser ready: grammar=%q strategy=%s", g.Name, p.strategy.Name)
	return p, nil
}

// checkChartFamily rejects a mismatched (rule-family, chart-family)
// pairing: a strategy built for unification (Unify == true) may only
// run over FeatureChart (or AutoChartFamily, which follows the
// strategy), never over a pinned PlainChart, and vice versa.
func (p *Parser) checkChartFamily() error {
	switch p.chartFamily {
	case AutoChartFamily:
		return nil
	case PlainChart:
		if p.strategy.Unify {
			return &StrategyShapeError{Msg: fmt.Sprintf("strategy %q requires a feature chart, but PlainChart was requested", p.strategy.Name)}
		}
	case FeatureChart:
		if !p.strategy.Unify {
			return &StrategyShapeError{Msg: fmt.Sprintf("strategy %q is plain, but FeatureChart was requested", p.strategy.Name)}
		}
	}
	return nil
}

// Incremental is a stateful, re-entrant driver over one chart: tokens
// may be fed one at a time, with the chart available for inspection
// between feeds ("incremental driver" — completing position k
// never revisits k-1, so earlier work survives later feeds).
type Incremental struct {
	parser *Parser
	chart  *chart.Chart
	seeded bool
}

// NewIncremental starts a fresh incremental parse over g.
func (p *Parser) NewIncremental() *Incremental {
	return &Incremental{parser: p, chart: chart.New(nil, p.strategy.Unify)}
}

// Chart returns the chart built so far.
func (ip *Incremental) Chart() *chart.Chart { return ip.chart }

// Feed appends one token to the input and runs every inference rule to
// a local fixpoint at the position the token occupies. Edges that were
// predicted at that position before the token arrived (e.g. an
// incomplete edge expecting a terminal not yet fed) are revisited, not
// skipped: ensureSeeded/a prior Feed may already have parked such edges
// there while the position was still open, so this reprocesses the
// position rather than advancing past it.
func (ip *Incremental) Feed(t tok.Token) error {
	if err := ip.parser.grammar.CheckCoverage([]tok.Token{t}); err != nil {
		return &GrammarCoverageError{Cause: err}
	}
	if err := ip.ensureSeeded(); err != nil {
		return err
	}
	p := ip.chart.AppendToken(t)
	return ip.processPosition(p)
}

// Finish ensures position 0 has been seeded (for a zero-token parse)
// and returns the chart built so far. Safe to call at any time,
// including before any Feed.
func (ip *Incremental) Finish() (*chart.Chart, error) {
	if err := ip.ensureSeeded(); err != nil {
		return nil, err
	}
	return ip.chart, nil
}

func (ip *Incremental) ensureSeeded() error {
	if ip.seeded {
		return nil
	}
	ip.seeded = true
	return ip.processPosition(0)
}

// processPosition applies every axiom at pos, then drains a worklist
// of newly discovered edges through every trigger rule until no rule
// produces anything novel: a local fixpoint at this position, restated
// as an explicit worklist rather than repeated chart scans.
func (ip *Incremental) processPosition(pos uint64) error {
	ch := ip.chart
	g := ip.parser.grammar
	traceBanner(pos, ip.parser.traceLevel, ip.parser.traceChartWidth)

	var worklist []*chart.Edge
	for _, axiom := range ip.parser.strategy.Axioms {
		produced, err := axiom.ApplyAxiom(ch, g, pos)
		if err != nil {
			return err
		}
		traceEdges(axiom.Name(), produced, ip.parser.traceLevel)
		worklist = append(worklist, produced...)
	}
	existing, err := ch.Select(pos, nil)
	if err != nil {
		return err
	}
	worklist = append(worklist, existing...)

	seen := map[*chart.Edge]bool{}
	for len(worklist) > 0 {
		last := len(worklist) - 1
		edge := worklist[last]
		worklist = worklist[:last]
		if seen[edge] {
			continue
		}
		seen[edge] = true
		for _, rule := range ip.parser.strategy.TriggerRules {
			produced, err := rule.ApplyTrigger(ch, g, edge)
			if err != nil {
				return err
			}
			traceEdges(rule.Name(), produced, ip.parser.traceLevel)
			worklist = append(worklist, produced...)
		}
	}
	return nil
}

// ChartParse runs a complete parse over tokens and returns the
// resulting chart, a convenience wrapper around Incremental for
// callers who already hold the whole input.
func (p *Parser) ChartParse(tokens []tok.Token) (*chart.Chart, error) {
	if err := p.grammar.CheckCoverage(tokens); err != nil {
		return nil, &GrammarCoverageError{Cause: err}
	}
	ip := p.NewIncremental()
	for _, t := range tokens {
		if err := ip.Feed(t); err != nil {
			return nil, err
		}
	}
	if _, err := ip.Finish(); err != nil {
		return nil, err
	}
	return ip.chart, nil
}

// Parse runs a complete parse and extracts every derivation of the
// grammar's start symbol spanning the whole input.
func (p *Parser) Parse(tokens []tok.Token) ([]*chart.Tree, error) {
	ch, err := p.ChartParse(tokens)
	if err != nil {
		return nil, err
	}
	return ch.Parses(p.grammar.StartSymbol()), nil
}
