package earley

import "fmt"

// Strategy bundles the axioms and trigger rules that drive a parse,
// plus the match discipline (Unify) the underlying chart.Chart must be
// built with. Two strategies are provided out of the box: a plain CFG
// one and an FCFG one.
type Strategy struct {
	Name         string
	Axioms       []Axiom
	TriggerRules []TriggerRule
	Unify        bool
}

func (s Strategy) validate() error {
	if len(s.TriggerRules) == 0 {
		return &StrategyShapeError{Msg: fmt.Sprintf("strategy %q has no trigger rules", s.Name)}
	}
	for _, a := range s.Axioms {
		if a.NumEdges() != 0 {
			return &StrategyShapeError{Msg: fmt.Sprintf("axiom %q has NumEdges()=%d, want 0", a.Name(), a.NumEdges())}
		}
	}
	for _, r := range s.TriggerRules {
		if r.NumEdges() != 1 {
			return &StrategyShapeError{Msg: fmt.Sprintf("trigger rule %q has NumEdges()=%d, want 1", r.Name(), r.NumEdges())}
		}
	}
	return nil
}

// EarleyStrategy is the plain-CFG rule set: LeafInit + TopDownInit
// axioms, Predictor/Scanner/Completer trigger rules, symbol equality
// throughout (chart built with unify=false).
func EarleyStrategy() Strategy {
	return Strategy{
		Name:         "EARLEY_STRATEGY",
		Axioms:       []Axiom{LeafInitRule{}, TopDownInitRule{}},
		TriggerRules: []TriggerRule{PredictorRule{}, ScannerRule{}, CompleterRule{}},
		Unify:        false,
	}
}

// FeatureEarleyStrategy is the FCFG rule set: identical rule shapes,
// but the chart is built with unify=true, so Select's "next"/"lhs"
// restrictions are matched by unification rather than equality.
func FeatureEarleyStrategy() Strategy {
	return Strategy{
		Name:         "FEATURE_EARLEY_STRATEGY",
		Axioms:       []Axiom{LeafInitRule{}, TopDownInitRule{}},
		TriggerRules: []TriggerRule{PredictorRule{}, ScannerRule{}, CompleterRule{}},
		Unify:        true,
	}
}
