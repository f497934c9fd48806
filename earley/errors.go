package earley

import "fmt"

// GrammarCoverageError wraps a grammar.CoverageError raised while
// validating the input before parsing starts.
type GrammarCoverageError struct {
	Cause error
}

func (e *GrammarCoverageError) Error() string {
	return fmt.Sprintf("earley: %v", e.Cause)
}

func (e *GrammarCoverageError) Unwrap() error { return e.Cause }

// StrategyShapeError is raised when a Strategy's rule set references a
// chart family it was not designed for (e.g. a FeatureEarleyStrategy rule
// paired with a plain, non-unifying chart), or when an axiom or trigger
// rule's NumEdges() does not match what NewParser expects for its
// role.
type StrategyShapeError struct {
	Msg string
}

func (e *StrategyShapeError) Error() string {
	return "earley: strategy misconfigured: " + e.Msg
}

