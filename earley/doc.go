/*
Package earley implements an incremental Earley chart parser: the
inference rules (axioms and trigger rules) that populate a chart.Chart
from a grammar.Grammar and a stream of tokens, one position at a time,
so that a consumer can feed more input whenever it becomes available.

Two strategies are provided out of the box: EarleyStrategy (plain CFG,
symbol equality) and FeatureEarleyStrategy (FCFG, unification). Both share
the same fundamental-rule combinator (rules.go); they differ only in
how a produced symbol is matched against a sought one.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earley.parser'.
func tracer() tracing.Trace {
	return tracing.Select("earley.parser")
}
