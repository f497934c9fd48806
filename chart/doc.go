/*
Package chart implements the Earley chart: the append-only repository
of edges, partitioned by end position, with lazily materialized
secondary indexes used by the inference rules in package earley to
perform constant-time restricted lookups.

Edges are modeled as a small tagged union (TreeEdge / LeafEdge, see
edge.go) rather than a class hierarchy: dispatch is discriminant-based.
The chart owns every edge and every child-pointer list (CPL); rules
only ever see read-only views. CPL entries hold edge pointers, but are
compared and looked up by the chart's structural identity key rather
than by pointer identity, avoiding any reliance on interned-object
identity.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package chart

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earley.chart'.
func tracer() tracing.Trace {
	return tracing.Select("earley.chart")
}
