package chart

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
)

// BadRestrictionError is raised by Select when asked to filter on an
// attribute name not defined on edges.
type BadRestrictionError struct {
	Attribute string
}

func (e *BadRestrictionError) Error() string {
	return fmt.Sprintf("chart: bad restriction attribute %q", e.Attribute)
}

// InternalInvariantError signals a detected violation of a chart
// invariant (duplicate detection failure, CPL/dot mismatch). It
// indicates a bug in this package, not an input problem.
type InternalInvariantError struct {
	Msg string
}

func (e *InternalInvariantError) Error() string {
	return "chart: internal invariant violated: " + e.Msg
}

// invariantViolation records and, if configured to, panics on an
// InternalInvariant condition. Production code normally wants the error
// surfaced rather than a hard crash, but during development/debugging a
// panic with a full stack trace is more useful; the
// "panic-on-parser-stuck" config flag controls that choice.
func invariantViolation(msg string) error {
	err := &InternalInvariantError{Msg: msg}
	tracer().Errorf(err.Error())
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(err)
	}
	return err
}
