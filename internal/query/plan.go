// Package query builds parameterized Cypher plans for the offshore leaks
// graph. Every template returns a Plan pairing query text with its parameter
// map; user-supplied values are always bound through parameters, never
// interpolated into the query text. The only values spliced into text are
// integers validated by range checks and identifiers passed through the
// sanitize helpers.
package query

// Plan is an immutable (query text, parameter map) pair. A Plan is built once
// per logical operation and discarded after execution; plans are never cached
// across calls because parameter values differ per call.
type Plan struct {
	Text   string
	Params map[string]any
}
