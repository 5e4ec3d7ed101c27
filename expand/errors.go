package expand

import "errors"

var (
	// ErrExpanded is returned when a stand-in for an expanded prototype is
	// asked to run.
	ErrExpanded = errors.New("prototype was expanded; run the generated units instead")

	// ErrNilDestination is returned by ExpandInto when no destination
	// mapping was supplied. The destination is an explicit required
	// argument; there is no caller-namespace fallback.
	ErrNilDestination = errors.New("destination mapping for generated suites is nil")
)
