// Package recommend implements the preference-driven recommendation pipeline
// (constraint filter, preference scorer, category balancer) and the
// ingredient consolidator that turns selected recipes into a shopping list.
//
// Every function in this package is pure: inputs are never mutated and no
// state is shared between calls, so callers may run them concurrently over a
// shared read-only catalog.
package recommend

import "errors"

// ErrInvalidInput is returned when a required structural field is missing in
// a way that makes further processing meaningless.
var ErrInvalidInput = errors.New("invalid input")
