// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is wrapped by InvalidQueryError.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotReady is returned by Recommend before the index is built.
	ErrNotReady = errors.New("recommendation index not ready")

	// ErrAlreadyBuilt is returned by a second call to Build.
	ErrAlreadyBuilt = errors.New("recommendation index already built")

	// ErrInvalidK is returned by Config.ResolveK for an out-of-range result count.
	ErrInvalidK = errors.New("invalid result count")
)

// InvalidQueryError reports a query that cannot be ranked, such as an empty one.
type InvalidQueryError struct {
	Query  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Reason)
}

// Unwrap returns nil; an InvalidQueryError never wraps a cause.
func (e *InvalidQueryError) Unwrap() error {
	return nil
}

// Is makes errors.Is(err, ErrInvalidQuery) match any InvalidQueryError.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}
