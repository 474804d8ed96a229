// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
)

// ErrDataLoad is returned (wrapped) when catalog data is missing, unreadable or malformed.
var ErrDataLoad = errors.New("catalog data load failed")

// DataLoadError describes a catalog load failure.
type DataLoadError struct {
	// Path is the data source that failed, if known.
	Path string

	// Reason is a short human-readable description.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *DataLoadError) Error() string {
	msg := "catalog: " + e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("catalog %s: %s", e.Path, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDataLoad) match any DataLoadError.
func (e *DataLoadError) Is(target error) bool {
	return target == ErrDataLoad
}

func loadError(path, reason string, err error) error {
	return &DataLoadError{Path: path, Reason: reason, Err: err}
}
