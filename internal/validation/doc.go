// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared. Field names in messages come
// from json tags, so errors refer to the names clients actually send.
//
// Custom tags:
//   - notblank: the string contains at least one non-whitespace character
//   - film_source: the string is a source filter (all, hollywood, bollywood, TMDB, ...) or,
//     with ValidateStructCtx and WithSources, any source of the loaded catalog
//
// # Quick Start
//
//	type RecommendRequest struct {
//	    Query  string `json:"query" validate:"notblank,max=1000"`
//	    K      int    `json:"k" validate:"omitempty,min=1,max=10"`
//	    Source string `json:"source" validate:"omitempty,film_source"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
