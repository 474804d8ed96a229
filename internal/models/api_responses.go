// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"time"
)

// APIResponse is the envelope for every HTTP response.
//
// Status is "success" with Data set, or "error" with Error set.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INVALID_QUERY",
//	    "message": "query must not be empty"
//	  },
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and tracing details for a response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError describes a failed request.
//
// Error codes:
//   - INVALID_QUERY: empty or whitespace-only query
//   - VALIDATION_ERROR: malformed parameters (k out of range, unknown source)
//   - NOT_READY: the recommendation index is still building
//   - EMBEDDING_UNAVAILABLE: the embedding provider failed
//   - RECOMMENDATION_ERROR: any other failure
//   - RATE_LIMIT_EXCEEDED: too many requests from one client
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
