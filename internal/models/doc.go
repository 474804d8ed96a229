// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the JSON shapes exchanged over the HTTP API.

Every endpoint wraps its payload in APIResponse so clients can branch on Status and
read Error for failures. Request bodies carry validator tags checked by the
validation package.

Key Components:

  - APIResponse, Metadata, APIError: the response envelope
  - RecommendRequest: body of POST /api/v1/recommendations
  - RecommendationsData, Recommendation: recommendation payload
  - CatalogInfo, SourceOption, HealthStatus: catalog and health payloads
*/
package models
