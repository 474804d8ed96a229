// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
)

type recommendInput struct {
	Query  string `json:"query" validate:"notblank,max=20"`
	K      int    `json:"k" validate:"omitempty,min=1,max=10"`
	Source string `json:"source" validate:"omitempty,film_source"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     recommendInput
		wantField string
		wantTag   string
	}{
		{name: "valid", input: recommendInput{Query: "space", K: 5, Source: "bollywood"}},
		{name: "valid without optional fields", input: recommendInput{Query: "space"}},
		{name: "blank query", input: recommendInput{Query: "   "}, wantField: "query", wantTag: "notblank"},
		{name: "query too long", input: recommendInput{Query: strings.Repeat("x", 21)}, wantField: "query", wantTag: "max"},
		{name: "k too large", input: recommendInput{Query: "q", K: 11}, wantField: "k", wantTag: "max"},
		{name: "k negative", input: recommendInput{Query: "q", K: -1}, wantField: "k", wantTag: "min"},
		{name: "unknown source", input: recommendInput{Query: "q", Source: "netflix"}, wantField: "source", wantTag: "film_source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			got := err.Errors()[0]
			if got.Field() != tt.wantField || got.Tag() != tt.wantTag {
				t.Errorf("error on %s/%s, want %s/%s", got.Field(), got.Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&recommendInput{Query: " ", K: 50})
	if err == nil {
		t.Fatal("expected validation error")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "query: query must not be empty") ||
		!strings.Contains(apiErr.Message, "k: k must be at most 10") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("Details missing fields: %v", apiErr.Details)
	}

	single := ValidateStruct(&recommendInput{Query: "ok", Source: "x"}).ToAPIError()
	if single.Details["field"] != "source" {
		t.Errorf("single error Details = %v", single.Details)
	}
}

func TestValidateStructCtx_CatalogSources(t *testing.T) {
	ctx := WithSources(context.Background(), []catalog.Source{catalog.SourceTMDB, "Crunchyroll"})

	if err := ValidateStructCtx(ctx, &recommendInput{Query: "q", Source: "Crunchyroll"}); err != nil {
		t.Errorf("catalog source rejected: %v", err)
	}
	if err := ValidateStructCtx(ctx, &recommendInput{Query: "q", Source: "crunchyroll"}); err != nil {
		t.Errorf("case-insensitive catalog source rejected: %v", err)
	}
	if err := ValidateStructCtx(ctx, &recommendInput{Query: "q", Source: "netflix"}); err == nil {
		t.Error("source outside the catalog accepted")
	}
	if err := ValidateStruct(&recommendInput{Query: "q", Source: "Crunchyroll"}); err == nil {
		t.Error("catalog source accepted without catalog context")
	}
}
