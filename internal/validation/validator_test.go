// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package validation

import (
	"strings"
	"testing"
)

type testFilters struct {
	Language  *string `json:"language" validate:"omitempty,langtag"`
	PageCount *int    `json:"page_count" validate:"omitempty,gte=1,lte=5"`
}

type testRequest struct {
	Answers []int        `json:"answers" validate:"len=5,dive,gte=0,lte=3"`
	Name    string       `json:"name" validate:"omitempty,max=4"`
	Filters *testFilters `json:"filters" validate:"omitempty"`
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one shared instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     testRequest
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: testRequest{Answers: []int{0, 1, 2, 3, 0}, Filters: &testFilters{Language: strPtr("ko-KR"), PageCount: intPtr(2)}},
		},
		{
			name:  "nil filters",
			input: testRequest{Answers: []int{3, 3, 3, 3, 3}},
		},
		{
			name:      "too few answers",
			input:     testRequest{Answers: []int{0, 1}},
			wantField: "answers",
			wantMsg:   "answers must have exactly 5 items",
		},
		{
			name:      "answer out of range",
			input:     testRequest{Answers: []int{0, 1, 4, 0, 0}},
			wantField: "answers[2]",
			wantMsg:   "answers[2] must be less than or equal to 3",
		},
		{
			name:      "negative answer",
			input:     testRequest{Answers: []int{0, -1, 0, 0, 0}},
			wantField: "answers[1]",
			wantMsg:   "greater than or equal to 0",
		},
		{
			name:      "page count too high",
			input:     testRequest{Answers: []int{0, 0, 0, 0, 0}, Filters: &testFilters{PageCount: intPtr(9)}},
			wantField: "filters.page_count",
			wantMsg:   "filters.page_count must be less than or equal to 5",
		},
		{
			name:      "bad language tag",
			input:     testRequest{Answers: []int{0, 0, 0, 0, 0}, Filters: &testFilters{Language: strPtr("korean")}},
			wantField: "filters.language",
			wantMsg:   "language tag",
		},
		{
			name:      "string too long",
			input:     testRequest{Answers: []int{0, 0, 0, 0, 0}, Name: "abcdef"},
			wantField: "name",
			wantMsg:   "name must be at most 4 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if !strings.Contains(errs[0].Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want containing %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		verr := ValidateStruct(&testRequest{Answers: []int{0}})
		apiErr := verr.ToAPIError()
		if apiErr.Code != CodeValidation {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if apiErr.Details["field"] != "answers" || apiErr.Details["tag"] != "len" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()
		verr := ValidateStruct(&testRequest{Answers: []int{0, 9, 0, 9, 0}})
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details = %v", apiErr.Details)
		}
		if !strings.Contains(apiErr.Message, "answers[1]") || !strings.Contains(apiErr.Message, "answers[3]") {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestNewFieldError(t *testing.T) {
	t.Parallel()

	verr := NewFieldError("arbiter.model", "oneof", "a b", "c", "arbiter.model must be one of: a b")
	if verr.Error() != "arbiter.model must be one of: a b" {
		t.Errorf("Error() = %q", verr.Error())
	}
	apiErr := verr.ToAPIError()
	if apiErr.Details["field"] != "arbiter.model" || apiErr.Details["value"] != "c" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}
