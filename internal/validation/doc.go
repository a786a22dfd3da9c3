// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

// Package validation validates API request bodies with go-playground/validator v10.
//
// A single validator instance is created on first use with
// WithRequiredStructEnabled. Field names in error messages are taken from
// json tags, so a failure reads "filters.page_count must be at most 5"
// rather than using Go field names.
//
// # Custom Tags
//
//   - langtag: a language-REGION tag such as ko-KR or en-US
//
// Checks that depend on runtime configuration (the configured language
// list, the allowed arbiter models) are made by handlers and reported with
// NewFieldError so they share the same error shape.
//
// # Usage
//
//	type classifyRequest struct {
//	    Answers []int `json:"answers" validate:"len=5,dive,gte=0,lte=3"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// All failures use the VALIDATION_ERROR code. A single failure carries
// field, tag and value in Details; several failures are listed under
// Details["fields"].
package validation
