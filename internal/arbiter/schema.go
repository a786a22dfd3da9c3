// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package arbiter

import (
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
)

// SchemaName is the json_schema format name sent with every request.
const SchemaName = "movie_pick"

var (
	schemaOnce     sync.Once
	schemaResolved *jsonschema.Resolved
	schemaDoc      map[string]interface{}
	schemaErr      error
)

// VerdictSchema describes the single object the model must return.
func VerdictSchema() *jsonschema.Schema {
	minConfidence, maxConfidence := 0.0, 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"movie_id": {
				Type:        "integer",
				Description: "catalog id of the chosen movie",
			},
			"title": {
				Type:        "string",
				Description: "title of the chosen movie",
			},
			"reason": {
				Type:        "string",
				Description: "two to four sentences tying the answers to the chosen movie",
			},
			"confidence": {
				Type:        "number",
				Minimum:     &minConfidence,
				Maximum:     &maxConfidence,
				Description: "confidence in the pick, 0 to 1",
			},
		},
		Required: []string{"movie_id", "title", "reason", "confidence"},
		// false schema: no other properties allowed
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

func loadSchema() {
	s := VerdictSchema()

	schemaResolved, schemaErr = s.Resolve(nil)
	if schemaErr != nil {
		schemaErr = fmt.Errorf("resolve verdict schema: %w", schemaErr)
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		schemaErr = fmt.Errorf("encode verdict schema: %w", err)
		return
	}
	if err := json.Unmarshal(data, &schemaDoc); err != nil {
		schemaErr = fmt.Errorf("decode verdict schema: %w", err)
		return
	}
	// Strict structured output requires the literal boolean.
	schemaDoc["additionalProperties"] = false
}

// schemaDocument returns the request form of the verdict schema.
func schemaDocument() (map[string]interface{}, error) {
	schemaOnce.Do(loadSchema)
	return schemaDoc, schemaErr
}

// validateVerdict checks a decoded JSON object against the verdict schema.
func validateVerdict(instance map[string]interface{}) error {
	schemaOnce.Do(loadSchema)
	if schemaErr != nil {
		return schemaErr
	}
	return schemaResolved.Validate(instance)
}
