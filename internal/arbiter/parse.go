// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package arbiter

import (
	"math"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/models"
)

// responseBody is the subset of a Responses API reply the arbiter reads.
type responseBody struct {
	Output []outputItem `json:"output"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ExtractOutputText joins the text of every output_text part inside every
// message item with newlines.
func ExtractOutputText(resp *responseBody) string {
	if resp == nil {
		return ""
	}
	var chunks []string
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				chunks = append(chunks, part.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}

// ParseVerdict decodes model output into a verdict. When the whole text is
// not JSON, the span from the first '{' to the last '}' is tried.
func ParseVerdict(text string) (*models.Verdict, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &apperrors.ParseError{Service: serviceName, Message: "empty output text"}
	}

	raw := []byte(text)
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end <= start {
			return nil, &apperrors.ParseError{Service: serviceName, Message: "no JSON object in output", Cause: err}
		}
		raw = []byte(text[start : end+1])
		obj = nil
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, &apperrors.ParseError{Service: serviceName, Message: "invalid JSON in output", Cause: err}
		}
	}
	if obj == nil {
		return nil, &apperrors.ParseError{Service: serviceName, Message: "output is not a JSON object"}
	}

	if err := validateVerdict(obj); err != nil {
		return nil, &apperrors.ParseError{Service: serviceName, Message: "output does not match verdict schema", Cause: err}
	}

	return verdictFromObject(obj)
}

// verdictFromObject reads a schema-validated object. JSON numbers arrive as
// float64, so integral forms such as 1e3 are accepted for movie_id.
func verdictFromObject(obj map[string]interface{}) (*models.Verdict, error) {
	id, _ := obj["movie_id"].(float64)
	if id != math.Trunc(id) || id < math.MinInt32 || id > math.MaxInt32 {
		return nil, &apperrors.ParseError{Service: serviceName, Message: "movie_id is not a representable integer"}
	}
	title, _ := obj["title"].(string)
	reason, _ := obj["reason"].(string)
	confidence, _ := obj["confidence"].(float64)
	return &models.Verdict{
		MovieID:    int(id),
		Title:      title,
		Reason:     reason,
		Confidence: confidence,
	}, nil
}
