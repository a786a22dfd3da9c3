// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package arbiter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/models"
	"github.com/tomtom215/cinequiz/internal/quiz"
)

func testCandidates() []models.Movie {
	return []models.Movie{
		{ID: 101, Title: "First", Overview: "one", VoteAverage: 7.5, VoteCount: 900, ReleaseDate: "2019-05-01"},
		{ID: 202, Title: "Second", Overview: "two", VoteAverage: 8, VoteCount: 1200, ReleaseDate: "2021-03-12"},
	}
}

func messageResponse(text string) string {
	data, _ := json.Marshal(map[string]interface{}{
		"id": "resp_1",
		"output": []interface{}{
			map[string]interface{}{
				"type": "message",
				"content": []interface{}{
					map[string]interface{}{"type": "output_text", "text": text},
				},
			},
		},
	})
	return string(data)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	return New(cfg), &hits
}

func TestPick_SendsStrictSchemaRequest(t *testing.T) {
	t.Parallel()

	var (
		gotPath, gotAuth string
		gotBody          map[string]interface{}
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = io.WriteString(w, messageResponse(`{"movie_id":202,"title":"Second","reason":"Good fit.","confidence":0.7}`))
	})

	v, err := client.Pick(context.Background(), PickRequest{
		APIKey:     " sk-test ",
		Answers:    []string{"answer one", "answer two"},
		Genre:      quiz.GenreDrama,
		Candidates: testCandidates(),
	})
	if err != nil {
		t.Fatalf("Pick() error = %v", err)
	}
	if v.MovieID != 202 || v.Title != "Second" || v.Confidence != 0.7 {
		t.Errorf("verdict = %+v", v)
	}

	if gotPath != "/responses" {
		t.Errorf("path = %q, want /responses", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != "gpt-5-mini" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["temperature"] != 0.4 {
		t.Errorf("temperature = %v", gotBody["temperature"])
	}
	if gotBody["max_output_tokens"] != float64(400) {
		t.Errorf("max_output_tokens = %v", gotBody["max_output_tokens"])
	}
	format, _ := gotBody["text"].(map[string]interface{})["format"].(map[string]interface{})
	if format["type"] != "json_schema" || format["strict"] != true {
		t.Errorf("format = %v", format)
	}
	schema, _ := format["schema"].(map[string]interface{})
	if schema["additionalProperties"] != false {
		t.Errorf("schema.additionalProperties = %v", schema["additionalProperties"])
	}
	input, _ := gotBody["input"].([]interface{})
	if len(input) != 1 {
		t.Fatalf("input = %v", gotBody["input"])
	}
	content, _ := input[0].(map[string]interface{})["content"].(string)
	for _, want := range []string{"answer one", "id=101", "id=202", "드라마 (drama)"} {
		if !strings.Contains(content, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestPick_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
		wantParse  bool
	}{
		{name: "unauthorized", status: 401, body: `{"error":{}}`, wantStatus: 401, wantMsg: "authentication failed"},
		{name: "forbidden", status: 403, body: `{}`, wantStatus: 403, wantMsg: "authentication failed"},
		{name: "rate limited", status: 429, body: `{}`, wantStatus: 429, wantMsg: "too many requests"},
		{name: "server error", status: 500, body: strings.Repeat("e", 600), wantStatus: 500, wantMsg: strings.Repeat("e", 400)},
		{name: "bad request", status: 400, body: `{"error":{"message":"bad schema"}}`, wantStatus: 400, wantMsg: "bad schema"},
		{name: "malformed body", status: 200, body: `{"output": [`, wantParse: true},
		{name: "no text", status: 200, body: `{"output": []}`, wantParse: true},
		{name: "unparseable text", status: 200, body: messageResponse("no json here"), wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.Pick(context.Background(), PickRequest{APIKey: "k", Candidates: testCandidates()})
			if atomic.LoadInt32(hits) != 1 {
				t.Errorf("server hits = %d, want 1 (no retries)", atomic.LoadInt32(hits))
			}
			if tt.wantParse {
				var parseErr *apperrors.ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("error = %v, want ParseError", err)
				}
				return
			}
			var hard *apperrors.HardAPIError
			if !errors.As(err, &hard) {
				t.Fatalf("error = %v, want HardAPIError", err)
			}
			if hard.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", hard.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(hard.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want to contain %q", hard.Message, tt.wantMsg)
			}
			if tt.status == 500 && strings.Contains(hard.Message, strings.Repeat("e", 401)) {
				t.Error("error excerpt not truncated")
			}
		})
	}
}

func TestPick_RejectedKeyLogsMaskedKey(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	var buf bytes.Buffer
	ctx := logging.ContextWithLogger(context.Background(), zerolog.New(&buf))
	const key = "sk-proj-abcdefghijklmnop1234"
	if _, err := client.Pick(ctx, PickRequest{APIKey: key, Candidates: testCandidates()}); err == nil {
		t.Fatal("expected error")
	}

	out := buf.String()
	for _, want := range []string{"Language model rejected credential", `"credential":"****1234"`, `"status":401`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s: %s", want, out)
		}
	}
	if strings.Contains(out, key) {
		t.Errorf("log leaks API key: %s", out)
	}
}

func TestPick_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name  string
		req   PickRequest
		field string
	}{
		{name: "missing key", req: PickRequest{APIKey: "  ", Candidates: testCandidates()}, field: "openai_api_key"},
		{name: "disallowed model", req: PickRequest{APIKey: "k", Model: "gpt-unknown", Candidates: testCandidates()}, field: "arbiter.model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Pick(context.Background(), tt.req)
			var cfgErr *apperrors.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigurationError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("server hits = %d, want 0", atomic.LoadInt32(hits))
	}
}

func TestResolveModel(t *testing.T) {
	t.Parallel()

	c := New(DefaultConfig())
	tests := []struct {
		requested string
		want      string
		wantErr   bool
	}{
		{requested: "", want: "gpt-5-mini"},
		{requested: "gpt-4o-mini", want: "gpt-4o-mini"},
		{requested: " gpt-4.1-mini ", want: "gpt-4.1-mini"},
		{requested: "o3", wantErr: true},
	}
	for _, tt := range tests {
		got, err := c.ResolveModel(tt.requested)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveModel(%q) error = %v, wantErr %v", tt.requested, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveModel(%q) = %q, want %q", tt.requested, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	p := BuildPrompt([]string{"a1", "a2"}, quiz.GenreSciFi, testCandidates())
	for _, want := range []string{
		"- a1\n- a2\n",
		"SF (scifi)",
		"- id=101 | title=First | vote=7.5 | votes=900 | release=2019-05-01\n  overview=one",
		"후보 영화 2편",
		"JSON",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q\n%s", want, p)
		}
	}
}
