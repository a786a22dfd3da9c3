// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/arbiter"
	"github.com/tomtom215/cinequiz/internal/breaker"
	"github.com/tomtom215/cinequiz/internal/cache"
	"github.com/tomtom215/cinequiz/internal/catalog"
	"github.com/tomtom215/cinequiz/internal/recommend"
)

// fakeTMDB serves discover and detail for two action movies and rejects
// any other credential.
func fakeTMDB(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.Header.Get("Authorization") != "Bearer tmdb-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"status_message":"Invalid API key"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/discover/movie":
			if r.URL.Query().Get("with_genres") != "28" {
				t.Errorf("with_genres = %q, want 28", r.URL.Query().Get("with_genres"))
			}
			_, _ = io.WriteString(w, `{"page":1,"results":[
				{"id":101,"title":"Low","vote_average":6.1,"vote_count":900,"popularity":4,"poster_path":"/low.jpg"},
				{"id":102,"title":"High","vote_average":8.4,"vote_count":5000,"popularity":81,"poster_path":"/high.jpg"}
			]}`)
		case "/movie/101":
			_, _ = io.WriteString(w, `{"id":101,"title":"Low","overview":"low overview","vote_average":6.1,"vote_count":900,"poster_path":"/low.jpg"}`)
		case "/movie/102":
			_, _ = io.WriteString(w, `{"id":102,"title":"High","overview":"high overview","vote_average":8.4,"vote_count":5000,
				"poster_path":"/high.jpg","videos":{"results":[{"site":"YouTube","type":"Trailer","key":"hightrailer"}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// fakeOpenAI always picks movie 102.
func fakeOpenAI(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/responses" || r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		verdict := `{"movie_id":102,"title":"High","reason":"**Fast** and sharp.","confidence":0.8}`
		data, _ := json.Marshal(map[string]interface{}{
			"output": []interface{}{
				map[string]interface{}{
					"type":    "message",
					"content": []interface{}{map[string]interface{}{"type": "output_text", "text": verdict}},
				},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newPipelineServer(t *testing.T, tmdbHits, openaiHits *int32) http.Handler {
	t.Helper()

	catCfg := catalog.DefaultConfig()
	catCfg.BaseURL = fakeTMDB(t, tmdbHits).URL
	catCfg.RetryBaseDelay = time.Millisecond
	catCfg.RetryMaxDelay = 2 * time.Millisecond
	catCfg.RequestsPerSecond = 0

	arbCfg := arbiter.DefaultConfig()
	arbCfg.BaseURL = fakeOpenAI(t, openaiHits).URL

	responses := cache.New(time.Minute)
	t.Cleanup(func() { _ = responses.Close() })

	catBreaker := breaker.New("catalog", breaker.DefaultSettings())
	arbBreaker := breaker.New("arbiter", breaker.DefaultSettings())

	cat := catalog.New(catCfg, catalog.WithCache(responses), catalog.WithBreaker(catBreaker))
	arb := arbiter.New(arbCfg, arbiter.WithBreaker(arbBreaker))

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), cat, arb, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	h := NewHandler(engine, HandlerConfig{Languages: testLanguages, AllowedModels: arbCfg.AllowedModels},
		WithCache(responses), WithBreakers(catBreaker, arbBreaker))
	return NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi()
}

func TestPipeline_EndToEnd(t *testing.T) {
	var tmdbHits, openaiHits int32
	srv := newPipelineServer(t, &tmdbHits, &openaiHits)

	body := `{
		"answers": [1,1,1,1,1],
		"filters": {"page_count": 1},
		"credentials": {"tmdb_bearer_token": "tmdb-token", "openai_api_key": "sk-test"}
	}`
	rec, env := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp RecommendResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(resp.Shortlist) != 2 {
		t.Fatalf("Shortlist = %+v, want 2 movies", resp.Shortlist)
	}
	if resp.Shortlist[0].ID != 102 {
		t.Errorf("top movie = %d, want 102", resp.Shortlist[0].ID)
	}
	if resp.Shortlist[0].Overview != "high overview" {
		t.Errorf("detail not merged: %+v", resp.Shortlist[0])
	}
	if !strings.Contains(resp.Shortlist[0].TrailerURL, "hightrailer") {
		t.Errorf("TrailerURL = %q", resp.Shortlist[0].TrailerURL)
	}
	if !strings.HasSuffix(resp.Shortlist[0].PosterURL, "/high.jpg") {
		t.Errorf("PosterURL = %q", resp.Shortlist[0].PosterURL)
	}
	if resp.Verdict == nil || resp.Verdict.MovieID != 102 || resp.Verdict.Confidence != 0.8 {
		t.Errorf("Verdict = %+v", resp.Verdict)
	}
	if strings.Contains(rec.Body.String(), "tmdb-token") || strings.Contains(rec.Body.String(), "sk-test") {
		t.Error("response echoes credentials")
	}

	// A second identical submission is served from the response cache.
	before := atomic.LoadInt32(&tmdbHits)
	rec, _ = doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("second status = %d", rec.Code)
	}
	if got := atomic.LoadInt32(&tmdbHits); got != before {
		t.Errorf("catalog hits grew from %d to %d on a cached submission", before, got)
	}
	if got := atomic.LoadInt32(&openaiHits); got != 2 {
		t.Errorf("arbiter hits = %d, want 2", got)
	}
}

func TestPipeline_RejectedCredential(t *testing.T) {
	var tmdbHits, openaiHits int32
	srv := newPipelineServer(t, &tmdbHits, &openaiHits)

	body := `{"answers":[1,1,1,1,1],"credentials":{"tmdb_bearer_token":"wrong-token"},"arbiter":{"enabled":false}}`
	rec, env := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	if env.Error == nil || env.Error.Code != apperrors.CodeUpstreamAuth {
		t.Errorf("error = %+v, want %s", env.Error, apperrors.CodeUpstreamAuth)
	}
	if strings.Contains(rec.Body.String(), "wrong-token") {
		t.Error("error body echoes the credential")
	}
	if got := atomic.LoadInt32(&tmdbHits); got != 1 {
		t.Errorf("catalog hits = %d, want 1 (auth failures are not retried)", got)
	}
	if got := atomic.LoadInt32(&openaiHits); got != 0 {
		t.Errorf("arbiter hits = %d, want 0", got)
	}
}

func TestPipeline_MissingCredential(t *testing.T) {
	var tmdbHits, openaiHits int32
	srv := newPipelineServer(t, &tmdbHits, &openaiHits)

	rec, env := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", `{"answers":[1,1,1,1,1]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != apperrors.CodeConfiguration {
		t.Errorf("error = %+v, want %s", env.Error, apperrors.CodeConfiguration)
	}
	if atomic.LoadInt32(&tmdbHits) != 0 {
		t.Error("catalog was called without a credential")
	}
}
