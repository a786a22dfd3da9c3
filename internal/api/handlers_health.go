// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/tomtom215/cinequiz/internal/logging"
	"github.com/tomtom215/cinequiz/internal/models"
)

const (
	readinessProbeKey   = "health:ready:probe"
	readinessProbeTTL   = 10 * time.Second
	readinessProbeValue = "ok"
)

// HealthLive handles liveness probe requests.
// Always 200 while the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, start)
}

// CheckStatus is the result of one readiness check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReadinessResponse is the body of GET /api/v1/health/ready.
type ReadinessResponse struct {
	Ready    bool                   `json:"ready"`
	Uptime   float64                `json:"uptime"`
	Checks   map[string]CheckStatus `json:"checks"`
	Breakers map[string]string      `json:"breakers,omitempty"`
	Stats    interface{}            `json:"stats,omitempty"`
}

// HealthReady handles readiness probe requests.
// Returns 503 when the response cache cannot store and read back a value.
// Circuit breaker states are reported but do not affect readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := ReadinessResponse{
		Ready:  true,
		Uptime: time.Since(h.startTime).Seconds(),
		Checks: map[string]CheckStatus{},
	}

	if h.cache != nil {
		check := h.checkCache()
		resp.Checks["cache"] = check
		if check.Status != "ok" {
			resp.Ready = false
		}
	}

	if len(h.breakers) > 0 {
		resp.Breakers = make(map[string]string, len(h.breakers))
		for _, b := range h.breakers {
			resp.Breakers[b.Name()] = b.State()
		}
	}

	if h.engine != nil {
		resp.Stats = h.engine.Stats()
	}

	if !resp.Ready {
		logging.Ctx(r.Context()).Warn().Interface("checks", resp.Checks).Msg("Readiness check failed")
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data:   resp,
			Metadata: models.Metadata{
				Timestamp:   time.Now(),
				QueryTimeMS: time.Since(start).Milliseconds(),
			},
			Error: &models.APIError{
				Code:    ErrCodeNotReady,
				Message: "Service is not ready",
			},
		})
		return
	}

	respondSuccess(w, resp, start)
}

// checkCache round-trips a probe value through the cache backend.
func (h *Handler) checkCache() CheckStatus {
	h.cache.SetWithTTL(readinessProbeKey, []byte(readinessProbeValue), readinessProbeTTL)
	got, ok := h.cache.Get(readinessProbeKey)
	if !ok || !bytes.Equal(got, []byte(readinessProbeValue)) {
		return CheckStatus{Status: "error", Message: "probe value was not read back"}
	}
	return CheckStatus{Status: "ok"}
}
