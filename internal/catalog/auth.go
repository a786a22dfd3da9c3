// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package catalog

import (
	"net/http"
	"strings"

	"github.com/tomtom215/cinequiz/internal/apperrors"
	"github.com/tomtom215/cinequiz/internal/logging"
)

// AuthMode identifies how a request is authenticated.
type AuthMode string

// Auth modes. The values double as the cache-key fingerprint.
const (
	AuthBearer AuthMode = "bearer"
	AuthAPIKey AuthMode = "apikey"
)

// Auth holds a caller-supplied catalog credential for the duration of one
// submission. The zero value is invalid.
type Auth struct {
	mode   AuthMode
	secret string
}

// NewAuth selects the bearer token when present, otherwise the API key.
// It returns a ConfigurationError when both are blank.
func NewAuth(apiKey, bearerToken string) (Auth, error) {
	if token := strings.TrimSpace(bearerToken); token != "" {
		return Auth{mode: AuthBearer, secret: token}, nil
	}
	if key := strings.TrimSpace(apiKey); key != "" {
		return Auth{mode: AuthAPIKey, secret: key}, nil
	}
	return Auth{}, apperrors.NewConfigurationError("tmdb_credentials",
		"a TMDB read access token (bearer) or API key is required")
}

// Valid reports whether a credential is present.
func (a Auth) Valid() bool {
	return a.secret != ""
}

// Mode returns the selected auth mode.
func (a Auth) Mode() AuthMode {
	return a.mode
}

// Fingerprint returns the non-secret tag used in cache keys.
func (a Auth) Fingerprint() string {
	return string(a.mode)
}

// String never includes the credential.
func (a Auth) String() string {
	if !a.Valid() {
		return "catalog auth (none)"
	}
	return "catalog auth (" + string(a.mode) + ")"
}

// masked returns the credential with all but its last four characters hidden.
func (a Auth) masked() string {
	return logging.MaskSecret(a.secret)
}

// apply attaches the credential to req.
func (a Auth) apply(req *http.Request) {
	switch a.mode {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.secret)
	case AuthAPIKey:
		q := req.URL.Query()
		q.Set("api_key", a.secret)
		req.URL.RawQuery = q.Encode()
	}
}
