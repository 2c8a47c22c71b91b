// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/feedback"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func preflight(handler http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/feedback", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestChiMiddleware_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		origins         []string
		origin          string
		wantAllowOrigin string
		wantCredentials string
	}{
		{"explicit origin", []string{"https://study.example.org"}, "https://study.example.org", "https://study.example.org", "true"},
		{"other origin", []string{"https://study.example.org"}, "https://evil.example.com", "", ""},
		{"wildcard", []string{"*"}, "https://anywhere.example.com", "*", ""},
		{"no origins configured", nil, "https://study.example.org", "", ""},
		{"empty origin list", []string{}, "https://study.example.org", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewChiMiddleware(ChiMiddlewareConfigFrom(config.SecurityConfig{CORSOrigins: tt.origins}))
			rec := preflight(mw.CORS()(okHandler()), tt.origin)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllowOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredentials {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.wantCredentials)
			}
		})
	}
}

func TestRouter_NoCORSHeadersByDefault(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, method := range []string{http.MethodGet, http.MethodOptions} {
		req := httptest.NewRequest(method, "/api/v1/health/live", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("%s Allow-Origin = %q, want none without configured origins", method, got)
		}
	}
}

func TestChiMiddleware_RateLimit(t *testing.T) {
	t.Parallel()

	p := newTestEnv(t, withRateLimit(2)).participant(t)

	for i := 0; i < 2; i++ {
		if rec := p.get("/api/v1/catalogue"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	rec := p.get("/api/v1/catalogue")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	if e := decodeEnvelope(t, rec, nil); e.Error == nil || e.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v, want %s", e.Error, ErrCodeTooManyRequests)
	}

	// Health probes have their own budget.
	if rec := p.get("/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d while the API budget is spent", rec.Code)
	}
}

func TestChiMiddleware_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	handler := mw.RateLimitCustom(RateLimitConfig{Requests: 1, Window: time.Minute})(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d with rate limiting disabled", i, rec.Code)
		}
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()

	handler := APISecurityHeaders()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalogue", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on a plain HTTP request")
	}

	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind a TLS proxy")
	}
}

func TestStoreFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("rating: %w", feedback.ErrInvalidKey), http.StatusBadRequest, ErrCodeValidation},
		{gobreaker.ErrOpenState, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{gobreaker.ErrTooManyRequests, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError, ErrCodeStore},
	}

	for _, tt := range tests {
		f := storeFailure(tt.err)
		if f.status != tt.wantStatus || f.code != tt.wantCode {
			t.Errorf("storeFailure(%v) = %d %s, want %d %s", tt.err, f.status, f.code, tt.wantStatus, tt.wantCode)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain":            "plain",
		"line\nbreak":      "line\\x0abreak",
		"tab\tand\rreturn": "tab\\x09and\\x0dreturn",
		"unicode æøå":      "unicode æøå",
		"del\x7f":          "del\\x7f",
	}
	for in, want := range tests {
		if got := sanitizeLogValue(in); got != want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", in, got, want)
		}
	}
}
