// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/metrics"
)

type contextKey string

const stateContextKey contextKey = "study_session"

// Config holds the session cookie settings.
type Config struct {
	// CookieName is the name of the signed session cookie.
	CookieName string

	// SecretKey signs the cookie. Required.
	SecretKey string

	// MaxAge is the cookie lifetime. Zero makes it a browser-session cookie.
	MaxAge time.Duration

	CookiePath     string
	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite http.SameSite
}

// DefaultConfig returns sensible defaults. SecretKey must still be set.
func DefaultConfig() *Config {
	return &Config{
		CookieName:     "recstudy_session",
		MaxAge:         30 * 24 * time.Hour,
		CookiePath:     "/",
		CookieSecure:   true,
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// Manager assigns session ids through a signed cookie and loads the
// matching State for every request.
type Manager struct {
	store  Store
	config *Config
	codec  *securecookie.SecureCookie
	events *logging.StudyLogger

	// serializes order generation so concurrent first requests persist once
	orderMu sync.Mutex
}

// NewManager creates a session manager.
func NewManager(store Store, cfg *Config) (*Manager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("session secret key is required")
	}

	hashKey := sha256.Sum256([]byte(cfg.SecretKey))
	codec := securecookie.New(hashKey[:], nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cfg.MaxAge.Seconds()))

	return &Manager{
		store:  store,
		config: cfg,
		codec:  codec,
		events: logging.NewStudyLogger(),
	}, nil
}

// Middleware attaches the participant's State to the request context,
// creating a new session (and cookie) for first-time visitors.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state, err := m.load(w, r)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Session state unavailable")
			http.Error(w, "Session unavailable", http.StatusServiceUnavailable)
			return
		}

		ctx = context.WithValue(ctx, stateContextKey, state)
		ctx = logging.ContextWithSessionID(ctx, state.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) load(w http.ResponseWriter, r *http.Request) (*State, error) {
	ctx := r.Context()

	if id := m.sessionID(r); id != "" {
		state, err := m.store.Get(ctx, id)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, ErrStateNotFound) {
			return nil, err
		}

		// Signed id without stored state (e.g. a wiped store). Keeping the id
		// keeps the participant's ordering seed.
		state = newStateWithID(id)
		if err := m.store.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("save session state: %w", err)
		}
		return state, nil
	}

	state := NewState()
	if err := m.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save session state: %w", err)
	}
	if err := m.setCookie(w, state.ID); err != nil {
		return nil, err
	}

	metrics.SessionsCreated.Inc()
	m.events.LogSessionStarted(ctx, state.ID, r.RemoteAddr)
	return state, nil
}

// sessionID returns the verified session id from the cookie, or "".
func (m *Manager) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	var id string
	if err := m.codec.Decode(m.config.CookieName, cookie.Value, &id); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid session cookie")
		return ""
	}
	return id
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) error {
	encoded, err := m.codec.Encode(m.config.CookieName, id)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    encoded,
		Path:     m.config.CookiePath,
		MaxAge:   int(m.config.MaxAge.Seconds()),
		Secure:   m.config.CookieSecure,
		HttpOnly: m.config.CookieHTTPOnly,
		SameSite: m.config.CookieSameSite,
	})
	return nil
}

// EnsureOrder returns the session's predetermined article ordering,
// generating it from ids and persisting it on first use. Once persisted the
// ordering is never regenerated.
func (m *Manager) EnsureOrder(ctx context.Context, state *State, ids []string) ([]string, error) {
	if state.HasOrder() {
		return state.PredeterminedArticles, nil
	}

	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	stored, err := m.store.Get(ctx, state.ID)
	switch {
	case err == nil && stored.HasOrder():
		state.PredeterminedArticles = stored.PredeterminedArticles
		return state.PredeterminedArticles, nil
	case err != nil && !errors.Is(err, ErrStateNotFound):
		return nil, fmt.Errorf("reload session state: %w", err)
	}

	state.PredeterminedArticles = PredeterminedOrder(state.ID, ids)
	if err := m.store.Save(ctx, state); err != nil {
		state.PredeterminedArticles = nil
		return nil, fmt.Errorf("persist article order: %w", err)
	}

	logging.Ctx(ctx).Info().Int("articles", len(ids)).Msg("Generated predetermined article order")
	return state.PredeterminedArticles, nil
}

// FromContext returns the State attached by Middleware, or nil.
func FromContext(ctx context.Context) *State {
	state, _ := ctx.Value(stateContextKey).(*State)
	return state
}

// WithState returns a context carrying state. Intended for tests and
// callers that load state outside Middleware.
func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateContextKey, state)
}
