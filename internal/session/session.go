// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrStateNotFound is returned when no state is stored for a session id.
var ErrStateNotFound = errors.New("session state not found")

// State is the server-side state of one participant session.
type State struct {
	// ID is the session_id: generated once and stable for the browser session.
	ID string `json:"session_id"`

	// PredeterminedArticles is the participant's fixed article ordering.
	// Empty until first needed, never changed afterwards.
	PredeterminedArticles []string `json:"predetermined_articles,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewState creates a state with a fresh random session id.
func NewState() *State {
	return newStateWithID(uuid.New().String())
}

func newStateWithID(id string) *State {
	return &State{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
}

// HasOrder reports whether the predetermined ordering has been generated.
func (s *State) HasOrder() bool {
	return len(s.PredeterminedArticles) > 0
}

func (s *State) clone() *State {
	c := *s
	if s.PredeterminedArticles != nil {
		c.PredeterminedArticles = make([]string, len(s.PredeterminedArticles))
		copy(c.PredeterminedArticles, s.PredeterminedArticles)
	}
	return &c
}

// Store persists session state.
type Store interface {
	// Get returns the state for id, or ErrStateNotFound.
	Get(ctx context.Context, id string) (*State, error)

	// Save creates or replaces the state.
	Save(ctx context.Context, state *State) error

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// MemoryStore is an in-memory Store for tests and development.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*State)}
}

// Get returns a copy of the stored state.
func (s *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[id]
	if !ok {
		return nil, ErrStateNotFound
	}
	return st.clone(), nil
}

// Save stores a copy of state.
func (s *MemoryStore) Save(_ context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.ID] = state.clone()
	return nil
}

// Count returns the number of stored sessions.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states), nil
}
