// Package session holds per-browser-session chat state. Transcripts live only
// in memory for the lifetime of the session; nothing is persisted across
// restarts.
package session

import (
	"sync"

	"github.com/google/uuid"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// Session is one chat session with its append-only transcript. Each session
// has a single logical writer (one browser connection), so the transcript
// itself needs no locking; the store guards only its map.
type Session struct {
	ID    string
	turns []models.ChatTurn
}

// Append adds one turn to the end of the transcript. Turns are never mutated
// or reordered after append.
func (s *Session) Append(speaker models.Speaker, text string) {
	s.turns = append(s.turns, models.ChatTurn{Speaker: speaker, Text: text})
}

// Turns returns the full transcript in append order
func (s *Session) Turns() []models.ChatTurn {
	out := make([]models.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns in the transcript
func (s *Session) Len() int {
	return len(s.turns)
}

// Store keeps active sessions keyed by ID
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session with a fresh ID
func (st *Store) Create() *Session {
	s := &Session{ID: uuid.NewString()}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get returns the session with the given ID
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, errors.NewNotFoundError("session not found")
	}
	return s, nil
}

// Delete ends a session and discards its transcript
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return errors.NewNotFoundError("session not found")
	}
	delete(st.sessions, id)
	return nil
}

// Count returns the number of active sessions
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
