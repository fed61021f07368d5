// internal/store/memory.go
//
// In-memory registry of live player sessions for the HTTP API.
// Each browser player gets one private *session.Session, keyed by its ID and
// referenced from the player token. State is lost when the process restarts,
// which only costs players their in-progress round; the high score lives in
// the highscore backend.
//
// Every Save/Get marks the session as seen. EvictIdle drops sessions nobody
// has touched for a while, so clients that lose their cookie do not leak.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kannnkannn-debug/material-hero/internal/session"
)

var ErrNotFound = errors.New("session not found")

// Store keeps live sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete removes and closes a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// EvictIdle removes and closes sessions unseen for longer than maxIdle.
	EvictIdle(maxIdle time.Duration) int

	// Len reports how many sessions are live.
	Len() int
}

type entry struct {
	sess     *session.Session
	lastSeen time.Time
}

type memory struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[s.ID]; ok && old.sess != s {
		old.sess.Close()
	}
	m.sessions[s.ID] = &entry{sess: s, lastSeen: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		e.lastSeen = m.now()
		return e.sess, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		e.sess.Close()
	}
	return nil
}

func (m *memory) EvictIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	var idle []*session.Session
	m.mu.Lock()
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

func (m *memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
