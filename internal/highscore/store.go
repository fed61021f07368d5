// internal/highscore/store.go
//
// High-score persistence.
// A single integer lives under a fixed key. Read defaults to 0 when nothing
// has been written yet. Implementations:
//   - memory: process-local (tests, throwaway runs).
//   - sqlite: kv table managed by internal/database migrations.
//   - redis:  GET/SET on the key, WATCH/MULTI for Raise.
//
// Several sessions share the key, so game over goes through Raise, which
// keeps the larger value atomically and reports what was there before.

package highscore

import (
	"context"
	"sync"
)

// Key is the storage key for the high score.
const Key = "materialMasterHighScore"

// Store reads and writes the high score.
type Store interface {
	Read(ctx context.Context) (int, error)
	Write(ctx context.Context, score int) error

	// Raise stores max(stored, score) and returns the previously stored value.
	Raise(ctx context.Context, score int) (int, error)
}

// Best returns the value that should be written at game over.
func Best(final, previous int) int {
	if final > previous {
		return final
	}
	return previous
}

// memory is an in-memory Store.
type memory struct {
	mu    sync.RWMutex
	score int
}

// NewMemoryStore returns a Store that forgets everything on restart.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Read(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.score, nil
}

func (m *memory) Write(ctx context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}

func (m *memory) Raise(ctx context.Context, score int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.score
	m.score = Best(score, prev)
	return prev, nil
}
