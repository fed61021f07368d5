// internal/explain/tracker.go
//
// At most one explanation in flight per session, keyed by round id.
// Results for a round the player has already left are dropped.

package explain

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
)

// Explanation is what a presentation shows for the current round.
type Explanation struct {
	RoundID string `json:"roundId,omitempty"`
	Text    string `json:"text"`
	Loading bool   `json:"loading"`
}

// Tracker runs at most one explanation request at a time, keyed by round id.
// Starting a new request or invalidating cancels the previous one, and a
// result whose round is no longer current is dropped.
type Tracker struct {
	provider Provider

	mu     sync.Mutex
	round  string
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTracker wraps p.
func NewTracker(p Provider) *Tracker {
	return &Tracker{provider: p}
}

// Request starts fetching an explanation for item on behalf of roundID.
// deliver runs on the request goroutine. It can still race a concurrent
// Invalidate, so receivers should compare RoundID against their own round.
func (t *Tracker) Request(roundID string, item catalog.Item, deliver func(Explanation)) {
	ctx, cancel := context.WithCancel(context.Background())

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.round, t.cancel = roundID, cancel
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer cancel()

		text := t.provider.Explain(ctx, item)

		t.mu.Lock()
		current := t.round == roundID && ctx.Err() == nil
		if current {
			t.round, t.cancel = "", nil
		}
		t.mu.Unlock()

		if !current {
			log.Debug().Str("round", roundID).Msg("dropping stale explanation")
			return
		}
		deliver(Explanation{RoundID: roundID, Text: text})
	}()
}

// Invalidate cancels any pending request.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.round, t.cancel = "", nil
}

// Pending returns the round id of the in-flight request, or "".
func (t *Tracker) Pending() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round
}

// Wait blocks until every started request goroutine has returned.
func (t *Tracker) Wait() { t.wg.Wait() }
