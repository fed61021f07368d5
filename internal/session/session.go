// internal/session/session.go
//
// Player session: the explicit context object every presentation talks to.
// Responsibilities:
//   - Hold the player name, the high score and the current Screen.
//   - Forward guesses to the round engine and play the matching sound cues.
//   - Ask the explanation tracker for help on failed rounds and drop results
//     that arrive after the round moved on.
//   - Raise the shared high score to max(final, stored) at game over.
//   - Publish snapshots to subscribers (websocket, terminal client).
//
// Transitions:
//   LoggedOut --Login--> AtMenu --Start--> InRound --Advance(game over)--> Ended
//   Ended --Start--> InRound,  AtMenu/Ended --Logout--> LoggedOut
//
// All state is guarded by mu. The explanation callback arrives on a tracker
// goroutine and takes the same lock.

package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/explain"
	"github.com/kannnkannn-debug/material-hero/internal/game"
	"github.com/kannnkannn-debug/material-hero/internal/highscore"
	"github.com/kannnkannn-debug/material-hero/internal/metrics"
	"github.com/kannnkannn-debug/material-hero/internal/sound"
)

var (
	ErrEmptyName   = errors.New("empty name")
	ErrWrongScreen = errors.New("action not available on this screen")
)

// Deps are the collaborators a Session needs.
type Deps struct {
	Catalog     *catalog.Catalog
	Scores      highscore.Store
	Explainer   explain.Provider
	Sound       sound.Player  // optional
	GameOptions []game.Option // optional, e.g. a seeded rand for tests
}

// EventKind tags an Event.
type EventKind string

const (
	EventState       EventKind = "state"
	EventExplanation EventKind = "explanation"
)

// Event is pushed to subscribers after every change.
type Event struct {
	Kind     EventKind `json:"type"`
	Snapshot Snapshot  `json:"snapshot"`
}

// Session is one player's game context.
type Session struct {
	ID string

	deps    Deps
	tracker *explain.Tracker

	mu          sync.Mutex
	player      string
	highScore   int
	screen      Screen
	explanation explain.Explanation

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// New creates a logged-out session and loads the stored high score.
// A failed read is logged and treated as 0.
func New(ctx context.Context, deps Deps) *Session {
	if deps.Sound == nil {
		deps.Sound = sound.Mute{}
	}
	if deps.Scores == nil {
		deps.Scores = highscore.NewMemoryStore()
	}
	if deps.Explainer == nil {
		deps.Explainer = explain.New(nil, "", 0)
	}
	s := &Session{
		ID:      uuid.NewString(),
		deps:    deps,
		tracker: explain.NewTracker(deps.Explainer),
		screen:  LoggedOut{},
		subs:    make(map[int]chan Event),
	}
	hs, err := deps.Scores.Read(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("read high score; starting from 0")
		hs = 0
	}
	s.highScore = hs
	return s
}

// Login sets the player name and moves to the start screen.
func (s *Session) Login(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	if _, ok := s.screen.(LoggedOut); !ok {
		s.mu.Unlock()
		return ErrWrongScreen
	}
	s.player = name
	s.screen = AtMenu{}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.deps.Sound.Play(sound.CueCorrect)
	log.Info().Str("session", s.ID).Str("player", name).Msg("player logged in")
	s.publish(Event{Kind: EventState, Snapshot: snap})
	return nil
}

// Logout returns to the login screen.
func (s *Session) Logout() error {
	s.mu.Lock()
	switch s.screen.(type) {
	case AtMenu, Ended:
	default:
		s.mu.Unlock()
		return ErrWrongScreen
	}
	s.player = ""
	s.screen = LoggedOut{}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(Event{Kind: EventState, Snapshot: snap})
	return nil
}

// Start begins a fresh game. Also used for "play again".
func (s *Session) Start() error {
	s.mu.Lock()
	switch s.screen.(type) {
	case AtMenu, Ended:
	default:
		s.mu.Unlock()
		return ErrWrongScreen
	}
	g := game.New(s.deps.Catalog, s.deps.GameOptions...)
	s.tracker.Invalidate()
	s.explanation = explain.Explanation{}
	s.screen = InRound{Game: g}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	metrics.GamesStarted.Inc()
	s.deps.Sound.Play(sound.CueClick)
	log.Info().Str("session", s.ID).Str("game", g.ID).Msg("game started")
	s.publish(Event{Kind: EventState, Snapshot: snap})
	return nil
}

// GuessMaterial answers step 1 of the current round.
func (s *Session) GuessMaterial(material string) (game.Result, error) {
	return s.guess(func(g *game.Game) (game.Result, error) {
		return g.GuessMaterial(material)
	})
}

// GuessGroup answers step 2 of the current round.
func (s *Session) GuessGroup(group catalog.Group) (game.Result, error) {
	return s.guess(func(g *game.Game) (game.Result, error) {
		return g.GuessGroup(group)
	})
}

func (s *Session) guess(apply func(*game.Game) (game.Result, error)) (game.Result, error) {
	s.mu.Lock()
	ir, ok := s.screen.(InRound)
	if !ok {
		s.mu.Unlock()
		return game.Result{}, ErrWrongScreen
	}
	res, err := apply(ir.Game)
	if err != nil {
		s.mu.Unlock()
		return res, err
	}
	switch res.Outcome {
	case game.OutcomeSuccess:
		metrics.RoundsResolved.WithLabelValues(string(res.Outcome)).Inc()
		s.explanation = explain.Explanation{}
	case game.OutcomeFailure:
		metrics.RoundsResolved.WithLabelValues(string(res.Outcome)).Inc()
	}
	if res.Explain {
		s.explanation = explain.Explanation{RoundID: res.RoundID, Loading: true}
		s.tracker.Request(res.RoundID, res.Item, s.deliverExplanation)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.announce(res, snap)
	return res, nil
}

// Advance acknowledges the resolved round. When the game is over the high
// score is raised and the session moves to Ended.
func (s *Session) Advance(ctx context.Context) (game.Result, error) {
	s.mu.Lock()
	ir, ok := s.screen.(InRound)
	if !ok {
		s.mu.Unlock()
		return game.Result{}, ErrWrongScreen
	}
	g := ir.Game
	res, err := g.Advance()
	if err != nil {
		s.mu.Unlock()
		return res, err
	}
	s.tracker.Invalidate()
	s.explanation = explain.Explanation{}
	if !res.Finished {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.announce(res, snap)
		return res, nil
	}
	final, answered, cached := g.Score, g.ItemsAnswered, s.highScore
	s.mu.Unlock()

	// The store is shared with other sessions; write without holding mu.
	// The finished game rejects every action, so the screen cannot move meanwhile.
	prev, err := s.deps.Scores.Raise(ctx, final)
	if err != nil {
		log.Warn().Err(err).Int("score", final).Msg("raise high score")
		prev = cached
	}
	ended := Ended{
		FinalScore:    final,
		ItemsAnswered: answered,
		HighScore:     highscore.Best(final, prev),
		NewRecord:     final >= prev && final > 0,
	}

	s.mu.Lock()
	s.highScore = ended.HighScore
	s.screen = ended
	snap := s.snapshotLocked()
	s.mu.Unlock()

	metrics.GamesFinished.Inc()
	log.Info().Str("session", s.ID).Str("game", g.ID).Int("score", final).Bool("record", ended.NewRecord).Msg("game over")
	if ended.NewRecord {
		res.Cue = sound.CueCorrect
	}
	s.announce(res, snap)
	return res, nil
}

// announce plays the cues for an action and publishes the new state.
func (s *Session) announce(res game.Result, snap Snapshot) {
	s.deps.Sound.Play(sound.CueClick)
	s.deps.Sound.Play(res.Cue)
	s.publish(Event{Kind: EventState, Snapshot: snap})
}

// deliverExplanation is the tracker callback.
func (s *Session) deliverExplanation(e explain.Explanation) {
	s.mu.Lock()
	ir, ok := s.screen.(InRound)
	if !ok || ir.Game.RoundID != e.RoundID || s.explanation.RoundID != e.RoundID {
		s.mu.Unlock()
		return
	}
	s.explanation = e
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(Event{Kind: EventExplanation, Snapshot: snap})
}

// Snapshot returns an immutable view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Player returns the logged-in name, or "".
func (s *Session) Player() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

// Subscribe registers for events. The returned func unsubscribes.
// Slow subscribers miss events rather than block the session.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
			s.subMu.Unlock()
		})
	}
}

func (s *Session) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close cancels pending work and closes every subscription.
func (s *Session) Close() {
	s.tracker.Invalidate()
	s.subMu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.subMu.Unlock()
}

// Wait blocks until in-flight explanation requests have finished.
func (s *Session) Wait() { s.tracker.Wait() }
