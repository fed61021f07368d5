// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - Step/Phase/Outcome: where a round currently is.
//   - Game: state for a single in-progress or finished game.
//   - Result: what a single action did, for the caller to render.

package game

import (
	"math/rand/v2"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/sound"
)

// Step is the guess a round is asking for.
//   1: which material is the item made of?
//   2: which group does that material belong to?
type Step int

const (
	StepMaterial Step = 1
	StepGroup    Step = 2
)

// Phase is the round-level state machine position.
type Phase string

const (
	PhaseMaterial Phase = "awaiting_material"
	PhaseGroup    Phase = "awaiting_group"
	PhaseResolved Phase = "resolved"
	PhaseOver     Phase = "over"
)

// Outcome of a resolved round.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Game holds the state of a single quiz game.
type Game struct {
	ID            string         // Unique game identifier (uuid).
	RoundID       string         // Changes every time a new round is entered.
	Round         int            // 1-based round counter.
	Current       *catalog.Item  // Item for the current round; nil once the game is over.
	Options       []string       // Material choices for step 1 (shuffled).
	Pool          []catalog.Item // Items not yet solved. Only shrinks.
	Step          Step           // Step the current round is on (or ended on).
	Phase         Phase          // Round state.
	Outcome       Outcome        // Set once Phase == PhaseResolved.
	Score         int            // +PointsPerItem per solved item.
	Lives         int            // Starts at MaxLives; -1 per failed round.
	ItemsAnswered int            // Items solved this game.
	Finished      bool           // True once lives hit 0 or the pool ran out.

	rng       *rand.Rand
	materials []string
}

// Result reports the effect of one action.
type Result struct {
	Correct  bool         `json:"correct"`
	Phase    Phase        `json:"phase"`
	Outcome  Outcome      `json:"outcome,omitempty"`
	Cue      sound.Cue    `json:"cue"`
	Explain  bool         `json:"explain"` // round just failed; an explanation for Item is due
	Item     catalog.Item `json:"-"`
	RoundID  string       `json:"roundId"`
	Finished bool         `json:"finished"`
}
