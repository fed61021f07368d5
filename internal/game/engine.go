// internal/game/engine.go
//
// Round engine for a single quiz game.
// Responsibilities:
//   - Create games with a full pool, zero score and MaxLives lives.
//   - Draw an item per round and build its three material options.
//   - Apply the two-step guess sequence: material, then group.
//   - Track score/lives and end the game when lives run out or the pool is empty.
//
// State per round:
//   awaiting_material --right--> awaiting_group --right--> resolved(success)
//          |                           |
//          +-----------wrong-----------+------------------> resolved(failure)
//   resolved --Advance--> next round | over
//
// Notes:
//   - Items come from the catalog package; materials for distractors are the
//     catalog's distinct materials.
//   - Randomness is injectable for tests; the default source is ChaCha8 seeded
//     from crypto/rand.
package game

import (
	crand "crypto/rand"
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/sound"
)

const (
	MaxLives      = 3
	PointsPerItem = 10
	OptionCount   = 3
)

var (
	ErrFinished         = errors.New("game finished")
	ErrWrongStep        = errors.New("guess does not match the current step")
	ErrRoundNotResolved = errors.New("round not resolved")
	ErrUnknownGroup     = errors.New("unknown group")
)

// Option configures a new Game.
type Option func(*Game)

// WithRand sets the random source used for draws and shuffles.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// New constructs a game over the whole catalog and enters the first round.
// An empty catalog yields a game that is already finished.
func New(cat *catalog.Catalog, opts ...Option) *Game {
	g := &Game{
		ID:        uuid.NewString(),
		Pool:      cat.Items(),
		Lives:     MaxLives,
		materials: cat.Materials(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = newRand()
	}
	g.enterRound()
	return g
}

// GuessMaterial applies a step-1 guess.
func (g *Game) GuessMaterial(material string) (Result, error) {
	if g.Finished {
		return g.result(false, sound.CueNone), ErrFinished
	}
	if g.Phase != PhaseMaterial {
		return g.result(false, sound.CueNone), ErrWrongStep
	}
	if material == g.Current.Material {
		g.Phase = PhaseGroup
		g.Step = StepGroup
		return g.result(true, sound.CueCorrect), nil
	}
	g.fail()
	res := g.result(false, sound.CueWrong)
	res.Explain = true
	return res, nil
}

// GuessGroup applies a step-2 guess.
func (g *Game) GuessGroup(group catalog.Group) (Result, error) {
	if g.Finished {
		return g.result(false, sound.CueNone), ErrFinished
	}
	if !group.Valid() {
		return g.result(false, sound.CueNone), ErrUnknownGroup
	}
	if g.Phase != PhaseGroup {
		return g.result(false, sound.CueNone), ErrWrongStep
	}
	if group == g.Current.Group {
		g.succeed()
		return g.result(true, sound.CueCorrect), nil
	}
	g.fail()
	res := g.result(false, sound.CueWrong)
	res.Explain = true
	return res, nil
}

// Advance acknowledges a resolved round and either starts the next one or
// ends the game.
func (g *Game) Advance() (Result, error) {
	if g.Finished {
		return g.result(false, sound.CueNone), ErrFinished
	}
	if g.Phase != PhaseResolved {
		return g.result(false, sound.CueNone), ErrRoundNotResolved
	}
	if g.Lives <= 0 {
		g.finish()
	} else {
		g.enterRound()
	}
	if g.Finished {
		return g.result(false, sound.CueGameOver), nil
	}
	return g.result(false, sound.CueClick), nil
}

// InPool reports whether the item with id is still unsolved.
func (g *Game) InPool(id int) bool {
	for _, it := range g.Pool {
		if it.ID == id {
			return true
		}
	}
	return false
}

// enterRound draws the next item, or ends the game when nothing is left.
func (g *Game) enterRound() {
	if len(g.Pool) == 0 {
		g.finish()
		return
	}
	it := g.Pool[g.rng.IntN(len(g.Pool))]
	g.Current = &it
	g.Options = g.materialOptions(it.Material)
	g.Step = StepMaterial
	g.Phase = PhaseMaterial
	g.Outcome = OutcomeNone
	g.Round++
	g.RoundID = uuid.NewString()
}

// materialOptions returns the correct material plus up to OptionCount-1
// distinct distractors, shuffled.
func (g *Game) materialOptions(correct string) []string {
	distractors := make([]string, 0, len(g.materials))
	for _, m := range g.materials {
		if m != correct {
			distractors = append(distractors, m)
		}
	}
	g.rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > OptionCount-1 {
		distractors = distractors[:OptionCount-1]
	}
	opts := append([]string{correct}, distractors...)
	g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

func (g *Game) succeed() {
	g.Phase = PhaseResolved
	g.Outcome = OutcomeSuccess
	g.Score += PointsPerItem
	g.ItemsAnswered++
	id := g.Current.ID
	for i, it := range g.Pool {
		if it.ID == id {
			g.Pool = append(g.Pool[:i:i], g.Pool[i+1:]...)
			break
		}
	}
}

func (g *Game) fail() {
	g.Phase = PhaseResolved
	g.Outcome = OutcomeFailure
	if g.Lives > 0 {
		g.Lives--
	}
}

func (g *Game) finish() {
	g.Finished = true
	g.Phase = PhaseOver
	g.Current = nil
	g.Options = nil
}

func (g *Game) result(correct bool, cue sound.Cue) Result {
	r := Result{
		Correct:  correct,
		Phase:    g.Phase,
		Outcome:  g.Outcome,
		Cue:      cue,
		RoundID:  g.RoundID,
		Finished: g.Finished,
	}
	if g.Current != nil {
		r.Item = *g.Current
	}
	return r
}

// newRand returns a ChaCha8-backed generator seeded from crypto/rand.
func newRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewChaCha8(seed))
}
