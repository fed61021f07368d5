package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/sound"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Item{
		{ID: 1, Name: "ถ้วยแก้ว", Material: "แก้ว", Group: catalog.GroupCeramic},
		{ID: 2, Name: "ขวดน้ำ", Material: "พลาสติก", Group: catalog.GroupPolymer},
		{ID: 3, Name: "ช้อน", Material: "เหล็ก", Group: catalog.GroupMetal},
		{ID: 4, Name: "ยางลบ", Material: "ยาง", Group: catalog.GroupPolymer},
		{ID: 5, Name: "กระถาง", Material: "ดินเผา", Group: catalog.GroupCeramic},
	})
	require.NoError(t, err)
	return c
}

func newTestGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	return New(testCatalog(t), WithRand(rand.New(rand.NewPCG(seed, seed+1))))
}

// setCurrent pins the current round to the item with id.
func setCurrent(t *testing.T, g *Game, id int) {
	t.Helper()
	for _, it := range g.Pool {
		if it.ID == id {
			it := it
			g.Current = &it
			g.Options = g.materialOptions(it.Material)
			return
		}
	}
	t.Fatalf("item %d not in pool", id)
}

func wrongMaterial(g *Game) string {
	for _, o := range g.Options {
		if o != g.Current.Material {
			return o
		}
	}
	return "ไม่มีวัสดุนี้"
}

func wrongGroup(g *Game) catalog.Group {
	for _, grp := range catalog.Groups() {
		if grp != g.Current.Group {
			return grp
		}
	}
	return ""
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 1)
	require.NotEmpty(t, g.ID)
	require.NotEmpty(t, g.RoundID)
	require.Equal(t, 1, g.Round)
	require.Len(t, g.Pool, 5)
	require.Equal(t, 0, g.Score)
	require.Equal(t, MaxLives, g.Lives)
	require.Equal(t, PhaseMaterial, g.Phase)
	require.Equal(t, StepMaterial, g.Step)
	require.NotNil(t, g.Current)
	require.False(t, g.Finished)
}

func TestMaterialOptions(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g := newTestGame(t, seed)
		require.Len(t, g.Options, OptionCount)
		seen := map[string]int{}
		for _, o := range g.Options {
			seen[o]++
		}
		require.Len(t, seen, OptionCount, "options must be distinct")
		require.Equal(t, 1, seen[g.Current.Material])
	}
}

func TestMaterialOptionsMinimalCatalog(t *testing.T) {
	c, err := catalog.New([]catalog.Item{
		{ID: 1, Name: "a", Material: "x", Group: catalog.GroupMetal},
		{ID: 2, Name: "b", Material: "y", Group: catalog.GroupPolymer},
		{ID: 3, Name: "c", Material: "z", Group: catalog.GroupCeramic},
	})
	require.NoError(t, err)
	g := New(c, WithRand(rand.New(rand.NewPCG(3, 4))))
	require.ElementsMatch(t, []string{"x", "y", "z"}, g.Options)
}

func TestTwoStepSuccess(t *testing.T) {
	g := newTestGame(t, 2)
	item := *g.Current

	res, err := g.GuessMaterial(item.Material)
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.Equal(t, PhaseGroup, res.Phase)
	require.Equal(t, sound.CueCorrect, res.Cue)
	require.Equal(t, StepGroup, g.Step)
	require.Len(t, g.Pool, 5, "pool untouched until the round succeeds")

	res, err = g.GuessGroup(item.Group)
	require.NoError(t, err)
	require.True(t, res.Correct)
	require.Equal(t, OutcomeSuccess, res.Outcome)
	require.False(t, res.Explain)
	require.Equal(t, 10, g.Score)
	require.Equal(t, 1, g.ItemsAnswered)
	require.Equal(t, MaxLives, g.Lives)
	require.Len(t, g.Pool, 4)
	require.False(t, g.InPool(item.ID))
}

func TestStepOneFailure(t *testing.T) {
	g := newTestGame(t, 3)
	item := *g.Current

	res, err := g.GuessMaterial(wrongMaterial(g))
	require.NoError(t, err)
	require.False(t, res.Correct)
	require.Equal(t, OutcomeFailure, res.Outcome)
	require.Equal(t, sound.CueWrong, res.Cue)
	require.True(t, res.Explain)
	require.Equal(t, item.ID, res.Item.ID)
	require.Equal(t, MaxLives-1, g.Lives)
	require.Len(t, g.Pool, 5)
	require.Equal(t, 0, g.Score)
}

// Correct material, wrong group: life lost, item stays in the pool and an
// explanation is due for it.
func TestScenarioWrongGroupKeepsItem(t *testing.T) {
	g := newTestGame(t, 4)
	setCurrent(t, g, 1)

	_, err := g.GuessMaterial("แก้ว")
	require.NoError(t, err)
	res, err := g.GuessGroup(catalog.GroupMetal)
	require.NoError(t, err)

	require.Equal(t, OutcomeFailure, res.Outcome)
	require.True(t, res.Explain)
	require.Equal(t, 1, res.Item.ID)
	require.Equal(t, MaxLives-1, g.Lives)
	require.True(t, g.InPool(1))
	require.Len(t, g.Pool, 5)
}

func TestScenarioThreeWrongGuessesEndsGame(t *testing.T) {
	g := newTestGame(t, 5)
	require.Equal(t, 3, g.Lives)

	for i := 0; i < 3; i++ {
		require.False(t, g.Finished)
		_, err := g.GuessMaterial(wrongMaterial(g))
		require.NoError(t, err)
		res, err := g.Advance()
		require.NoError(t, err)
		if i < 2 {
			require.False(t, res.Finished)
			require.Equal(t, sound.CueClick, res.Cue)
		} else {
			require.True(t, res.Finished)
			require.Equal(t, sound.CueGameOver, res.Cue)
		}
	}
	require.True(t, g.Finished)
	require.Equal(t, 0, g.Lives)
	require.Equal(t, 0, g.Score)
	require.Equal(t, PhaseOver, g.Phase)
}

func TestScenarioLastItemEmptiesPool(t *testing.T) {
	g := newTestGame(t, 6)
	g.Score = 40
	last := g.Pool[2]
	g.Pool = []catalog.Item{last}
	setCurrent(t, g, last.ID)

	_, err := g.GuessMaterial(last.Material)
	require.NoError(t, err)
	_, err = g.GuessGroup(last.Group)
	require.NoError(t, err)
	require.Empty(t, g.Pool)
	require.False(t, g.Finished, "game ends on acknowledgement, not on the guess")

	res, err := g.Advance()
	require.NoError(t, err)
	require.True(t, res.Finished)
	require.True(t, g.Finished)
	require.Equal(t, 50, g.Score)
	require.Nil(t, g.Current)
}

func TestAdvanceStartsNewRound(t *testing.T) {
	g := newTestGame(t, 7)
	prevRound := g.RoundID
	_, err := g.GuessMaterial(wrongMaterial(g))
	require.NoError(t, err)

	_, err = g.Advance()
	require.NoError(t, err)
	require.NotEqual(t, prevRound, g.RoundID)
	require.Equal(t, 2, g.Round)
	require.Equal(t, PhaseMaterial, g.Phase)
	require.Equal(t, OutcomeNone, g.Outcome)
}

func TestGuessErrors(t *testing.T) {
	g := newTestGame(t, 8)

	_, err := g.GuessGroup(g.Current.Group)
	require.ErrorIs(t, err, ErrWrongStep)

	_, err = g.Advance()
	require.ErrorIs(t, err, ErrRoundNotResolved)

	_, err = g.GuessGroup("Wood")
	require.ErrorIs(t, err, ErrUnknownGroup)

	_, err = g.GuessMaterial(g.Current.Material)
	require.NoError(t, err)
	_, err = g.GuessMaterial(g.Current.Material)
	require.ErrorIs(t, err, ErrWrongStep)

	_, err = g.GuessGroup(wrongGroup(g))
	require.NoError(t, err)
	_, err = g.GuessGroup(g.Current.Group)
	require.ErrorIs(t, err, ErrWrongStep)

	g.Lives = 0
	_, err = g.Advance()
	require.NoError(t, err)
	require.True(t, g.Finished)

	_, err = g.GuessMaterial("x")
	require.ErrorIs(t, err, ErrFinished)
	_, err = g.Advance()
	require.ErrorIs(t, err, ErrFinished)
}

// Random play must keep every invariant: pool shrinks by one only on success,
// lives drop by one only on failure, score moves in steps of 10 and the game
// ends exactly when lives or pool run out.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	cat := testCatalog(t)
	for seed := uint64(0); seed < 200; seed++ {
		r := rand.New(rand.NewPCG(seed, 99))
		g := New(cat, WithRand(rand.New(rand.NewPCG(seed, 1))))

		for !g.Finished {
			pool, lives, score := len(g.Pool), g.Lives, g.Score

			var res Result
			var err error
			switch g.Phase {
			case PhaseMaterial:
				res, err = g.GuessMaterial(g.Options[r.IntN(len(g.Options))])
			case PhaseGroup:
				groups := catalog.Groups()
				res, err = g.GuessGroup(groups[r.IntN(len(groups))])
			case PhaseResolved:
				res, err = g.Advance()
				require.NoError(t, err)
				require.Equal(t, g.Lives == 0 || len(g.Pool) == 0, res.Finished)
				continue
			}
			require.NoError(t, err)

			switch res.Outcome {
			case OutcomeSuccess:
				require.Equal(t, pool-1, len(g.Pool))
				require.Equal(t, lives, g.Lives)
				require.Equal(t, score+PointsPerItem, g.Score)
			case OutcomeFailure:
				require.Equal(t, pool, len(g.Pool))
				require.Equal(t, lives-1, g.Lives)
				require.Equal(t, score, g.Score)
			default:
				require.Equal(t, pool, len(g.Pool))
				require.Equal(t, lives, g.Lives)
				require.Equal(t, score, g.Score)
			}
			require.GreaterOrEqual(t, g.Lives, 0)
		}
		require.True(t, g.Lives == 0 || len(g.Pool) == 0)
		require.Equal(t, g.ItemsAnswered*PointsPerItem, g.Score)
	}
}
