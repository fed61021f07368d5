package tui

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/game"
	"github.com/kannnkannn-debug/material-hero/internal/session"
)

type fixedExplainer struct{}

func (fixedExplainer) Explain(ctx context.Context, item catalog.Item) string {
	return "คำอธิบาย " + item.Name
}

func newModel(t *testing.T) (Model, *catalog.Catalog, *session.Session) {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	sess := session.New(context.Background(), session.Deps{
		Catalog:     cat,
		Explainer:   fixedExplainer{},
		GameOptions: []game.Option{game.WithRand(rand.New(rand.NewPCG(3, 5)))},
	})
	t.Cleanup(sess.Close)
	m := New(sess, rand.New(rand.NewPCG(1, 2)))
	return m, cat, sess
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return got
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	return apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func enter(t *testing.T, m Model) Model {
	t.Helper()
	return apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func answerFor(t *testing.T, cat *catalog.Catalog, name string) catalog.Item {
	t.Helper()
	for _, it := range cat.Items() {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("item %q not found", name)
	return catalog.Item{}
}

func indexOf[T comparable](xs []T, v T) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

func key(i int) string { return string(rune('1' + i)) }

func TestLoginRequiresName(t *testing.T) {
	m, _, _ := newModel(t)
	require.Equal(t, session.ScreenLogin, m.Snapshot().Screen)

	m = enter(t, m)
	require.Equal(t, session.ScreenLogin, m.Snapshot().Screen)
	require.NotContains(t, m.View(), "enter เริ่ม")

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotEmpty(t, m.input.Value())
	require.Contains(t, m.View(), "enter เริ่ม")

	m = enter(t, m)
	require.Equal(t, session.ScreenStart, m.Snapshot().Screen)
	require.NotEmpty(t, m.Snapshot().Player)
}

func TestTypedNameLogsIn(t *testing.T) {
	m, _, _ := newModel(t)
	for _, r := range "kan" {
		m = press(t, m, string(r))
	}
	m = enter(t, m)
	require.Equal(t, "kan", m.Snapshot().Player)
	require.Contains(t, m.View(), "kan")

	m = press(t, m, "q")
	require.Equal(t, session.ScreenLogin, m.Snapshot().Screen)
	require.Empty(t, m.input.Value())
}

func TestPlayCorrectRound(t *testing.T) {
	m, cat, _ := newModel(t)
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = enter(t, m)
	m = enter(t, m)
	require.Equal(t, session.ScreenPlaying, m.Snapshot().Screen)

	r := m.Snapshot().Round
	item := answerFor(t, cat, r.ItemName)
	require.Contains(t, m.View(), item.Name)

	// enter is ignored until the round resolves
	m = enter(t, m)
	require.Equal(t, 1, m.Snapshot().Round.Round)

	m = press(t, m, key(indexOf(r.Options, item.Material)))
	require.Equal(t, game.PhaseGroup, m.Snapshot().Round.Phase)

	m = press(t, m, key(indexOf(m.Snapshot().Round.Groups, item.Group)))
	r = m.Snapshot().Round
	require.Equal(t, game.OutcomeSuccess, r.Outcome)
	require.Equal(t, game.PointsPerItem, r.Score)
	require.Contains(t, m.View(), "ถูกต้อง")

	m = enter(t, m)
	require.Equal(t, 2, m.Snapshot().Round.Round)
}

func TestWrongGuessShowsExplanation(t *testing.T) {
	m, cat, sess := newModel(t)
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = enter(t, m)
	m = enter(t, m)

	r := m.Snapshot().Round
	item := answerFor(t, cat, r.ItemName)
	wrong := -1
	for i, o := range r.Options {
		if o != item.Material {
			wrong = i
			break
		}
	}
	require.GreaterOrEqual(t, wrong, 0)

	m = press(t, m, key(wrong))
	require.Equal(t, game.OutcomeFailure, m.Snapshot().Round.Outcome)
	require.Contains(t, m.View(), "ผิด!")

	// the explanation arrives as a session event
	sess.Wait()
	var got *session.Event
	for got == nil {
		select {
		case ev := <-m.events:
			if ev.Kind == session.EventExplanation {
				got = &ev
			}
			continue
		default:
		}
		break
	}
	require.NotNil(t, got, "explanation event published")
	m = apply(t, m, eventMsg(*got))
	require.Contains(t, m.View(), "คำอธิบาย "+item.Name)

	// out-of-range option keys are ignored
	m = press(t, m, "9")
	require.Equal(t, game.PhaseResolved, m.Snapshot().Round.Phase)
}

func TestGameOverView(t *testing.T) {
	m, cat, _ := newModel(t)
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = enter(t, m)
	m = enter(t, m)

	for m.Snapshot().Screen == session.ScreenPlaying {
		r := m.Snapshot().Round
		item := answerFor(t, cat, r.ItemName)
		for i, o := range r.Options {
			if o != item.Material {
				m = press(t, m, key(i))
				break
			}
		}
		m = enter(t, m)
	}
	require.Equal(t, session.ScreenGameOver, m.Snapshot().Screen)
	view := m.View()
	require.Contains(t, view, "จบเกม")
	require.False(t, strings.Contains(view, "สถิติใหม่"), "score 0 is never a record")

	m = enter(t, m)
	require.Equal(t, session.ScreenPlaying, m.Snapshot().Screen)
}

func TestStaleEventDoesNotRewindScreen(t *testing.T) {
	m, _, _ := newModel(t)
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = enter(t, m)
	loginEvent := <-m.events
	require.Equal(t, session.ScreenStart, loginEvent.Snapshot.Screen)

	m = enter(t, m)
	require.Equal(t, session.ScreenPlaying, m.Snapshot().Screen)

	// the login event is delivered only now
	m = apply(t, m, eventMsg(loginEvent))
	require.Equal(t, session.ScreenPlaying, m.Snapshot().Screen)
	require.NotNil(t, m.Snapshot().Round)
}

func TestQuitKeys(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
