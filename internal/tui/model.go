// internal/tui/model.go
//
// Terminal client: a bubbletea model over one session.Session.
// One view per screen (login, start, playing, game over). Every key press
// calls the session and re-reads its snapshot; explanations arrive later as
// session events and are fed back in through waitForEvent.

package tui

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/game"
	"github.com/kannnkannn-debug/material-hero/internal/names"
	"github.com/kannnkannn-debug/material-hero/internal/session"
)

// eventMsg carries a session event into Update.
type eventMsg session.Event

// Model is the bubbletea model.
type Model struct {
	sess   *session.Session
	events <-chan session.Event
	stop   func()
	rng    *rand.Rand

	snap   session.Snapshot
	input  textinput.Model
	errMsg string
}

// New builds a model and subscribes to the session. rng may be nil.
func New(sess *session.Session, rng *rand.Rand) Model {
	ti := textinput.New()
	ti.Placeholder = "ชื่อผู้เล่น (tab = สุ่มชื่อ)"
	ti.CharLimit = 40
	ti.Width = 30
	ti.Focus()

	events, stop := sess.Subscribe()
	return Model{
		sess:   sess,
		events: events,
		stop:   stop,
		rng:    rng,
		snap:   sess.Snapshot(),
		input:  ti,
	}
}

// Close unsubscribes from the session.
func (m Model) Close() { m.stop() }

// Snapshot is the last state the model rendered from.
func (m Model) Snapshot() session.Snapshot { return m.snap }

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

// waitForEvent blocks on the session's event channel. A closed channel
// yields nil, which stops the loop.
func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		// The payload can predate an action this model already applied, so
		// the event is only a cue to re-read.
		m.snap = m.sess.Snapshot()
		return m, waitForEvent(m.events)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		m.errMsg = ""
		switch m.snap.Screen {
		case session.ScreenLogin:
			return m.updateLogin(msg)
		case session.ScreenStart:
			return m.updateMenu(msg)
		case session.ScreenPlaying:
			return m.updatePlaying(msg)
		case session.ScreenGameOver:
			return m.updateGameOver(msg)
		}
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		m.input.SetValue(names.Random(m.rng))
		m.input.CursorEnd()
		return m, nil
	case tea.KeyEnter:
		// submit is disabled while the name is blank
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		m.act(m.sess.Login(m.input.Value()))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.act(m.sess.Start())
	case msg.String() == "q":
		m.logout()
	}
	return m, nil
}

func (m Model) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	return m.updateMenu(msg)
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.snap.Round
	if r == nil {
		return m, nil
	}
	if msg.Type == tea.KeyEnter {
		if r.Phase != game.PhaseResolved {
			return m, nil
		}
		_, err := m.sess.Advance(context.Background())
		m.act(err)
		return m, nil
	}

	idx, ok := optionIndex(msg)
	if !ok {
		return m, nil
	}
	switch r.Phase {
	case game.PhaseMaterial:
		if idx < len(r.Options) {
			_, err := m.sess.GuessMaterial(r.Options[idx])
			m.act(err)
		}
	case game.PhaseGroup:
		if idx < len(r.Groups) {
			_, err := m.sess.GuessGroup(r.Groups[idx])
			m.act(err)
		}
	}
	return m, nil
}

func (m *Model) logout() {
	m.input.Reset()
	m.input.Focus()
	m.act(m.sess.Logout())
}

// act records an action error and refreshes the snapshot.
func (m *Model) act(err error) {
	if err != nil {
		log.Debug().Err(err).Str("screen", string(m.snap.Screen)).Msg("action rejected")
		m.errMsg = err.Error()
	}
	m.snap = m.sess.Snapshot()
}

// optionIndex maps "1".."9" to a zero-based option index.
func optionIndex(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

var groupLabels = map[catalog.Group]string{
	catalog.GroupPolymer: "Polymer (พอลิเมอร์)",
	catalog.GroupCeramic: "Ceramic (เซรามิก)",
	catalog.GroupMetal:   "Metal (โลหะ)",
}
