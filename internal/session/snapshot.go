// internal/session/snapshot.go
//
// Read-only views handed to presentations (JSON for the API, fields for the TUI).

package session

import (
	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/explain"
	"github.com/kannnkannn-debug/material-hero/internal/game"
)

// Snapshot is a read-only copy of everything a presentation renders.
type Snapshot struct {
	SessionID string      `json:"sessionId"`
	Screen    ScreenName  `json:"screen"`
	Player    string      `json:"player,omitempty"`
	HighScore int         `json:"highScore"`
	Round     *RoundView  `json:"round,omitempty"`
	Result    *ResultView `json:"result,omitempty"`
}

// RoundView is the playing screen.
type RoundView struct {
	GameID      string              `json:"gameId"`
	RoundID     string              `json:"roundId"`
	Round       int                 `json:"round"`
	Score       int                 `json:"score"`
	Lives       int                 `json:"lives"`
	MaxLives    int                 `json:"maxLives"`
	Step        game.Step           `json:"step"`
	Phase       game.Phase          `json:"phase"`
	Outcome     game.Outcome        `json:"outcome,omitempty"`
	ItemName    string              `json:"itemName"`
	Options     []string            `json:"options"`
	Groups      []catalog.Group     `json:"groups"`
	Material    string              `json:"material,omitempty"` // shown once step 1 is passed
	Answer      *catalog.Item       `json:"answer,omitempty"`   // shown once the round is resolved
	PoolLeft    int                 `json:"poolLeft"`
	Explanation explain.Explanation `json:"explanation"`
}

// ResultView is the game-over screen.
type ResultView struct {
	FinalScore    int  `json:"finalScore"`
	ItemsAnswered int  `json:"itemsAnswered"`
	HighScore     int  `json:"highScore"`
	NewRecord     bool `json:"newRecord"`
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID: s.ID,
		Screen:    s.screen.Name(),
		Player:    s.player,
		HighScore: s.highScore,
	}
	switch sc := s.screen.(type) {
	case InRound:
		snap.Round = roundView(sc.Game, s.explanation)
	case Ended:
		snap.Result = &ResultView{
			FinalScore:    sc.FinalScore,
			ItemsAnswered: sc.ItemsAnswered,
			HighScore:     sc.HighScore,
			NewRecord:     sc.NewRecord,
		}
	}
	return snap
}

func roundView(g *game.Game, e explain.Explanation) *RoundView {
	v := &RoundView{
		GameID:      g.ID,
		RoundID:     g.RoundID,
		Round:       g.Round,
		Score:       g.Score,
		Lives:       g.Lives,
		MaxLives:    game.MaxLives,
		Step:        g.Step,
		Phase:       g.Phase,
		Outcome:     g.Outcome,
		Options:     append([]string(nil), g.Options...),
		Groups:      catalog.Groups(),
		PoolLeft:    len(g.Pool),
		Explanation: e,
	}
	if g.Current != nil {
		v.ItemName = g.Current.Name
		if g.Step == game.StepGroup {
			v.Material = g.Current.Material
		}
		if g.Phase == game.PhaseResolved {
			ans := *g.Current
			v.Answer = &ans
		}
	}
	return v
}
