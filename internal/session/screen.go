// internal/session/screen.go
//
// Screen is a closed set of variants: LoggedOut, AtMenu, InRound, Ended.

package session

import "github.com/kannnkannn-debug/material-hero/internal/game"

// Screen is the top-level presentation state. Exactly one of the types below.
type Screen interface {
	Name() ScreenName
}

// ScreenName is the wire/display tag for a Screen.
type ScreenName string

const (
	ScreenLogin    ScreenName = "login"
	ScreenStart    ScreenName = "start"
	ScreenPlaying  ScreenName = "playing"
	ScreenGameOver ScreenName = "gameover"
)

// LoggedOut: no player name yet.
type LoggedOut struct{}

// AtMenu: logged in, waiting to start.
type AtMenu struct{}

// InRound: a game is being played.
type InRound struct {
	Game *game.Game
}

// Ended: the last game is over.
type Ended struct {
	FinalScore    int
	ItemsAnswered int
	HighScore     int
	NewRecord     bool
}

func (LoggedOut) Name() ScreenName { return ScreenLogin }
func (AtMenu) Name() ScreenName    { return ScreenStart }
func (InRound) Name() ScreenName   { return ScreenPlaying }
func (Ended) Name() ScreenName     { return ScreenGameOver }
