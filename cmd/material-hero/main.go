// cmd/material-hero/main.go
//
// Terminal client. Same session layer as the HTTP server, rendered with
// bubbletea. Logs go to data/material-hero.log so the UI stays clean.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/config"
	"github.com/kannnkannn-debug/material-hero/internal/explain"
	"github.com/kannnkannn-debug/material-hero/internal/highscore"
	"github.com/kannnkannn-debug/material-hero/internal/session"
	"github.com/kannnkannn-debug/material-hero/internal/sound"
	"github.com/kannnkannn-debug/material-hero/internal/tui"
)

const logPath = "data/material-hero.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "material-hero:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx := context.Background()
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	scores, release, err := highscore.Open(ctx, cfg.HighScoreBackend())
	if err != nil {
		return fmt.Errorf("open high-score store: %w", err)
	}
	defer release()
	explainer, err := explain.NewProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Explain.Timeout)
	if err != nil {
		log.Warn().Err(err).Msg("gemini unavailable; using fallback explanations")
	}

	sess := session.New(ctx, session.Deps{
		Catalog:   cat,
		Scores:    scores,
		Explainer: explainer,
		Sound:     sound.Bell{W: os.Stderr},
	})
	defer sess.Close()

	m := tui.New(sess, nil)
	defer m.Close()

	log.Info().Int("items", cat.Len()).Str("highscore", cfg.HighScore.Backend).Msg("terminal client started")
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
