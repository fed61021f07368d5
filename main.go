// main.go
//
// HTTP API server for the material quiz.
// Startup: .env + config, log level, catalog, high-score backend, Gemini
// explainer, then serve until SIGINT/SIGTERM.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/config"
	"github.com/kannnkannn-debug/material-hero/internal/explain"
	"github.com/kannnkannn-debug/material-hero/internal/highscore"
	"github.com/kannnkannn-debug/material-hero/internal/httpserver"
	"github.com/kannnkannn-debug/material-hero/internal/session"
	"github.com/kannnkannn-debug/material-hero/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}

	scores, closeScores, err := highscore.Open(ctx, cfg.HighScoreBackend())
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.HighScore.Backend).Msg("open high-score store")
	}
	defer closeScores()

	explainer, err := explain.NewProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Explain.Timeout)
	if err != nil {
		log.Warn().Err(err).Msg("gemini unavailable; using fallback explanations")
	}

	srv := httpserver.New(httpserver.Options{
		Store: store.NewMemoryStore(),
		Deps: session.Deps{
			Catalog:   cat,
			Scores:    scores,
			Explainer: explainer,
		},
		Secret:      cfg.JWT.Secret,
		ExpiresDays: cfg.JWT.ExpiresDays,
		Origin:      cfg.Client.Origin,
		Secure:      os.Getenv("NODE_ENV") == "production",
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("port", cfg.Port).
		Int("items", cat.Len()).
		Str("highscore", cfg.HighScore.Backend).
		Bool("gemini", cfg.Gemini.APIKey != "").
		Msg("starting material-hero server")
	if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}
