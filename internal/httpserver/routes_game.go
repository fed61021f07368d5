// internal/httpserver/routes_game.go
//
// Session and game routes.
//   - POST /session/login        → new private session, token cookie, snapshot
//   - POST /session/logout       → drop the session (menu or game-over screen only)
//   - GET  /session              → snapshot
//   - POST /game/start           → start or restart
//   - POST /game/guess/material  → {material}
//   - POST /game/guess/group     → {group}
//   - POST /game/next            → advance after a resolved round
//   - GET  /game/explanation     → current explanation state
//
// Action responses carry the sound cue (and its tone) so the browser can play it.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/game"
	"github.com/kannnkannn-debug/material-hero/internal/session"
	"github.com/kannnkannn-debug/material-hero/internal/sound"
)

func (s *Server) mountSession(r chi.Router) {
	r.Post("/session/login", s.handleLogin)
	r.With(s.withSession).Post("/session/logout", s.handleLogout)
	r.With(s.withSession).Get("/session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionFrom(r).Snapshot())
	})
}

func (s *Server) mountGame(r chi.Router) {
	g := r.With(s.withSession)
	g.Post("/game/start", s.handleStart)
	g.Post("/game/guess/material", s.handleGuessMaterial)
	g.Post("/game/guess/group", s.handleGuessGroup)
	g.Post("/game/next", s.handleNext)
	g.Get("/game/explanation", func(w http.ResponseWriter, r *http.Request) {
		snap := sessionFrom(r).Snapshot()
		if snap.Round == nil {
			writeError(w, http.StatusConflict, "no_round")
			return
		}
		writeJSON(w, http.StatusOK, snap.Round.Explanation)
	})
}

// ------------------------------ SESSION ------------------------------------

type loginReq struct {
	Name string `json:"name"`
}

type loginRes struct {
	Token    string           `json:"token"`
	Snapshot session.Snapshot `json:"snapshot"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	sess := session.New(r.Context(), s.deps)
	if err := sess.Login(req.Name); err != nil {
		sess.Close()
		writeActionError(w, err)
		return
	}

	// A fresh login replaces whatever session the old token pointed at.
	if raw := bearerOrCookie(r); raw != "" {
		if old, err := s.tok.parse(raw); err == nil {
			_ = s.store.Delete(r.Context(), old)
		}
	}

	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tok.sign(sess.ID, sess.Player())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.tok.setCookie(w, tok, exp)
	log.Info().Str("session", sess.ID).Str("player", sess.Player()).Msg("login")
	writeJSON(w, http.StatusOK, loginRes{Token: tok, Snapshot: sess.Snapshot()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.Logout(); err != nil {
		writeActionError(w, err)
		return
	}
	_ = s.store.Delete(r.Context(), sess.ID)
	s.tok.clearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ------------------------------- GAME --------------------------------------

type actionRes struct {
	Cue      sound.Cue        `json:"cue"`
	Tone     *sound.Tone      `json:"tone,omitempty"`
	Correct  bool             `json:"correct"`
	Outcome  game.Outcome     `json:"outcome,omitempty"`
	Finished bool             `json:"finished"`
	Snapshot session.Snapshot `json:"snapshot"`
}

func respondAction(w http.ResponseWriter, sess *session.Session, res game.Result) {
	out := actionRes{
		Cue:      res.Cue,
		Correct:  res.Correct,
		Outcome:  res.Outcome,
		Finished: res.Finished,
		Snapshot: sess.Snapshot(),
	}
	if t, ok := sound.ToneFor(res.Cue); ok {
		out.Tone = &t
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.Start(); err != nil {
		writeActionError(w, err)
		return
	}
	respondAction(w, sess, game.Result{Cue: sound.CueClick})
}

type guessMaterialReq struct {
	Material string `json:"material"`
}

func (s *Server) handleGuessMaterial(w http.ResponseWriter, r *http.Request) {
	var req guessMaterialReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	sess := sessionFrom(r)
	res, err := sess.GuessMaterial(req.Material)
	if err != nil {
		writeActionError(w, err)
		return
	}
	respondAction(w, sess, res)
}

type guessGroupReq struct {
	Group string `json:"group"`
}

func (s *Server) handleGuessGroup(w http.ResponseWriter, r *http.Request) {
	var req guessGroupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	group, err := catalog.ParseGroup(req.Group)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_group")
		return
	}
	sess := sessionFrom(r)
	res, err := sess.GuessGroup(group)
	if err != nil {
		writeActionError(w, err)
		return
	}
	respondAction(w, sess, res)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	res, err := sess.Advance(r.Context())
	if err != nil {
		writeActionError(w, err)
		return
	}
	respondAction(w, sess, res)
}

// writeActionError maps session and engine errors to HTTP statuses.
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "empty_name")
	case errors.Is(err, game.ErrUnknownGroup):
		writeError(w, http.StatusBadRequest, "unknown_group")
	case errors.Is(err, session.ErrWrongScreen):
		writeError(w, http.StatusConflict, "wrong_screen")
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_finished")
	case errors.Is(err, game.ErrWrongStep):
		writeError(w, http.StatusConflict, "wrong_step")
	case errors.Is(err, game.ErrRoundNotResolved):
		writeError(w, http.StatusConflict, "round_not_resolved")
	default:
		log.Error().Err(err).Msg("game action")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
