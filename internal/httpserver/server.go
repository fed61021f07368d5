// internal/httpserver/server.go
//
// HTTP server wiring for the material quiz.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/names/random", "/highscore".
//   - Session endpoints: /session/login, /session/logout, GET /session.
//   - Game endpoints (player token required): /game/*.
//   - Websocket stream of session events: /game/ws.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The player token only names a session; it is not an account login.
//   - The websocket route sits outside the request timeout.
//   - While serving, a janitor evicts sessions idle longer than IdleTimeout
//     (default: the token lifetime).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/highscore"
	"github.com/kannnkannn-debug/material-hero/internal/names"
	"github.com/kannnkannn-debug/material-hero/internal/session"
	"github.com/kannnkannn-debug/material-hero/internal/store"
)

// Options configures a Server.
type Options struct {
	Store       store.Store
	Deps        session.Deps // template for every new player session
	Secret      string
	ExpiresDays int
	Origin      string
	Secure      bool          // production cookies (Secure + SameSite=None)
	IdleTimeout time.Duration // session eviction; defaults to the token lifetime
}

const janitorEvery = 5 * time.Minute

// Server bundles the router and the live session store.
type Server struct {
	r      *chi.Mux
	store  store.Store
	deps   session.Deps
	tok    tokens
	origin string
	idle   time.Duration
	http   *http.Server

	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	if o.Store == nil {
		o.Store = store.NewMemoryStore()
	}
	if o.Deps.Scores == nil {
		o.Deps.Scores = highscore.NewMemoryStore()
	}
	if o.ExpiresDays <= 0 {
		o.ExpiresDays = 14
	}
	if o.Origin == "" {
		o.Origin = "http://localhost:5173"
	}
	s := &Server{
		r:      chi.NewRouter(),
		store:  o.Store,
		deps:   o.Deps,
		origin: o.Origin,
		tok: tokens{
			secret: []byte(o.Secret),
			ttl:    time.Duration(o.ExpiresDays) * 24 * time.Hour,
			secure: o.Secure,
		},
		idle: o.IdleTimeout,
		stop: make(chan struct{}),
	}
	if s.idle <= 0 {
		s.idle = s.tok.ttl
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	s.r.Get("/metrics", promhttp.Handler().ServeHTTP)
	s.r.With(s.withSession).Get("/game/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "material-hero",
				"endpoints": []string{
					"/health", "/metrics", "/names/random", "/highscore",
					"POST /session/login", "POST /session/logout", "GET /session",
					"POST /game/start", "POST /game/guess/material", "POST /game/guess/group",
					"POST /game/next", "GET /game/explanation", "GET /game/ws",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/names/random", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"name": names.Random(nil)})
		})
		r.Get("/highscore", s.handleHighScore)

		s.mountSession(r)
		s.mountGame(r)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	return s
}

// Start begins serving HTTP on addr. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	go s.janitor()
	s.http = &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	return s.http.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) janitor() {
	t := time.NewTicker(janitorEvery)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.EvictIdle()
		case <-s.stop:
			return
		}
	}
}

// EvictIdle drops sessions unseen for longer than the idle timeout.
func (s *Server) EvictIdle() int {
	n := s.store.EvictIdle(s.idle)
	if n > 0 {
		log.Info().Int("evicted", n).Int("live", s.store.Len()).Msg("evicted idle sessions")
	}
	return n
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ public -------------------------------------

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	hs, err := s.deps.Scores.Read(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("read high score")
		hs = 0
	}
	writeJSON(w, http.StatusOK, map[string]int{"highScore": hs})
}

// ------------------------------- util ---------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		log.Debug().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
