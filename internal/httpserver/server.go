// internal/httpserver/server.go
//
// HTTP wiring for the GuessMaster backend.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health".
//   - Game endpoints under /api: start-game, guess, set-target, end-game,
//     scores, history.
//   - Signed session cookie mapping the caller to its game id (cookie.go).
//
// Notes:
//   - The server never touches session state directly; every transition goes
//     through the registry, and this layer only translates transport to core
//     calls and errors to status codes.
//   - Game history rows are written best effort: a failed insert or update
//     is logged and the gameplay response still goes out.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"guessmaster/internal/game"
	"guessmaster/internal/history"
	"guessmaster/internal/registry"
	"guessmaster/internal/scores"
)

// Server bundles the router, the session registry, and the two stores.
type Server struct {
	r        *chi.Mux
	registry *registry.Registry
	scores   scores.Store
	history  *history.Store // may be nil; history is then skipped
	secret   []byte
}

// New constructs a Server, installs middleware, and registers routes.
func New(reg *registry.Registry, sc scores.Store, hist *history.Store, secret string) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		registry: reg,
		scores:   sc,
		history:  hist,
		secret:   []byte(secret),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"guessmaster","endpoints":["/health","POST /api/start-game","POST /api/guess","POST /api/set-target","POST /api/end-game","/api/scores","/api/history"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(api chi.Router) {
		api.Post("/start-game", s.handleStartGame)
		api.Post("/guess", s.handleGuess)
		api.Post("/set-target", s.handleSetTarget)
		api.Post("/end-game", s.handleEndGame)
		api.Get("/scores", s.handleGetScores)
		api.Post("/scores", s.handleSaveScores)
		api.Get("/history", s.handleHistory)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

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

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
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

// ------------------------------ responses ----------------------------------

// statusSessionGone mirrors the 440 "session expired" convention so front
// ends can prompt re-creation instead of retrying a 400.
const statusSessionGone = 440

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// writeError maps core error categories onto status codes:
// validation and wrong-phase → 400, missing/expired session → 440,
// anything else → generic 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case game.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errBody{Error: err.Error()})
	case registry.IsSessionGone(err):
		writeJSON(w, statusSessionGone, errBody{Error: err.Error()})
	case errors.Is(err, registry.ErrTargetAlreadySet) || errors.Is(err, registry.ErrTargetNotSet):
		writeJSON(w, http.StatusBadRequest, errBody{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, errBody{Error: "an unexpected error occurred, please try again"})
	}
}

type errBody struct {
	Error string `json:"error"`
}
