// internal/httpserver/server.go
//
// HTTP adapter for the Wordle engine. It turns JSON requests into engine
// operations (the input side) and engine state into JSON (the presentation side).
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/debug/words", POST /game/new.
//   - Per-game endpoints, gated by the token issued at /game/new:
//     GET /game/{id}, POST /game/{id}/letter, POST /game/{id}/backspace,
//     POST /game/{id}/submit, DELETE /game/{id}.
//
// Notes:
//   - Each game is driven by exactly one client: the token binds the bearer to a game ID.
//   - The engine's own busy gate rejects overlapping requests for the same game.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/store"
)

// Options wires the server to its collaborators.
type Options struct {
	Store     store.Store
	Source    game.WordSource
	Validator game.Validator
	Rows      int
	Letters   int

	// Secret signs per-game tokens.
	Secret string
	// Origin is the single CORS origin allowed to call the API.
	Origin string
	// Stats reports (answers, allowed) for /debug/words; optional.
	Stats func() (int, int)
	// Logger receives access logs; defaults to a disabled logger.
	Logger *zerolog.Logger
	// Timeout bounds every request, including the validator call. Default 10s.
	// Keep it above the validator's own timeout so a slow validator is
	// reported as 502 rather than cut off by the router's 504.
	Timeout time.Duration
}

// Server bundles router and game dependencies.
type Server struct {
	r         *chi.Mux
	store     store.Store
	source    game.WordSource
	validator game.Validator
	gameOpts  []game.Option
	secret    []byte
	stats     func() (int, int)
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		store:     o.Store,
		source:    o.Source,
		validator: o.Validator,
		gameOpts:  []game.Option{game.WithRows(o.Rows), game.WithLetters(o.Letters)},
		secret:    []byte(o.Secret),
		stats:     o.Stats,
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if len(s.secret) == 0 {
		s.secret = []byte("dev_secret_change_me")
	}
	logger := zerolog.Nop()
	if o.Logger != nil {
		logger = *o.Logger
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	origin := o.Origin
	if origin == "" {
		origin = "http://localhost:5173"
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(origin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-engine","endpoints":["/health","POST /game/new","/game/{id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		if s.stats == nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		a, g := s.stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requireGameToken)
		r.Get("/", s.handleGetGame)
		r.Post("/letter", s.handleLetter)
		r.Post("/backspace", s.handleBackspace)
		r.Post("/submit", s.handleSubmit)
		r.Delete("/", s.handleAbandon)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
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

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one line per request to the request logger.
func accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("req_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})(next)
}

// ------------------------------ errors -------------------------------------

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// writeGameError maps engine and store errors onto HTTP responses.
func writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		// The router's Timeout middleware answers 504 once the handler returns.
		hlog.FromRequest(r).Warn().Err(err).Msg("request timed out")
		return
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, game.ErrInvalidWord):
		writeError(w, http.StatusUnprocessableEntity, "not_in_word_list")
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
	case errors.Is(err, game.ErrBusy):
		writeError(w, http.StatusConflict, "busy")
	case errors.Is(err, game.ErrSessionAborted):
		hlog.FromRequest(r).Error().Err(err).Msg("session aborted")
		writeError(w, http.StatusServiceUnavailable, "session_aborted")
	case errors.Is(err, game.ErrValidationService):
		hlog.FromRequest(r).Warn().Err(err).Msg("validation service")
		writeError(w, http.StatusBadGateway, "validation_unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("unhandled")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
