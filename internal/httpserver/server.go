// internal/httpserver/server.go
//
// HTTP server wiring for the lobby backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery,
//     timeouts, JSON content type, CORS).
//   - Public endpoints: "/", "/health".
//   - Lobby endpoints under /api (see routes_lobby.go).
//   - Leaderboard of finished matches: GET /api/leaderboard.
//
// Notes:
//   - There is no server push. Clients poll /api/game-state or
//     /api/check-timer; both resolve an expired turn before answering.
//   - userId values are client-generated and trusted as-is.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/1oridevs/5-in-a-row/internal/game"
	"github.com/1oridevs/5-in-a-row/internal/lobby"
	"github.com/1oridevs/5-in-a-row/internal/results"
)

// Leaderboard serves ranked winners.
type Leaderboard interface {
	Leaderboard(ctx context.Context, limit int) ([]results.LBRow, error)
}

// Server bundles the router, the lobby service and the results board.
type Server struct {
	r       *chi.Mux
	lobbies *lobby.Service
	board   Leaderboard
}

// New constructs a Server, installs middleware, and registers routes.
// board may be nil, in which case /api/leaderboard is not mounted.
func New(svc *lobby.Service, board Leaderboard, clientOrigin string) *Server {
	s := &Server{r: chi.NewRouter(), lobbies: svc, board: board}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one debug line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(clientOrigin))              // browser clients on another origin

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"connect-n","endpoints":["/health","/api/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		s.mountLobby(r)
		if s.board != nil {
			r.Get("/leaderboard", s.handleLeaderboard)
		}
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found", Path: r.URL.Path})
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

// cors allows a single origin ("*" for any).
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog logs method, path, status and latency at debug level.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ responses ----------------------------------

type errorRes struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to a status code and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, status, errorRes{Error: "internal_error"})
		return
	}
	writeJSON(w, status, errorRes{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotAPlayer), errors.Is(err, game.ErrNotYourTurn):
		return http.StatusForbidden
	case errors.Is(err, game.ErrInvalidInput),
		errors.Is(err, game.ErrColumnFull),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrLobbyFull):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ----------------------------- leaderboard ---------------------------------

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	rows, err := s.board.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
