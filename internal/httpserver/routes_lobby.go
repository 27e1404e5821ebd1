// internal/httpserver/routes_lobby.go
//
// HTTP routes for lobbies. Paths and payloads match the browser and CLI
// clients:
//   - POST /api/create-lobby       {userId, nickname}        → {lobbyId}
//   - POST /api/join-lobby         {lobby, userId, nickname} → {message, lobbyId, role}
//   - POST /api/add-spectator      {lobby, userId, nickname} → {message, lobbyId}
//   - POST /api/make-a-move        {lobby, userId, cell}     → {board, currentPlayer, winner, message, moveDeadline}
//   - GET  /api/check-timer/{lobby}                          → {board, currentPlayer, moveDeadline, gameOver, message}
//   - GET  /api/game-state/{lobby}                           → full state
//
// moveDeadline is epoch milliseconds. A move that ends the game reports the
// deadline frozen at its pre-move value; the polling routes report null once
// the game is over.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/1oridevs/5-in-a-row/internal/game"
)

// mountLobby registers all lobby routes.
func (s *Server) mountLobby(r chi.Router) {
	r.Post("/create-lobby", s.handleCreateLobby)
	r.Post("/join-lobby", s.handleJoinLobby)
	r.Post("/add-spectator", s.handleAddSpectator)
	r.Post("/make-a-move", s.handleMakeMove)
	r.Get("/check-timer/{lobby}", s.handleCheckTimer)
	r.Get("/game-state/{lobby}", s.handleGameState)
}

// createLobbyReq/Res payloads for POST /api/create-lobby.
type createLobbyReq struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
}
type createLobbyRes struct {
	LobbyID string `json:"lobbyId"`
}

// joinReq is shared by /join-lobby and /add-spectator.
type joinReq struct {
	Lobby    string `json:"lobby"`
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
}
type joinRes struct {
	Message string    `json:"message"`
	LobbyID string    `json:"lobbyId"`
	Role    game.Role `json:"role,omitempty"`
}

// moveReq/Res payloads for POST /api/make-a-move. Cell is the column.
type moveReq struct {
	Lobby  string `json:"lobby"`
	UserID string `json:"userId"`
	Cell   *int   `json:"cell"`
}
type moveRes struct {
	Board         [][]string `json:"board"`
	CurrentPlayer *string    `json:"currentPlayer"`
	Winner        *string    `json:"winner"`
	Message       *string    `json:"message"`
	MoveDeadline  *int64     `json:"moveDeadline"`
}

type timerRes struct {
	Board         [][]string `json:"board"`
	CurrentPlayer *string    `json:"currentPlayer"`
	MoveDeadline  *int64     `json:"moveDeadline"`
	GameOver      bool       `json:"gameOver"`
	Message       *string    `json:"message"`
}

type stateRes struct {
	Board         [][]string        `json:"board"`
	CurrentPlayer *string           `json:"currentPlayer"`
	Players       map[string]string `json:"players"`
	PlayerOrder   []string          `json:"playerOrder"`
	Spectators    map[string]string `json:"spectators"`
	Status        game.Phase        `json:"status"`
	GameOver      bool              `json:"gameOver"`
	Winner        *string           `json:"winner"`
	WinMessage    *string           `json:"winMessage"`
	MoveDeadline  *int64            `json:"moveDeadline"`
	Rows          int               `json:"rows"`
	Cols          int               `json:"cols"`
	Target        int               `json:"target"`
}

func (s *Server) handleCreateLobby(w http.ResponseWriter, r *http.Request) {
	var req createLobbyReq
	if !decode(w, r, &req) {
		return
	}
	code, err := s.lobbies.CreateLobby(r.Context(), req.UserID, req.Nickname)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, createLobbyRes{LobbyID: code})
}

func (s *Server) handleJoinLobby(w http.ResponseWriter, r *http.Request) {
	var req joinReq
	if !decode(w, r, &req) {
		return
	}
	role, err := s.lobbies.JoinLobby(r.Context(), req.Lobby, req.UserID, req.Nickname)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, joinRes{
		Message: fmt.Sprintf("Joined as %s", role),
		LobbyID: req.Lobby,
		Role:    role,
	})
}

func (s *Server) handleAddSpectator(w http.ResponseWriter, r *http.Request) {
	var req joinReq
	if !decode(w, r, &req) {
		return
	}
	if err := s.lobbies.JoinAsSpectator(r.Context(), req.Lobby, req.UserID, req.Nickname); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, joinRes{Message: "Joined as spectator", LobbyID: req.Lobby})
}

func (s *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if !decode(w, r, &req) {
		return
	}
	if req.Cell == nil {
		writeError(w, r, fmt.Errorf("%w: cell is required", game.ErrInvalidInput))
		return
	}
	snap, err := s.lobbies.MakeMove(r.Context(), req.Lobby, req.UserID, *req.Cell)
	if err != nil {
		writeError(w, r, err)
		return
	}
	deadline := snap.Deadline
	if snap.GameOver {
		deadline = &snap.TurnDeadline
	}
	writeJSON(w, http.StatusOK, moveRes{
		Board:         snap.Board,
		CurrentPlayer: optional(snap.CurrentPlayer),
		Winner:        optional(snap.Winner),
		Message:       optional(snap.Message),
		MoveDeadline:  millis(deadline),
	})
}

func (s *Server) handleCheckTimer(w http.ResponseWriter, r *http.Request) {
	snap, err := s.lobbies.CheckTimer(r.Context(), chi.URLParam(r, "lobby"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timerRes{
		Board:         snap.Board,
		CurrentPlayer: optional(snap.CurrentPlayer),
		MoveDeadline:  millis(snap.Deadline),
		GameOver:      snap.GameOver,
		Message:       optional(snap.Message),
	})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.lobbies.GameState(r.Context(), chi.URLParam(r, "lobby"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	res := stateRes{
		Board:         snap.Board,
		CurrentPlayer: optional(snap.CurrentPlayer),
		Players:       make(map[string]string, len(snap.Players)),
		PlayerOrder:   make([]string, 0, len(snap.Players)),
		Spectators:    snap.Spectators,
		Status:        snap.Phase,
		GameOver:      snap.GameOver,
		Winner:        optional(snap.Winner),
		WinMessage:    optional(snap.Message),
		MoveDeadline:  millis(snap.Deadline),
		Rows:          snap.Rules.Rows,
		Cols:          snap.Rules.Cols,
		Target:        snap.Rules.Target,
	}
	for _, p := range snap.Players {
		res.Players[p.ID] = p.Nickname
		res.PlayerOrder = append(res.PlayerOrder, p.ID)
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------- small util --------------------------------

// decode parses the JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_json"})
		return false
	}
	return true
}

// optional maps "" to JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
