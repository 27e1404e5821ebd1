// internal/game/types.go
//
// Core type definitions for the connect-N game engine.
// Defines:
//   - Rules: board dimensions, run length, turn clock and timeout policy.
//   - Seat: a move-capable player slot.
//   - Status: the single tagged lifecycle value of a game.
//   - Game: state for a single lobby.

package game

import "time"

// EmptyCell marks an unoccupied board cell. Player identifiers are
// alphanumeric, so a blank can never collide with one.
const EmptyCell = " "

// MaxPlayers is the number of move-capable seats in a lobby.
const MaxPlayers = 2

// Phase is the coarse lifecycle state of a game.
//   - "waiting":     one player seated, no clock.
//   - "in_progress": two players seated, clock armed.
//   - "finished":    a player won (by run or by time forfeit).
//   - "draw":        board filled with no winner.
type Phase string

const (
	PhaseWaiting    Phase = "waiting"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
	PhaseDraw       Phase = "draw"
)

// TimeoutPolicy decides what an expired turn clock does.
type TimeoutPolicy string

const (
	// SkipTurn hands the move to the opponent and re-arms the clock.
	SkipTurn TimeoutPolicy = "skip_turn"
	// ForfeitGame ends the game with the opponent as winner.
	ForfeitGame TimeoutPolicy = "forfeit_game"
)

// Rules are fixed when a lobby is created.
type Rules struct {
	Rows         int           `json:"rows"`
	Cols         int           `json:"cols"`
	Target       int           `json:"target"`
	TurnDuration time.Duration `json:"turnDuration"`
	OnTimeout    TimeoutPolicy `json:"onTimeout"`
}

// Seat is one of the two player slots. Seat order is turn order.
type Seat struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// Status replaces the loose gameOver/winner/currentPlayer/deadline fields
// with one value whose Phase says which of the other fields are meaningful.
type Status struct {
	Phase         Phase     `json:"phase"`
	CurrentPlayer string    `json:"currentPlayer,omitempty"` // set from in_progress on; frozen once over
	Deadline      time.Time `json:"deadline"`                // zero while waiting
	Winner        string    `json:"winner,omitempty"`        // finished only
	Message       string    `json:"message,omitempty"`       // finished/draw only
}

// Game holds the state of a single lobby.
type Game struct {
	Code       string            `json:"code"`
	Rules      Rules             `json:"rules"`
	Board      [][]string        `json:"board"`
	Players    []Seat            `json:"players"`
	Spectators map[string]string `json:"spectators"`
	Status     Status            `json:"status"`
	Moves      int               `json:"moves"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Role is how a user participates in a lobby.
type Role string

const (
	RolePlayer    Role = "player"
	RoleSpectator Role = "spectator"
)
