package game

import (
	"errors"
	"fmt"
)

// Client-facing failures. Callers classify with errors.Is; the HTTP layer
// maps each to a status code.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("lobby not found")
	ErrGameOver      = errors.New("game is over")
	ErrAlreadyJoined = errors.New("already joined as a player")
	ErrLobbyFull     = errors.New("lobby is full")
	ErrNotAPlayer    = errors.New("spectators cannot make moves")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrColumnFull    = errors.New("column is full")
)

// ErrInvalidColumn is an ErrInvalidInput for a column outside the board.
var ErrInvalidColumn = fmt.Errorf("%w: column out of range", ErrInvalidInput)
