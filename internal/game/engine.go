// internal/game/engine.go
//
// Core game engine for a single connect-N lobby.
// Responsibilities:
//   - Create games with an empty board of the configured dimensions.
//   - Seat players and spectators; start the clock when the second seat fills.
//   - Validate and apply gravity moves (a move names a column).
//   - Detect runs of Rules.Target on all four axes; detect a full board.
//   - Evaluate the turn clock lazily (Tick) when a request arrives.
//
// Board addressing: row 0 is the top. A column is full when its row 0 is
// occupied, and a disc drops to the highest-indexed empty row.
//
// Every method that rejects an operation leaves the game untouched.
package game

import (
	"fmt"
	"strings"
	"time"
)

// New constructs a game with the creator in the first seat.
func New(code string, rules Rules, creatorID, nickname string, now time.Time) (*Game, error) {
	if err := validateIdentity(creatorID, nickname); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &Game{
		Code:       code,
		Rules:      rules,
		Board:      newBoard(rules.Rows, rules.Cols),
		Players:    []Seat{{ID: creatorID, Nickname: nickname}},
		Spectators: map[string]string{},
		Status:     Status{Phase: PhaseWaiting},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GameOver reports whether the game reached a terminal phase.
func (g *Game) GameOver() bool {
	return g.Status.Phase == PhaseFinished || g.Status.Phase == PhaseDraw
}

// Seat returns the player seat for id.
func (g *Game) Seat(id string) (Seat, bool) {
	for _, s := range g.Players {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// IsPlayer reports whether id holds a seat.
func (g *Game) IsPlayer(id string) bool {
	_, ok := g.Seat(id)
	return ok
}

// AddPlayer seats id. Filling the second seat starts the game: the first
// joiner moves first and the clock is armed.
func (g *Game) AddPlayer(id, nickname string, now time.Time) error {
	if err := validateIdentity(id, nickname); err != nil {
		return err
	}
	if g.GameOver() {
		return ErrGameOver
	}
	if g.IsPlayer(id) {
		return ErrAlreadyJoined
	}
	if len(g.Players) >= MaxPlayers {
		return ErrLobbyFull
	}

	delete(g.Spectators, id)
	g.Players = append(g.Players, Seat{ID: id, Nickname: nickname})
	if len(g.Players) == MaxPlayers {
		g.Status = Status{
			Phase:         PhaseInProgress,
			CurrentPlayer: g.Players[0].ID,
			Deadline:      now.Add(g.Rules.TurnDuration),
		}
	}
	return nil
}

// AddSpectator registers id as an observer. Re-joining overwrites the
// nickname.
func (g *Game) AddSpectator(id, nickname string) error {
	if err := validateIdentity(id, nickname); err != nil {
		return err
	}
	if g.GameOver() {
		return ErrGameOver
	}
	if g.IsPlayer(id) {
		return ErrAlreadyJoined
	}
	g.Spectators[id] = nickname
	return nil
}

// ApplyMove drops userID's disc into column and returns the row it landed
// in. Checks run in order: game over, seat, turn, column range, column full.
//
// A winning move finishes the game with the turn and deadline frozen at
// their pre-move values. A move that fills the board without a run is a
// draw. Otherwise the turn passes and the clock is re-armed.
func (g *Game) ApplyMove(userID string, column int, now time.Time) (int, error) {
	if g.GameOver() {
		return -1, ErrGameOver
	}
	seat, ok := g.Seat(userID)
	if !ok {
		return -1, ErrNotAPlayer
	}
	if g.Status.Phase != PhaseInProgress || g.Status.CurrentPlayer != userID {
		return -1, ErrNotYourTurn
	}
	if column < 0 || column >= g.Rules.Cols {
		return -1, ErrInvalidColumn
	}
	if g.Board[0][column] != EmptyCell {
		return -1, ErrColumnFull
	}

	row := dropRow(g.Board, column)
	g.Board[row][column] = userID
	g.Moves++

	switch {
	case HasRun(g.Board, userID, g.Rules.Target):
		g.finish(userID, seat.Nickname+" wins!")
	case boardFull(g.Board):
		g.Status.Phase = PhaseDraw
		g.Status.Message = "It's a draw!"
	default:
		g.Status.CurrentPlayer = g.opponent(userID)
		g.Status.Deadline = now.Add(g.Rules.TurnDuration)
	}
	return row, nil
}

// Tick applies the turn clock. If the game is in progress and the deadline
// has passed, the current turn is forfeited according to Rules.OnTimeout.
// At most one transition happens per call. Reports whether anything changed.
func (g *Game) Tick(now time.Time) bool {
	if g.Status.Phase != PhaseInProgress || !now.After(g.Status.Deadline) {
		return false
	}
	next := g.opponent(g.Status.CurrentPlayer)
	if g.Rules.OnTimeout == ForfeitGame {
		seat, _ := g.Seat(next)
		g.finish(next, seat.Nickname+" wins on time!")
		return true
	}
	g.Status.CurrentPlayer = next
	g.Status.Deadline = now.Add(g.Rules.TurnDuration)
	return true
}

// Clone returns a deep copy that shares no memory with g.
func (g *Game) Clone() *Game {
	c := *g
	c.Board = make([][]string, len(g.Board))
	for r, row := range g.Board {
		c.Board[r] = append([]string(nil), row...)
	}
	c.Players = append([]Seat(nil), g.Players...)
	c.Spectators = make(map[string]string, len(g.Spectators))
	for id, nick := range g.Spectators {
		c.Spectators[id] = nick
	}
	return &c
}

// finish keeps CurrentPlayer and Deadline as they are.
func (g *Game) finish(winner, message string) {
	g.Status.Phase = PhaseFinished
	g.Status.Winner = winner
	g.Status.Message = message
}

// opponent returns the other seated player's id, or "" if there is none.
func (g *Game) opponent(id string) string {
	for _, s := range g.Players {
		if s.ID != id {
			return s.ID
		}
	}
	return ""
}

func validateIdentity(id, nickname string) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("%w: user id and nickname are required", ErrInvalidInput)
	}
	return nil
}
