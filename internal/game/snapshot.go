package game

import "time"

// Snapshot is a read-only view of a game, safe to hand to the transport
// layer. It shares no memory with the Game it was taken from.
type Snapshot struct {
	Code          string
	Rules         Rules
	Board         [][]string
	Players       []Seat
	Spectators    map[string]string
	Phase         Phase
	CurrentPlayer string
	GameOver      bool
	Winner        string
	Message       string
	// Deadline is nil once the game is over. While the game is live it is
	// the armed deadline, or now when no clock has been armed yet.
	Deadline *time.Time
	// TurnDeadline is the last armed deadline, frozen once the game is
	// over. Zero while waiting for an opponent.
	TurnDeadline time.Time
}

// Snapshot returns a copy of the public state of g as seen at now.
func (g *Game) Snapshot(now time.Time) Snapshot {
	c := g.Clone()
	s := Snapshot{
		Code:          c.Code,
		Rules:         c.Rules,
		Board:         c.Board,
		Players:       c.Players,
		Spectators:    c.Spectators,
		Phase:         c.Status.Phase,
		CurrentPlayer: c.Status.CurrentPlayer,
		GameOver:      c.GameOver(),
		Winner:        c.Status.Winner,
		Message:       c.Status.Message,
		TurnDeadline:  c.Status.Deadline,
	}
	if !s.GameOver {
		d := c.Status.Deadline
		if d.IsZero() {
			d = now
		}
		s.Deadline = &d
	}
	return s
}
