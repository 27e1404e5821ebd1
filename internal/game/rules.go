package game

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTurnDuration is the per-turn clock.
const DefaultTurnDuration = 30 * time.Second

// Variant presets.
const (
	VariantConnectFour = "connect4"
	VariantGomoku      = "gomoku"
)

// RulesForVariant returns the preset rules for a named variant:
// "connect4" is 6x7 with runs of 4, "gomoku" is 15x15 with runs of 5.
func RulesForVariant(name string) (Rules, error) {
	r := Rules{TurnDuration: DefaultTurnDuration, OnTimeout: SkipTurn}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", VariantConnectFour:
		r.Rows, r.Cols, r.Target = 6, 7, 4
	case VariantGomoku:
		r.Rows, r.Cols, r.Target = 15, 15, 5
	default:
		return Rules{}, fmt.Errorf("unknown board variant %q", name)
	}
	return r, nil
}

// ParseTimeoutPolicy accepts the config spellings of a TimeoutPolicy.
// Empty input means SkipTurn.
func ParseTimeoutPolicy(s string) (TimeoutPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip_turn", "skipturn", "skip":
		return SkipTurn, nil
	case "forfeit_game", "forfeitgame", "forfeit":
		return ForfeitGame, nil
	}
	return "", fmt.Errorf("unknown timeout policy %q", s)
}

// Validate rejects rule sets no board can satisfy.
func (r Rules) Validate() error {
	if r.Rows <= 0 || r.Cols <= 0 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", r.Rows, r.Cols)
	}
	if r.Target < 2 || (r.Target > r.Rows && r.Target > r.Cols) {
		return fmt.Errorf("target %d does not fit a %dx%d board", r.Target, r.Rows, r.Cols)
	}
	if r.TurnDuration <= 0 {
		return fmt.Errorf("turn duration must be positive, got %s", r.TurnDuration)
	}
	if r.OnTimeout != SkipTurn && r.OnTimeout != ForfeitGame {
		return fmt.Errorf("unknown timeout policy %q", r.OnTimeout)
	}
	return nil
}
