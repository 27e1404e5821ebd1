package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// boardWith returns a rows x cols board with id at each (row, col) pair.
func boardWith(rows, cols int, id string, cells ...[2]int) [][]string {
	b := newBoard(rows, cols)
	for _, c := range cells {
		b[c[0]][c[1]] = id
	}
	return b
}

// rotate turns b a quarter turn clockwise.
func rotate(b [][]string) [][]string {
	rows, cols := len(b), len(b[0])
	out := newBoard(cols, rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c][rows-1-r] = b[r][c]
		}
	}
	return out
}

func TestHasRun(t *testing.T) {
	tests := []struct {
		name   string
		board  [][]string
		target int
		want   bool
	}{
		{"horizontal bottom-left corner", boardWith(6, 7, "p1", [2]int{5, 0}, [2]int{5, 1}, [2]int{5, 2}, [2]int{5, 3}), 4, true},
		{"horizontal top-right corner", boardWith(6, 7, "p1", [2]int{0, 3}, [2]int{0, 4}, [2]int{0, 5}, [2]int{0, 6}), 4, true},
		{"vertical right edge", boardWith(6, 7, "p1", [2]int{2, 6}, [2]int{3, 6}, [2]int{4, 6}, [2]int{5, 6}), 4, true},
		{"vertical top edge", boardWith(6, 7, "p1", [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}), 4, true},
		{"down-right from top-left", boardWith(6, 7, "p1", [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}), 4, true},
		{"down-right into bottom-right", boardWith(6, 7, "p1", [2]int{2, 3}, [2]int{3, 4}, [2]int{4, 5}, [2]int{5, 6}), 4, true},
		{"up-right from bottom-left", boardWith(6, 7, "p1", [2]int{5, 0}, [2]int{4, 1}, [2]int{3, 2}, [2]int{2, 3}), 4, true},
		{"up-right into top-right", boardWith(6, 7, "p1", [2]int{3, 3}, [2]int{2, 4}, [2]int{1, 5}, [2]int{0, 6}), 4, true},
		{"gap breaks row", boardWith(6, 7, "p1", [2]int{5, 0}, [2]int{5, 1}, [2]int{5, 3}, [2]int{5, 4}), 4, false},
		{"three is short", boardWith(6, 7, "p1", [2]int{5, 0}, [2]int{5, 1}, [2]int{5, 2}), 4, false},
		{"no wrap across rows", boardWith(6, 7, "p1", [2]int{4, 5}, [2]int{4, 6}, [2]int{5, 0}, [2]int{5, 1}), 4, false},
		{"gomoku four of five", boardWith(15, 15, "p1", [2]int{7, 3}, [2]int{7, 4}, [2]int{7, 5}, [2]int{7, 6}), 5, false},
		{"gomoku five diagonal", boardWith(15, 15, "p1", [2]int{10, 10}, [2]int{11, 11}, [2]int{12, 12}, [2]int{13, 13}, [2]int{14, 14}), 5, true},
		{"gomoku five up-right", boardWith(15, 15, "p1", [2]int{14, 0}, [2]int{13, 1}, [2]int{12, 2}, [2]int{11, 3}, [2]int{10, 4}), 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasRun(tt.board, "p1", tt.target))
			assert.False(t, HasRun(tt.board, "p2", tt.target), "other owner never matches")
		})
	}
}

func TestHasRun_MixedOwnersBreakRun(t *testing.T) {
	b := boardWith(6, 7, "p1", [2]int{5, 0}, [2]int{5, 1}, [2]int{5, 3})
	b[5][2] = "p2"
	assert.False(t, HasRun(b, "p1", 3))
	assert.False(t, HasRun(b, EmptyCell, 3))
}

func TestHasRun_RotationSymmetry(t *testing.T) {
	horizontal := boardWith(6, 7, "p1", [2]int{5, 1}, [2]int{5, 2}, [2]int{5, 3}, [2]int{5, 4})
	vertical := rotate(horizontal)

	assert.Len(t, vertical, 7)
	assert.Len(t, vertical[0], 6)
	for r := 1; r <= 4; r++ {
		assert.Equal(t, "p1", vertical[r][0])
	}
	assert.True(t, HasRun(horizontal, "p1", 4))
	assert.True(t, HasRun(vertical, "p1", 4))

	diagonal := boardWith(6, 7, "p1", [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})
	assert.True(t, HasRun(rotate(diagonal), "p1", 4), "down-right becomes up-right")

	gapped := boardWith(6, 7, "p1", [2]int{5, 0}, [2]int{5, 1}, [2]int{5, 3}, [2]int{5, 4})
	assert.False(t, HasRun(rotate(gapped), "p1", 4))
}

func TestApplyMove_HorizontalWin(t *testing.T) {
	g := startedGame(t, mustRules(t, VariantConnectFour))
	// p1 fills the bottom row left to right; p2 stacks on top of each disc.
	for col := 0; col < 3; col++ {
		_, err := g.ApplyMove("p1", col, t0)
		assert.NoError(t, err)
		_, err = g.ApplyMove("p2", col, t0)
		assert.NoError(t, err)
	}
	row, err := g.ApplyMove("p1", 3, t0)
	assert.NoError(t, err)
	assert.Equal(t, 5, row)
	assert.Equal(t, PhaseFinished, g.Status.Phase)
	assert.Equal(t, "p1", g.Status.Winner)
	assert.Equal(t, "Alice wins!", g.Status.Message)
}
