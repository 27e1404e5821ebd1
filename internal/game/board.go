package game

// axes are the four line directions as (dRow, dCol): horizontal, vertical,
// diagonal down-right, diagonal up-right.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

func newBoard(rows, cols int) [][]string {
	b := make([][]string, rows)
	for r := range b {
		b[r] = make([]string, cols)
		for c := range b[r] {
			b[r][c] = EmptyCell
		}
	}
	return b
}

// dropRow returns the highest-indexed empty row in col, or -1 if the column
// is full.
func dropRow(board [][]string, col int) int {
	for r := len(board) - 1; r >= 0; r-- {
		if board[r][col] == EmptyCell {
			return r
		}
	}
	return -1
}

// boardFull reports whether every column is topped out.
func boardFull(board [][]string) bool {
	if len(board) == 0 {
		return true
	}
	for _, cell := range board[0] {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// HasRun reports whether id owns target consecutive cells on any axis.
// Every window on the board is checked, not only those through the last
// placed disc.
func HasRun(board [][]string, id string, target int) bool {
	if id == EmptyCell || target <= 0 {
		return false
	}
	rows := len(board)
	for r := 0; r < rows; r++ {
		cols := len(board[r])
		for c := 0; c < cols; c++ {
			if board[r][c] != id {
				continue
			}
			for _, d := range axes {
				endR, endC := r+d[0]*(target-1), c+d[1]*(target-1)
				if endR < 0 || endR >= rows || endC < 0 || endC >= cols {
					continue
				}
				n := 1
				for n < target && board[r+d[0]*n][c+d[1]*n] == id {
					n++
				}
				if n == target {
					return true
				}
			}
		}
	}
	return false
}
