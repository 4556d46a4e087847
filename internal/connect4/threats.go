package connect4

// CountThreats returns the number of runs holding three pieces of p and one
// empty cell.
func CountThreats(b *Board, p Piece) int {
	n := 0
	for _, w := range windows {
		mine, _, empty := b.tally(w, p)
		if mine == 3 && empty == 1 {
			n++
		}
	}
	return n
}

// DetectStairstepPatterns scores diagonal stair shapes for ai minus those of
// its opponent. Opponent shapes weigh more.
func DetectStairstepPatterns(b *Board, ai Piece) int {
	return stairsteps(b, ai, 25, 40) - stairsteps(b, ai.Opponent(), 30, 50)
}

func stairsteps(b *Board, p Piece, step, stair int) int {
	score := 0
	for col := 0; col <= Columns-WinLength; col++ {
		for row := Rows - 3; row < Rows; row++ {
			if b.cells[row][col] != p {
				continue
			}
			if b.cells[row-1][col] == Empty && b.cells[row-1][col+1] == p {
				score += step
			}
			if b.cells[row-1][col+1] == p && b.cells[row-2][col+2] == Empty && b.cells[row-1][col+2] == Empty {
				score += stair
			}
		}
	}
	return score
}

// FindWinningMove returns the lowest column where dropping p wins at once.
func FindWinningMove(b *Board, p Piece) (int, bool) {
	for col := 0; col < Columns; col++ {
		if winsAt(b, col, p) {
			return col, true
		}
	}
	return -1, false
}

// winsAt tries p in col and reports whether it completes a line. The board
// is restored before returning.
func winsAt(b *Board, col int, p Piece) bool {
	if !b.IsValidMove(col) {
		return false
	}
	row, err := b.Drop(col, p)
	if err != nil {
		return false
	}
	win := b.WinningLineThrough(row, col)
	b.Undo()
	return win
}

// FindForcedWinInTwo returns a column after which ai would have at least two
// distinct immediate winning follow-ups.
func FindForcedWinInTwo(b *Board, ai Piece) (int, bool) {
	for col := 0; col < Columns; col++ {
		if !b.IsValidMove(col) {
			continue
		}
		if _, err := b.Drop(col, ai); err != nil {
			continue
		}
		wins := 0
		for next := 0; next < Columns; next++ {
			if winsAt(b, next, ai) {
				wins++
			}
		}
		b.Undo()
		if wins >= 2 {
			return col, true
		}
	}
	return -1, false
}

// FindTrapSetup looks for a move that maximizes ai's open threes across the
// opponent replies that leave the opponent with no open three of its own.
func FindTrapSetup(b *Board, ai Piece) (int, bool) {
	opp := ai.Opponent()
	best, bestThreats := -1, 0
	for col := 0; col < Columns; col++ {
		if !b.IsValidMove(col) {
			continue
		}
		if _, err := b.Drop(col, ai); err != nil {
			continue
		}
		quiet, ours := false, 0
		for reply := 0; reply < Columns; reply++ {
			if !b.IsValidMove(reply) {
				continue
			}
			if _, err := b.Drop(reply, opp); err != nil {
				continue
			}
			if CountThreats(b, opp) == 0 {
				quiet = true
				ours = max(ours, CountThreats(b, ai))
			}
			b.Undo()
		}
		b.Undo()
		if quiet && ours > bestThreats {
			best, bestThreats = col, ours
		}
	}
	return best, best >= 0
}
