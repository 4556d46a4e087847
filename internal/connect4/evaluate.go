package connect4

const (
	// WinScore is the magnitude assigned to a decided position.
	WinScore = 1000000
	// WinThreshold stops iterative deepening once a forced win is seen.
	WinThreshold = 900000
)

// window is one run of four cells that could hold a line. row is the
// reference row used for the bottom-row weighting.
type window struct {
	cells [WinLength][2]int
	row   int
}

// windows lists every four-cell run on the board, scanned in the order
// horizontal, vertical, down-right diagonal, up-right diagonal.
var windows = buildWindows()

func buildWindows() []window {
	var ws []window
	for row := 0; row < Rows; row++ {
		for col := 0; col <= Columns-WinLength; col++ {
			ws = append(ws, makeWindow(row, col, 0, 1))
		}
	}
	for col := 0; col < Columns; col++ {
		for row := 0; row <= Rows-WinLength; row++ {
			ws = append(ws, makeWindow(row, col, 1, 0))
		}
	}
	for row := 0; row <= Rows-WinLength; row++ {
		for col := 0; col <= Columns-WinLength; col++ {
			ws = append(ws, makeWindow(row, col, 1, 1))
		}
	}
	for row := WinLength - 1; row < Rows; row++ {
		for col := 0; col <= Columns-WinLength; col++ {
			ws = append(ws, makeWindow(row, col, -1, 1))
		}
	}
	return ws
}

func makeWindow(row, col, dr, dc int) window {
	w := window{row: row}
	for i := 0; i < WinLength; i++ {
		w.cells[i] = [2]int{row + i*dr, col + i*dc}
	}
	return w
}

// tally counts the pieces of p, of its opponent and the empty cells in w.
func (b *Board) tally(w window, p Piece) (mine, theirs, empty int) {
	for _, c := range w.cells {
		switch b.cells[c[0]][c[1]] {
		case Empty:
			empty++
		case p:
			mine++
		default:
			theirs++
		}
	}
	return mine, theirs, empty
}

// Evaluate scores b from the point of view of ai. Positive values favor ai.
// A win through the last move scores exactly WinScore or -WinScore.
func Evaluate(b *Board, ai Piece) int {
	if m, ok := b.LastMove(); ok && b.WinningLineThrough(m.Row, m.Col) {
		if m.Piece == ai {
			return WinScore
		}
		return -WinScore
	}

	opp := ai.Opponent()
	score := 0
	for row := 0; row < Rows; row++ {
		score += columnControl(b.cells[row][CenterColumn], ai, opp, 6)
		score += columnControl(b.cells[row][CenterColumn-1], ai, opp, 4)
		score += columnControl(b.cells[row][CenterColumn+1], ai, opp, 4)
	}

	for _, w := range windows {
		mine, theirs, empty := b.tally(w, ai)
		score += scoreWindow(mine, theirs, empty, w.row)
	}

	score += bottomRowDefense(b, opp)
	score += 25*CountThreats(b, ai) - 30*CountThreats(b, opp)
	score += DetectStairstepPatterns(b, ai)
	return score
}

func columnControl(p, ai, opp Piece, weight int) int {
	switch p {
	case ai:
		return weight
	case opp:
		return -weight
	}
	return 0
}

// scoreWindow rates a single run. Mixed runs are dead and score nothing.
// Opponent runs weigh slightly more so the engine prefers to defend.
func scoreWindow(mine, theirs, empty, row int) int {
	if mine > 0 && theirs > 0 {
		return 0
	}
	var s int
	switch {
	case mine == 4:
		s = 1000
	case mine == 3 && empty == 1:
		s = 100
	case mine == 2 && empty == 2:
		s = 10
	case mine == 1 && empty == 3:
		s = 1
	case theirs == 4:
		s = -1000
	case theirs == 3 && empty == 1:
		s = -120
	case theirs == 2 && empty == 2:
		s = -12
	case theirs == 1 && empty == 3:
		s = -1
	}
	switch row {
	case BottomRow:
		s *= 3
	case BottomRow - 1:
		s *= 2
	}
	return s
}

// bottomRowDefense penalizes opponent build-ups along the bottom row,
// where threats are immediately playable.
func bottomRowDefense(b *Board, opp Piece) int {
	score := 0
	for col := 0; col <= Columns-WinLength; col++ {
		theirs, empty := 0, 0
		for i := 0; i < WinLength; i++ {
			switch b.cells[BottomRow][col+i] {
			case opp:
				theirs++
			case Empty:
				empty++
			}
		}
		switch {
		case theirs == 2 && empty == 2:
			score -= 50
		case theirs == 3 && empty == 1:
			score -= 500
		}
	}
	return score
}
