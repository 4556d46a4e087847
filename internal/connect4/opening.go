package connect4

// OpeningMove returns a book reply for the first few plies. It only answers
// when at most four pieces are on the board.
func OpeningMove(b *Board, ai Piece) (int, bool) {
	if b.Count() > 4 {
		return -1, false
	}
	opp := ai.Opponent()
	bottom := b.cells[BottomRow]

	switch b.Count() {
	case 0:
		return CenterColumn, true
	case 1:
		if bottom[CenterColumn] == opp {
			return CenterColumn - 1, true
		}
		return CenterColumn, true
	case 3:
		switch {
		case bottom[CenterColumn] == ai:
			if bottom[0] == opp || bottom[1] == opp {
				return 2, true
			}
			return 4, true
		case bottom[2] == ai:
			if b.IsValidMove(4) {
				return 4, true
			}
		case bottom[4] == ai:
			if b.IsValidMove(2) {
				return 2, true
			}
		}
	}
	return -1, false
}
