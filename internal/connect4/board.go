package connect4

import (
	"errors"
	"fmt"
)

// Board dimensions. Row 0 is the top of the grid and row Rows-1 the bottom.
const (
	Rows         = 6
	Columns      = 7
	WinLength    = 4
	CenterColumn = Columns / 2
	BottomRow    = Rows - 1
)

// Piece is the content of a single cell.
type Piece byte

const (
	Empty Piece = iota
	Red
	Yellow
)

// Opponent returns the other color. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case Red:
		return Yellow
	case Yellow:
		return Red
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	}
	return "empty"
}

// ErrInvalidMove is returned when a piece is dropped into a full or
// out-of-range column. The board is left untouched.
var ErrInvalidMove = errors.New("invalid move")

// Move records where a piece landed.
type Move struct {
	Row   int
	Col   int
	Piece Piece
}

// Board is a 6x7 Connect 4 grid. The zero value is an empty board.
// Boards are plain values: assigning one copies the whole position.
type Board struct {
	cells [Rows][Columns]Piece
	moves [Rows * Columns]Move
	count int
	hash  uint64
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// At returns the piece at (row, col), or Empty when out of range.
func (b *Board) At(row, col int) Piece {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return Empty
	}
	return b.cells[row][col]
}

// IsValidMove reports whether col is in range and its top cell is empty.
func (b *Board) IsValidMove(col int) bool {
	return col >= 0 && col < Columns && b.cells[0][col] == Empty
}

// Drop places p in the lowest empty cell of col and returns the landing row.
func (b *Board) Drop(col int, p Piece) (int, error) {
	if p != Red && p != Yellow {
		return -1, fmt.Errorf("%w: cannot drop %s piece", ErrInvalidMove, p)
	}
	if col < 0 || col >= Columns {
		return -1, fmt.Errorf("%w: column %d out of range", ErrInvalidMove, col)
	}
	for row := BottomRow; row >= 0; row-- {
		if b.cells[row][col] != Empty {
			continue
		}
		b.cells[row][col] = p
		b.moves[b.count] = Move{Row: row, Col: col, Piece: p}
		b.count++
		b.hash ^= zobristKey(row, col, p)
		return row, nil
	}
	return -1, fmt.Errorf("%w: column %d is full", ErrInvalidMove, col)
}

// Undo removes the most recently dropped piece. It is the exact inverse of
// the last successful Drop.
func (b *Board) Undo() (Move, bool) {
	if b.count == 0 {
		return Move{}, false
	}
	b.count--
	m := b.moves[b.count]
	b.cells[m.Row][m.Col] = Empty
	b.hash ^= zobristKey(m.Row, m.Col, m.Piece)
	b.moves[b.count] = Move{}
	return m, true
}

// LastMove returns the most recent move, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.count == 0 {
		return Move{}, false
	}
	return b.moves[b.count-1], true
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	return b.count
}

// Hash returns the position fingerprint. It depends only on which pieces
// occupy which cells, not on the order they were played.
func (b *Board) Hash() uint64 {
	return b.hash
}

// IsFull reports whether the top row has no empty cell.
func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b.cells[0][col] == Empty {
			return false
		}
	}
	return true
}

// ValidMoves returns the playable columns in ascending order.
func (b *Board) ValidMoves() []int {
	cols := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.IsValidMove(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// WinningLineThrough reports whether the piece at (row, col) is part of four
// or more same-colored pieces in a line. Each axis is scanned outward in both
// directions, so the cell may sit anywhere within the run.
func (b *Board) WinningLineThrough(row, col int) bool {
	p := b.At(row, col)
	if p == Empty {
		return false
	}
	for _, d := range directions {
		n := 1 + b.run(row, col, d[0], d[1], p) + b.run(row, col, -d[0], -d[1], p)
		if n >= WinLength {
			return true
		}
	}
	return false
}

func (b *Board) run(row, col, dr, dc int, p Piece) int {
	n := 0
	for r, c := row+dr, col+dc; b.At(r, c) == p; r, c = r+dr, c+dc {
		n++
	}
	return n
}

// HasWinner reports whether the last move completed four in a row.
func (b *Board) HasWinner() bool {
	m, ok := b.LastMove()
	return ok && b.WinningLineThrough(m.Row, m.Col)
}
