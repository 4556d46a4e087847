// Package tictactoe is a three-by-three noughts and crosses game with a
// simple rule-based computer opponent.
package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Cells are numbered 0-8, left to right and top to bottom.
const Cells = 9

// Center is the middle cell.
const Center = 4

var (
	// ErrGameOver is returned for moves made after a win or draw.
	ErrGameOver = errors.New("game is over")
	// ErrInvalidMove is returned for occupied or out of range cells.
	ErrInvalidMove = errors.New("invalid move")
)

// Mark is the content of a cell.
type Mark byte

const (
	Empty Mark = iota
	X
	O
)

// Opponent returns the other mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (m Mark) String() string {
	switch m {
	case X:
		return "❌"
	case O:
		return "⭕"
	}
	return "⬜"
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

var (
	corners = []int{0, 2, 6, 8}
	sides   = []int{1, 3, 5, 7}
)

// Game is a single game. X moves first.
type Game struct {
	board  [Cells]Mark
	turn   Mark
	winner Mark
	over   bool
	moves  int
}

func NewGame() *Game {
	return &Game{turn: X}
}

func (g *Game) Turn() Mark   { return g.turn }
func (g *Game) Winner() Mark { return g.winner }
func (g *Game) IsOver() bool { return g.over }
func (g *Game) IsDraw() bool { return g.over && g.winner == Empty }
func (g *Game) Moves() int   { return g.moves }

// At returns the mark in pos.
func (g *Game) At(pos int) Mark {
	return g.board[pos]
}

// IsValidMove reports whether pos is on the board and empty.
func (g *Game) IsValidMove(pos int) bool {
	return pos >= 0 && pos < Cells && g.board[pos] == Empty
}

// Play marks pos for the player to move, updates the result and passes the
// turn.
func (g *Game) Play(pos int) error {
	if g.over {
		return ErrGameOver
	}
	if !g.IsValidMove(pos) {
		return fmt.Errorf("%w: cell %d", ErrInvalidMove, pos)
	}
	g.board[pos] = g.turn
	g.moves++
	switch {
	case hasLine(&g.board, g.turn):
		g.over, g.winner = true, g.turn
	case g.moves == Cells:
		g.over = true
	default:
		g.turn = g.turn.Opponent()
	}
	return nil
}

func hasLine(b *[Cells]Mark, m Mark) bool {
	for _, l := range lines {
		if b[l[0]] == m && b[l[1]] == m && b[l[2]] == m {
			return true
		}
	}
	return false
}

// winningCell returns a cell that completes a line for m.
func (g *Game) winningCell(m Mark) (int, bool) {
	for pos := 0; pos < Cells; pos++ {
		if g.board[pos] != Empty {
			continue
		}
		g.board[pos] = m
		win := hasLine(&g.board, m)
		g.board[pos] = Empty
		if win {
			return pos, true
		}
	}
	return -1, false
}

func (g *Game) randomFree(cells []int, rng *rand.Rand) (int, bool) {
	var free []int
	for _, pos := range cells {
		if g.board[pos] == Empty {
			free = append(free, pos)
		}
	}
	if len(free) == 0 {
		return -1, false
	}
	return free[rng.Intn(len(free))], true
}

// ChooseMove picks the computer's cell for the player to move: win, block,
// take the center, then a random corner, then a random side.
func ChooseMove(g *Game, rng *rand.Rand) (int, error) {
	if g.over {
		return -1, ErrGameOver
	}
	if pos, ok := g.winningCell(g.turn); ok {
		return pos, nil
	}
	if pos, ok := g.winningCell(g.turn.Opponent()); ok {
		return pos, nil
	}
	if g.board[Center] == Empty {
		return Center, nil
	}
	if pos, ok := g.randomFree(corners, rng); ok {
		return pos, nil
	}
	if pos, ok := g.randomFree(sides, rng); ok {
		return pos, nil
	}
	return -1, ErrGameOver
}

// PlayAI lets the computer move for the player to move and returns the cell.
func (g *Game) PlayAI(rng *rand.Rand) (int, error) {
	pos, err := ChooseMove(g, rng)
	if err != nil {
		return -1, err
	}
	return pos, g.Play(pos)
}

// Render draws the board as three rows of emoji.
func (g *Game) Render() string {
	var sb strings.Builder
	for pos, m := range g.board {
		sb.WriteString(m.String())
		switch {
		case pos == Cells-1:
		case pos%3 == 2:
			sb.WriteByte('\n')
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
