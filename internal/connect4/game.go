package connect4

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver is returned for moves made after a win or draw.
	ErrGameOver = errors.New("game is over")
	// ErrNotAITurn is returned when the engine is asked to move for the
	// wrong color.
	ErrNotAITurn = errors.New("not the engine's turn")
)

// Status is the state of a game.
type Status int

const (
	InProgress Status = iota
	Won
	Draw
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Draw:
		return "draw"
	}
	return "in progress"
}

// Game tracks turn order and the result on top of a Board. Red moves first.
type Game struct {
	board  Board
	turn   Piece
	status Status
	winner Piece
}

func NewGame() *Game {
	return &Game{turn: Red}
}

// Board returns a copy of the current position.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Turn() Piece    { return g.turn }
func (g *Game) Status() Status { return g.status }
func (g *Game) Winner() Piece  { return g.winner }
func (g *Game) Moves() int     { return g.board.Count() }
func (g *Game) IsOver() bool   { return g.status != InProgress }

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	return g.board.LastMove()
}

// IsValidMove reports whether the player to move may drop into col.
func (g *Game) IsValidMove(col int) bool {
	return !g.IsOver() && g.board.IsValidMove(col)
}

// Play drops the current player's piece into col, updates the result and
// passes the turn.
func (g *Game) Play(col int) (Move, error) {
	if g.IsOver() {
		return Move{}, ErrGameOver
	}
	row, err := g.board.Drop(col, g.turn)
	if err != nil {
		return Move{}, err
	}
	m := Move{Row: row, Col: col, Piece: g.turn}
	switch {
	case g.board.WinningLineThrough(row, col):
		g.status, g.winner = Won, g.turn
	case g.board.IsFull():
		g.status = Draw
	default:
		g.turn = g.turn.Opponent()
	}
	return m, nil
}

// PlayAI asks e for a move and plays it. e must play the color to move.
func (g *Game) PlayAI(e *Engine) (Decision, error) {
	if g.IsOver() {
		return Decision{}, ErrGameOver
	}
	if e.AI != g.turn {
		return Decision{}, fmt.Errorf("%w: engine plays %s, %s to move", ErrNotAITurn, e.AI, g.turn)
	}
	d, err := e.ChooseMove(&g.board)
	if err != nil {
		return Decision{}, err
	}
	if _, err := g.Play(d.Column); err != nil {
		return Decision{}, fmt.Errorf("engine chose column %d: %w", d.Column, err)
	}
	return d, nil
}
