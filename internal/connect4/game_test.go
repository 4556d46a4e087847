package connect4

import (
	"errors"
	"testing"
)

func TestGameAlternatesTurns(t *testing.T) {
	g := NewGame()
	if g.Turn() != Red {
		t.Fatalf("Expected red to move first, got %s", g.Turn())
	}
	m, err := g.Play(3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Piece != Red || m.Row != BottomRow || m.Col != 3 {
		t.Errorf("Unexpected move %+v", m)
	}
	if g.Turn() != Yellow {
		t.Errorf("Expected yellow to move, got %s", g.Turn())
	}
	if _, err := g.Play(Columns); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove, got %v", err)
	}
	if g.Turn() != Yellow || g.Moves() != 1 {
		t.Error("Expected a rejected move to keep the turn and board")
	}
}

func TestGameWin(t *testing.T) {
	g := NewGame()
	for _, col := range []int{3, 4, 3, 4, 3, 4, 3} {
		if _, err := g.Play(col); err != nil {
			t.Fatalf("Play(%d) failed: %v", col, err)
		}
	}
	if g.Status() != Won || g.Winner() != Red {
		t.Errorf("Expected red to win, got %s with winner %s", g.Status(), g.Winner())
	}
	if _, err := g.Play(0); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if g.IsValidMove(0) {
		t.Error("Expected no valid moves after the game ends")
	}
}

func TestGameDraw(t *testing.T) {
	g := NewGame()
	for i, col := range drawSequence() {
		if g.IsOver() {
			t.Fatalf("Game ended early after %d moves", i)
		}
		if _, err := g.Play(col); err != nil {
			t.Fatalf("Play(%d) failed: %v", col, err)
		}
	}
	if g.Status() != Draw || g.Winner() != Empty {
		t.Errorf("Expected a draw, got %s with winner %s", g.Status(), g.Winner())
	}
	if _, err := g.PlayAI(NewEngine(g.Turn())); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestGamePlayAI(t *testing.T) {
	g := NewGame()
	e := NewEngine(Yellow)
	if _, err := g.PlayAI(e); !errors.Is(err, ErrNotAITurn) {
		t.Errorf("Expected ErrNotAITurn, got %v", err)
	}
	if _, err := g.Play(3); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	d, err := g.PlayAI(e)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if d.Column != 2 {
		t.Errorf("Expected book reply in column 2, got %d", d.Column)
	}
	board := g.Board()
	if board.At(BottomRow, 2) != Yellow {
		t.Error("Expected the engine's piece at the bottom of column 2")
	}
	if g.Turn() != Red {
		t.Errorf("Expected red to move, got %s", g.Turn())
	}
}

func TestSelfPlayCompletes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full self-play in short mode")
	}
	g := NewGame()
	engines := map[Piece]*Engine{Red: NewEngine(Red), Yellow: NewEngine(Yellow)}
	for !g.IsOver() {
		if _, err := g.PlayAI(engines[g.Turn()]); err != nil {
			t.Fatalf("PlayAI after %d moves: %v", g.Moves(), err)
		}
	}
	if g.Moves() > Rows*Columns {
		t.Errorf("Expected at most %d moves, got %d", Rows*Columns, g.Moves())
	}
	if g.Status() == Won && g.Winner() == Empty {
		t.Error("Expected a winner color for a won game")
	}
}
