package tictactoe

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

// play marks cells alternately, X first.
func play(t *testing.T, cells ...int) *Game {
	t.Helper()
	g := NewGame()
	for _, pos := range cells {
		if err := g.Play(pos); err != nil {
			t.Fatalf("Play(%d) failed: %v", pos, err)
		}
	}
	return g
}

// position builds a game from nine characters of X, O and '.'.
func position(t *testing.T, cells string, turn Mark) *Game {
	t.Helper()
	if len(cells) != Cells {
		t.Fatalf("Expected %d cells, got %q", Cells, cells)
	}
	g := &Game{turn: turn}
	for pos, c := range cells {
		switch c {
		case 'X':
			g.board[pos] = X
		case 'O':
			g.board[pos] = O
		default:
			continue
		}
		g.moves++
	}
	return g
}

func TestPlayResults(t *testing.T) {
	tests := []struct {
		name   string
		cells  []int
		over   bool
		winner Mark
	}{
		{"in progress", []int{4, 0}, false, Empty},
		{"top row", []int{0, 3, 1, 4, 2}, true, X},
		{"middle column for O", []int{0, 1, 3, 4, 8, 7}, true, O},
		{"diagonal", []int{0, 1, 4, 2, 8}, true, X},
		{"anti-diagonal", []int{2, 0, 4, 1, 6}, true, X},
		{"draw", []int{0, 1, 2, 4, 3, 5, 7, 6, 8}, true, Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := play(t, tt.cells...)
			if g.IsOver() != tt.over || g.Winner() != tt.winner {
				t.Errorf("Expected over=%v winner=%s, got over=%v winner=%s", tt.over, tt.winner, g.IsOver(), g.Winner())
			}
			if g.Moves() != len(tt.cells) {
				t.Errorf("Expected %d moves, got %d", len(tt.cells), g.Moves())
			}
		})
	}
	if g := play(t, 0, 1, 2, 4, 3, 5, 7, 6, 8); !g.IsDraw() {
		t.Error("Expected a full board without a line to be a draw")
	}
}

func TestPlayInvalid(t *testing.T) {
	g := play(t, 4)
	if g.Turn() != O {
		t.Errorf("Expected O to move, got %s", g.Turn())
	}
	for _, pos := range []int{4, -1, 9} {
		if err := g.Play(pos); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("Play(%d): expected ErrInvalidMove, got %v", pos, err)
		}
	}
	if g.Turn() != O {
		t.Error("Expected an invalid move not to pass the turn")
	}

	won := play(t, 0, 3, 1, 4, 2)
	if err := won.Play(8); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if _, err := ChooseMove(won, rand.New(rand.NewSource(1))); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver from the computer, got %v", err)
	}
}

func TestChooseMove(t *testing.T) {
	tests := []struct {
		name  string
		cells string
		turn  Mark
		want  []int
	}{
		{"win beats block", "XX.OO....", X, []int{2}},
		{"block", "OO..X...X", X, []int{2}},
		{"center", "X........", O, []int{Center}},
		{"corner", "....X....", O, corners},
		{"side", "XOX.X.OXO", O, []int{3, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 20; seed++ {
				g := position(t, tt.cells, tt.turn)
				pos, err := ChooseMove(g, rand.New(rand.NewSource(seed)))
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if !slices.Contains(tt.want, pos) {
					t.Fatalf("Expected one of %v, got %d", tt.want, pos)
				}
			}
		})
	}
}

func TestChooseMoveVariesCorners(t *testing.T) {
	seen := map[int]bool{}
	for seed := int64(0); seed < 50; seed++ {
		pos, _ := ChooseMove(play(t, 4), rand.New(rand.NewSource(seed)))
		seen[pos] = true
	}
	if len(seen) < 2 {
		t.Errorf("Expected the computer to vary its corner, got %v", seen)
	}
}

func TestPlayAI(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 50; game++ {
		g := NewGame()
		for !g.IsOver() {
			_, canWin := g.winningCell(g.Turn())
			mover := g.Turn()
			pos, err := g.PlayAI(rng)
			if err != nil {
				t.Fatalf("PlayAI failed: %v", err)
			}
			if g.At(pos) != mover {
				t.Fatalf("Expected %s in cell %d, got %s", mover, pos, g.At(pos))
			}
			if canWin && g.Winner() != mover {
				t.Fatalf("Expected the computer to take its win, board:\n%s", g.Render())
			}
		}
		if g.Moves() > Cells {
			t.Fatalf("Expected at most %d moves, got %d", Cells, g.Moves())
		}
	}
}

func TestRender(t *testing.T) {
	g := play(t, 0, 4)
	want := "❌ ⬜ ⬜\n⬜ ⭕ ⬜\n⬜ ⬜ ⬜"
	if got := g.Render(); got != want {
		t.Errorf("Expected\n%s\ngot\n%s", want, got)
	}
}
