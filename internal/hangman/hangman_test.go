package hangman

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestGuess(t *testing.T) {
	g := NewWithWord("Soviet Military", "red army")
	if g.Word != "RED ARMY" {
		t.Fatalf("Expected an upper case word, got %q", g.Word)
	}

	tests := []struct {
		letter  rune
		correct bool
		err     error
		left    int
		display string
	}{
		{'r', true, nil, 6, "R__ _R__"},
		{'R', false, ErrAlreadyGuessed, 6, "R__ _R__"},
		{'z', false, nil, 5, "R__ _R__"},
		{'1', false, ErrNotALetter, 5, "R__ _R__"},
		{'E', true, nil, 5, "RE_ _R__"},
		{'d', true, nil, 5, "RED _R__"},
		{'a', true, nil, 5, "RED AR__"},
		{'m', true, nil, 5, "RED ARM_"},
	}
	for _, tt := range tests {
		correct, err := g.Guess(tt.letter)
		if !errors.Is(err, tt.err) {
			t.Fatalf("Guess(%c): expected error %v, got %v", tt.letter, tt.err, err)
		}
		if correct != tt.correct {
			t.Errorf("Guess(%c): expected correct=%v, got %v", tt.letter, tt.correct, correct)
		}
		if g.AttemptsLeft() != tt.left {
			t.Errorf("Guess(%c): expected %d attempts left, got %d", tt.letter, tt.left, g.AttemptsLeft())
		}
		if g.Display() != tt.display {
			t.Errorf("Guess(%c): expected %q, got %q", tt.letter, tt.display, g.Display())
		}
	}
	if g.IsOver() {
		t.Fatal("Expected the game to continue with Y unguessed")
	}

	if _, err := g.Guess('y'); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !g.Won() || !g.IsOver() || g.Lost() {
		t.Errorf("Expected a win, got won=%v lost=%v", g.Won(), g.Lost())
	}
	if g.WrongGuesses() != 1 {
		t.Errorf("Expected 1 wrong guess, got %d", g.WrongGuesses())
	}
	if _, err := g.Guess('q'); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestLose(t *testing.T) {
	g := NewWithWord("Soviet Geography", "MIR")
	for _, r := range "ABCDEF" {
		if _, err := g.Guess(r); err != nil {
			t.Fatalf("Guess(%c) failed: %v", r, err)
		}
	}
	if !g.Lost() || g.Won() || !g.IsOver() {
		t.Errorf("Expected a loss, got won=%v lost=%v", g.Won(), g.Lost())
	}
	if _, err := g.Guess('M'); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestGuessedLetters(t *testing.T) {
	g := NewWithWord("Soviet Leaders", "LENIN")
	if got := g.GuessedLetters(); got != "No letters guessed yet." {
		t.Errorf("Unexpected empty list %q", got)
	}
	for _, r := range "zne" {
		g.Guess(r)
	}
	if got := g.GuessedLetters(); got != "✅ E ✅ N ❌ Z" {
		t.Errorf("Expected alphabetical hits and misses, got %q", got)
	}
	if !g.Guessed('n') || g.Guessed('L') || g.Guessed('!') {
		t.Error("Unexpected Guessed results")
	}
}

func TestGallows(t *testing.T) {
	g := NewWithWord("Soviet Leaders", "LENIN")
	if strings.Contains(g.Gallows(), "O") {
		t.Error("Expected an empty scaffold before any misses")
	}
	prev := g.Gallows()
	for _, r := range "ABCDFG" {
		g.Guess(r)
		cur := g.Gallows()
		if cur == prev {
			t.Errorf("Expected the drawing to change after missing %c", r)
		}
		if !strings.HasPrefix(cur, "```\n") || !strings.HasSuffix(cur, "```") {
			t.Errorf("Expected a code block, got %q", cur)
		}
		prev = cur
	}
	if !strings.Contains(prev, `/ \`) {
		t.Errorf("Expected both legs on the final drawing, got\n%s", prev)
	}
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		g := New(rng)
		found := false
		for _, c := range Categories {
			if c.Name != g.Category {
				continue
			}
			for _, w := range c.Words {
				found = found || w == g.Word
			}
		}
		if !found {
			t.Fatalf("Word %q is not in category %q", g.Word, g.Category)
		}
		if g.AttemptsLeft() != MaxAttempts {
			t.Errorf("Expected %d attempts, got %d", MaxAttempts, g.AttemptsLeft())
		}
		seen[g.Category] = true
	}
	if len(seen) < 2 {
		t.Errorf("Expected several categories, got %v", seen)
	}
}

func TestCategoriesAreGuessable(t *testing.T) {
	for _, c := range Categories {
		for _, w := range c.Words {
			for _, r := range w {
				if r != ' ' && !isLetter(r) {
					t.Errorf("Word %q in %s has unguessable %q", w, c.Name, r)
				}
			}
		}
	}
}
