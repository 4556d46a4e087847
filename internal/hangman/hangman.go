// Package hangman is a state-approved word guessing game.
package hangman

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// MaxAttempts is the number of wrong guesses that hangs the comrade.
const MaxAttempts = 6

var (
	// ErrGameOver is returned for guesses made after a win or loss.
	ErrGameOver = errors.New("game is over")
	// ErrAlreadyGuessed is returned when a letter is guessed twice.
	ErrAlreadyGuessed = errors.New("letter already guessed")
	// ErrNotALetter is returned for anything outside A-Z.
	ErrNotALetter = errors.New("not a letter")
)

// Category is a themed word list.
type Category struct {
	Name  string
	Words []string
}

// Categories holds every word the game may pick. Words are upper case and
// may contain spaces.
var Categories = []Category{
	{"Soviet Leaders", []string{
		"LENIN", "STALIN", "KHRUSHCHEV", "BREZHNEV", "GORBACHEV",
		"ANDROPOV", "CHERNENKO", "MALENKOV", "BULGANIN", "KOSYGIN",
	}},
	{"Revolutionary Concepts", []string{
		"COMMUNISM", "SOCIALISM", "PROLETARIAT", "BOURGEOISIE", "REVOLUTION",
		"COLLECTIVIZATION", "VANGUARD", "DIALECTIC", "MATERIALISM", "CLASSLESS",
	}},
	{"Soviet Geography", []string{
		"MOSCOW", "LENINGRAD", "STALINGRAD", "VLADIVOSTOK", "MINSK",
		"SIBERIA", "URAL", "CRIMEA", "VOLGA", "BALTIC",
	}},
	{"Soviet Achievements", []string{
		"SPUTNIK", "VOSTOK", "INDUSTRIALIZATION", "LITERACY", "EDUCATION",
		"ELECTRIFICATION", "MIR", "COLLECTIVE", "SUBWAY", "HEALTHCARE",
	}},
	{"Soviet Military", []string{
		"KALASHNIKOV", "RED ARMY", "NAVY", "MISSILE", "PARTISAN",
		"DEFENSE", "PARADE", "GUARDS", "VICTORY", "MEDAL",
	}},
}

// Game is a single round of hangman.
type Game struct {
	Word     string
	Category string

	guessed      [26]bool
	attemptsLeft int
}

// New picks a random category and word.
func New(rng *rand.Rand) *Game {
	c := Categories[rng.Intn(len(Categories))]
	return NewWithWord(c.Name, c.Words[rng.Intn(len(c.Words))])
}

// NewWithWord starts a game on a known word.
func NewWithWord(category, word string) *Game {
	return &Game{
		Word:         strings.ToUpper(word),
		Category:     category,
		attemptsLeft: MaxAttempts,
	}
}

func (g *Game) AttemptsLeft() int { return g.attemptsLeft }
func (g *Game) WrongGuesses() int { return MaxAttempts - g.attemptsLeft }
func (g *Game) Lost() bool        { return g.attemptsLeft == 0 }
func (g *Game) IsOver() bool      { return g.Won() || g.Lost() }

// Won reports whether every letter of the word has been guessed.
func (g *Game) Won() bool {
	for _, r := range g.Word {
		if isLetter(r) && !g.guessed[r-'A'] {
			return false
		}
	}
	return true
}

// Guessed reports whether letter has been tried.
func (g *Game) Guessed(letter rune) bool {
	letter = toUpper(letter)
	return isLetter(letter) && g.guessed[letter-'A']
}

// Guess tries a letter and reports whether it is in the word. A miss costs
// an attempt.
func (g *Game) Guess(letter rune) (bool, error) {
	if g.IsOver() {
		return false, ErrGameOver
	}
	letter = toUpper(letter)
	if !isLetter(letter) {
		return false, fmt.Errorf("%w: %q", ErrNotALetter, letter)
	}
	if g.guessed[letter-'A'] {
		return false, fmt.Errorf("%w: %c", ErrAlreadyGuessed, letter)
	}
	g.guessed[letter-'A'] = true
	if strings.ContainsRune(g.Word, letter) {
		return true, nil
	}
	g.attemptsLeft--
	return false, nil
}

// Display shows guessed letters in place and underscores for the rest.
func (g *Game) Display() string {
	return strings.Map(func(r rune) rune {
		if isLetter(r) && !g.guessed[r-'A'] {
			return '_'
		}
		return r
	}, g.Word)
}

// GuessedLetters lists every guess in alphabetical order, marked as a hit
// or a miss.
func (g *Game) GuessedLetters() string {
	var parts []string
	for i, ok := range g.guessed {
		if !ok {
			continue
		}
		letter := rune('A' + i)
		mark := "❌"
		if strings.ContainsRune(g.Word, letter) {
			mark = "✅"
		}
		parts = append(parts, fmt.Sprintf("%s %c", mark, letter))
	}
	if len(parts) == 0 {
		return "No letters guessed yet."
	}
	return strings.Join(parts, " ")
}

var gallows = [MaxAttempts + 1][]string{
	{"     ", "     ", "     ", "     "},
	{"    O", "     ", "     ", "     "},
	{"    O", "    │", "     ", "     "},
	{"    O", "   /│", "     ", "     "},
	{"    O", "   /│\\", "     ", "     "},
	{"    O", "   /│\\", "   / ", "     "},
	{"    O", "   /│\\", "   / \\", "     "},
}

// Gallows draws the scaffold for the number of wrong guesses so far, as a
// Discord code block.
func (g *Game) Gallows() string {
	var sb strings.Builder
	sb.WriteString("```\n┌────┐\n│    │\n")
	for _, line := range gallows[g.WrongGuesses()] {
		sb.WriteString("│" + line + "\n")
	}
	sb.WriteString("└──────\n```")
	return sb.String()
}

func isLetter(r rune) bool { return r >= 'A' && r <= 'Z' }

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
