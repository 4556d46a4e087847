package connect4

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoMoves is returned when the engine is asked to move on a full board.
var ErrNoMoves = errors.New("no legal moves")

// Reason names the rule that produced a decision.
type Reason string

const (
	ReasonOpening  Reason = "opening"
	ReasonWin      Reason = "win"
	ReasonBlock    Reason = "block"
	ReasonFork     Reason = "fork"
	ReasonTrap     Reason = "trap"
	ReasonSearch   Reason = "search"
	ReasonFallback Reason = "fallback"
)

// Decision is the engine's chosen column and how it got there. Depth and
// Score are only set for search decisions.
type Decision struct {
	Column  int
	Reason  Reason
	Depth   int
	Score   int
	Nodes   int
	Elapsed time.Duration
}

// searchOrder tries the center first and works outward.
var searchOrder = [Columns]int{3, 2, 4, 1, 5, 0, 6}

// SearchDepth returns the iterative deepening limit for a board holding the
// given number of pieces.
func SearchDepth(pieces int) int {
	switch {
	case pieces < 10:
		return 7
	case pieces < 20:
		return 6
	}
	return 5
}

// Engine picks moves for one color.
type Engine struct {
	AI Piece
	// MaxDepth overrides SearchDepth when positive.
	MaxDepth int
}

func NewEngine(ai Piece) *Engine {
	return &Engine{AI: ai}
}

// ChooseMove returns the engine's column for b. The tactical rules are tried
// in priority order before falling back to a full search. b is used as
// scratch space and is restored before returning.
func (e *Engine) ChooseMove(b *Board) (Decision, error) {
	start := time.Now()
	if len(b.ValidMoves()) == 0 {
		return Decision{}, ErrNoMoves
	}

	rules := []struct {
		reason Reason
		find   func() (int, bool)
	}{
		{ReasonOpening, func() (int, bool) { return OpeningMove(b, e.AI) }},
		{ReasonWin, func() (int, bool) { return FindWinningMove(b, e.AI) }},
		{ReasonBlock, func() (int, bool) { return FindWinningMove(b, e.AI.Opponent()) }},
		{ReasonFork, func() (int, bool) { return FindForcedWinInTwo(b, e.AI) }},
		{ReasonTrap, func() (int, bool) { return FindTrapSetup(b, e.AI) }},
	}
	for _, r := range rules {
		if col, ok := r.find(); ok && b.IsValidMove(col) {
			d := Decision{Column: col, Reason: r.reason, Elapsed: time.Since(start)}
			log.Debug().Str("reason", string(d.Reason)).Int("column", col).Msg("connect4 rule move")
			return d, nil
		}
	}

	maxDepth := e.MaxDepth
	if maxDepth <= 0 {
		maxDepth = SearchDepth(b.Count())
	}
	d := e.Search(b, maxDepth)
	d.Elapsed = time.Since(start)
	return d, nil
}

// Search runs iterative deepening alpha-beta up to maxDepth plies. The move
// from the deepest completed iteration is returned; an iteration that proves
// a win ends the search early.
func (e *Engine) Search(b *Board, maxDepth int) Decision {
	s := &searcher{
		ai:    e.AI,
		opp:   e.AI.Opponent(),
		table: make(transpositionTable),
	}

	d := Decision{Column: -1, Reason: ReasonSearch}
	for depth := 1; depth <= maxDepth; depth++ {
		col, score := s.minimax(b, depth, true, math.MinInt, math.MaxInt)
		if col < 0 {
			continue
		}
		d.Column, d.Score, d.Depth = col, score, depth
		log.Debug().
			Int("depth", depth).
			Int("column", col).
			Int("score", score).
			Int("nodes", s.nodes).
			Int("tt-hits", s.hits).
			Int("tt-size", len(s.table)).
			Msg("connect4 iteration")
		if score > WinThreshold {
			break
		}
	}
	d.Nodes = s.nodes

	if d.Column < 0 || !b.IsValidMove(d.Column) {
		d = Decision{Column: fallbackMove(b), Reason: ReasonFallback}
	}
	return d
}

// fallbackMove returns the center if playable, else the first playable
// column in search order, or -1 on a full board.
func fallbackMove(b *Board) int {
	for _, col := range searchOrder {
		if b.IsValidMove(col) {
			return col
		}
	}
	return -1
}

type ttEntry struct {
	score int
	depth int
}

// transpositionTable maps position hashes to previously searched scores.
// One table lives for the length of a single decision.
type transpositionTable map[uint64]ttEntry

type searcher struct {
	ai, opp Piece
	table   transpositionTable
	nodes   int
	hits    int
}

// minimax returns the best column and its score from ai's point of view.
// The column is -1 at leaves and on table hits. Entries are only trusted
// when searched at least as deep as the current node, and depth-1 nodes are
// never stored.
func (s *searcher) minimax(b *Board, depth int, maximizing bool, alpha, beta int) (int, int) {
	s.nodes++
	if depth == 0 || b.IsFull() || b.HasWinner() {
		return -1, Evaluate(b, s.ai)
	}

	key := b.Hash()
	if e, ok := s.table[key]; ok && e.depth >= depth {
		s.hits++
		return -1, e.score
	}

	piece, best, win := s.opp, math.MaxInt, -WinScore
	if maximizing {
		piece, best, win = s.ai, math.MinInt, WinScore
	}
	bestCol := -1

	for _, col := range searchOrder {
		if !b.IsValidMove(col) {
			continue
		}
		row, err := b.Drop(col, piece)
		if err != nil {
			continue
		}
		if b.WinningLineThrough(row, col) {
			b.Undo()
			if depth > 1 {
				s.table[key] = ttEntry{score: win, depth: depth}
			}
			return col, win
		}
		_, score := s.minimax(b, depth-1, !maximizing, alpha, beta)
		b.Undo()

		if maximizing {
			if score > best {
				best, bestCol = score, col
			}
			alpha = max(alpha, best)
		} else {
			if score < best {
				best, bestCol = score, col
			}
			beta = min(beta, best)
		}
		if beta <= alpha {
			break
		}
	}

	if depth > 1 && bestCol >= 0 {
		s.table[key] = ttEntry{score: best, depth: depth}
	}
	return bestCol, best
}
