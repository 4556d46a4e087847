package connect4

import (
	"errors"
	"math"
	"testing"
)

// drawSequence fills the board without either side connecting four.
func drawSequence() []int {
	var cols []int
	for i := 0; i < Rows; i++ {
		cols = append(cols, 0, 2, 1, 3, 4, 6, 5)
	}
	return cols
}

func TestSearchDepth(t *testing.T) {
	tests := []struct {
		pieces int
		want   int
	}{
		{0, 7},
		{9, 7},
		{10, 6},
		{19, 6},
		{20, 5},
		{41, 5},
	}
	for _, tt := range tests {
		if got := SearchDepth(tt.pieces); got != tt.want {
			t.Errorf("SearchDepth(%d): expected %d, got %d", tt.pieces, tt.want, got)
		}
	}
}

func TestChooseMoveRules(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) *Board
		column int
		reason Reason
	}{
		{
			name:   "first move takes the center",
			setup:  func(t *testing.T) *Board { return NewBoard() },
			column: 3, reason: ReasonOpening,
		},
		{
			name:   "answer center with column 2",
			setup:  func(t *testing.T) *Board { return play(t, 3) },
			column: 2, reason: ReasonOpening,
		},
		{
			name:   "answer edge with center",
			setup:  func(t *testing.T) *Board { return play(t, 0) },
			column: 3, reason: ReasonOpening,
		},
		{
			name:   "third ply with center held and left attack",
			setup:  func(t *testing.T) *Board { return play(t, 0, 3, 1) },
			column: 2, reason: ReasonOpening,
		},
		{
			name:   "third ply with center held and right attack",
			setup:  func(t *testing.T) *Board { return play(t, 6, 3, 5) },
			column: 4, reason: ReasonOpening,
		},
		{
			name:   "third ply holding column 2",
			setup:  func(t *testing.T) *Board { return play(t, 3, 2, 3) },
			column: 4, reason: ReasonOpening,
		},
		{
			name: "win beats block",
			setup: func(t *testing.T) *Board {
				b := NewBoard()
				stack(t, b, 0, Red)
				stack(t, b, 1, Red)
				stack(t, b, 2, Red)
				stack(t, b, 6, Yellow, Yellow, Yellow)
				return b
			},
			column: 6, reason: ReasonWin,
		},
		{
			name: "block opponent four",
			setup: func(t *testing.T) *Board {
				b := NewBoard()
				stack(t, b, 0, Red)
				stack(t, b, 1, Red)
				stack(t, b, 2, Red)
				stack(t, b, 6, Yellow, Yellow)
				return b
			},
			column: 3, reason: ReasonBlock,
		},
		{
			name: "fork with two open ends",
			setup: func(t *testing.T) *Board {
				b := NewBoard()
				stack(t, b, 2, Yellow, Red)
				stack(t, b, 3, Yellow, Red)
				return b
			},
			column: 1, reason: ReasonFork,
		},
	}

	e := NewEngine(Yellow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.setup(t)
			before := *b
			d, err := e.ChooseMove(b)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if d.Column != tt.column || d.Reason != tt.reason {
				t.Errorf("Expected column %d (%s), got %d (%s)", tt.column, tt.reason, d.Column, d.Reason)
			}
			if *b != before {
				t.Error("Expected ChooseMove to restore the board")
			}
		})
	}
}

func TestChooseMoveFullBoard(t *testing.T) {
	b := play(t, drawSequence()...)
	_, err := NewEngine(Yellow).ChooseMove(b)
	if !errors.Is(err, ErrNoMoves) {
		t.Errorf("Expected ErrNoMoves, got %v", err)
	}
}

func TestSearchFindsImmediateWin(t *testing.T) {
	b := NewBoard()
	stack(t, b, 0, Red, Red)
	stack(t, b, 1, Red)
	stack(t, b, 6, Yellow, Yellow, Yellow)
	before := *b

	d := NewEngine(Yellow).Search(b, 5)
	if d.Column != 6 {
		t.Errorf("Expected column 6, got %d", d.Column)
	}
	if d.Score != WinScore {
		t.Errorf("Expected score %d, got %d", WinScore, d.Score)
	}
	if d.Depth != 1 {
		t.Errorf("Expected search to stop after depth 1, got %d", d.Depth)
	}
	if *b != before {
		t.Error("Expected Search to restore the board")
	}
}

func TestSearchBlocks(t *testing.T) {
	b := NewBoard()
	stack(t, b, 0, Red)
	stack(t, b, 1, Red)
	stack(t, b, 2, Red)
	stack(t, b, 6, Yellow, Yellow)

	d := NewEngine(Yellow).Search(b, 2)
	if d.Column != 3 {
		t.Errorf("Expected search to block at column 3, got %d", d.Column)
	}
	if d.Reason != ReasonSearch || d.Depth != 2 {
		t.Errorf("Expected a depth 2 search decision, got %s at depth %d", d.Reason, d.Depth)
	}
	if d.Score <= -WinThreshold {
		t.Errorf("Expected blocking to avoid a forced loss, got score %d", d.Score)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	b := play(t, 3, 3, 2, 4, 4, 2, 5)
	e := &Engine{AI: Yellow, MaxDepth: 4}

	first, err := e.ChooseMove(b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := e.ChooseMove(b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first.Column != second.Column || first.Reason != second.Reason || first.Score != second.Score {
		t.Errorf("Expected identical decisions, got %+v and %+v", first, second)
	}
	if !b.IsValidMove(first.Column) {
		t.Errorf("Expected a legal column, got %d", first.Column)
	}
}

func TestFallbackMove(t *testing.T) {
	b := NewBoard()
	if got := fallbackMove(b); got != CenterColumn {
		t.Errorf("Expected center, got %d", got)
	}
	stack(t, b, 3, Red, Yellow, Red, Yellow, Red, Yellow)
	if got := fallbackMove(b); got != 2 {
		t.Errorf("Expected column 2 once the center is full, got %d", got)
	}
	if got := fallbackMove(play(t, drawSequence()...)); got != -1 {
		t.Errorf("Expected -1 on a full board, got %d", got)
	}
}

func newSearcher(ai Piece) *searcher {
	return &searcher{ai: ai, opp: ai.Opponent(), table: make(transpositionTable)}
}

func TestMinimaxTableDepth(t *testing.T) {
	const seeded = 12345
	tests := []struct {
		name      string
		seedDepth int
		wantHit   bool
	}{
		{"shallower entry ignored", 1, false},
		{"shallower by one ignored", 2, false},
		{"equal depth entry used", 3, true},
		{"deeper entry used", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := play(t, 3, 3)
			s := newSearcher(Red)
			root := b.Hash()
			s.table[root] = ttEntry{score: seeded, depth: tt.seedDepth}

			col, score := s.minimax(b, 3, true, math.MinInt, math.MaxInt)
			if tt.wantHit {
				if col != -1 || score != seeded {
					t.Errorf("Expected the stored (-1, %d), got (%d, %d)", seeded, col, score)
				}
				if s.hits != 1 || s.nodes != 1 {
					t.Errorf("Expected one node and one hit, got %d nodes and %d hits", s.nodes, s.hits)
				}
				return
			}
			if col < 0 || !b.IsValidMove(col) {
				t.Errorf("Expected a real column from a fresh search, got %d", col)
			}
			if score == seeded {
				t.Error("Expected the shallow score to be searched over")
			}
			if e := s.table[root]; e.depth != 3 || e.score != score {
				t.Errorf("Expected the root entry to be rewritten at depth 3 with %d, got %+v", score, e)
			}
		})
	}
}

func TestMinimaxSkipsDepthOneNodes(t *testing.T) {
	tests := []struct {
		name      string
		moves     []int
		depth     int
		wantCol   int
		wantScore int
		tableSize int
	}{
		{"quiet position at depth 1", []int{3, 3}, 1, -2, 0, 0},
		{"immediate win at depth 1", []int{0, 0, 1, 1, 2, 2}, 1, 3, WinScore, 0},
		{"quiet position stores only the root at depth 2", []int{3, 3}, 2, -2, 0, 1},
		{"immediate win stored at depth 2", []int{0, 0, 1, 1, 2, 2}, 2, 3, WinScore, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := play(t, tt.moves...)
			s := newSearcher(Red)
			col, score := s.minimax(b, tt.depth, true, math.MinInt, math.MaxInt)

			// -2 means any legal column
			if tt.wantCol != -2 && (col != tt.wantCol || score != tt.wantScore) {
				t.Errorf("Expected (%d, %d), got (%d, %d)", tt.wantCol, tt.wantScore, col, score)
			}
			if col < 0 {
				t.Errorf("Expected a column, got %d", col)
			}
			if len(s.table) != tt.tableSize {
				t.Errorf("Expected %d table entries, got %d", tt.tableSize, len(s.table))
			}
			if tt.tableSize == 1 {
				if e, ok := s.table[b.Hash()]; !ok || e.depth != tt.depth {
					t.Errorf("Expected the root stored at depth %d, got %+v", tt.depth, e)
				}
			}
		})
	}
}
