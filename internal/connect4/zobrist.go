package connect4

// zobristKeys holds one random key per (cell, color). XOR-ing the keys of
// occupied cells gives a fingerprint that ignores move order.
var zobristKeys = newZobristTable(0x9e3779b97f4a7c15)

type zobristTable [Rows * Columns][2]uint64

func newZobristTable(seed uint64) *zobristTable {
	rng := splitmix64{state: seed}
	var t zobristTable
	for i := range t {
		t[i][0] = rng.next()
		t[i][1] = rng.next()
	}
	return &t
}

func zobristKey(row, col int, p Piece) uint64 {
	return zobristKeys[row*Columns+col][p-1]
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
