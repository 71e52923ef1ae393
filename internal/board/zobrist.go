package board

// Zobrist hash keys for position hashing, built with a seeded PRNG so
// keys are reproducible across runs.
var (
	zobristStone      [2][NumSquares]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// prng implements xorshift64*.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for sq := 0; sq < NumSquares; sq++ {
			zobristStone[c][sq] = rng.next()
		}
	}
	zobristSideToMove = rng.next()
}

// ZobristStone returns the key for a stone of color c on sq.
func ZobristStone(c Color, sq Square) uint64 {
	return zobristStone[c][sq]
}

// ZobristSideToMove returns the key XORed in when the turn changes.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}
