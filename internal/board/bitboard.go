package board

import "math/bits"

// Bitboard packs the 49 squares into the low bits of a uint64.
type Bitboard uint64

// FullBoard has all 49 playable squares set.
const FullBoard Bitboard = (1 << NumSquares) - 1

// SquareBB returns the singleton bitboard for sq.
func SquareBB(sq Square) Bitboard {
	return 1 << Bitboard(sq)
}

// PopLSB clears and returns the least-significant set square.
func (b *Bitboard) PopLSB() Square {
	sq := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return sq
}

// Count returns the number of set squares.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// Has reports whether sq is set.
func (b Bitboard) Has(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// neighbors1[sq] holds every square at Chebyshev distance 1 (clone range).
// neighbors2[sq] holds every square at Chebyshev distance exactly 2 (leap range).
var (
	neighbors1 [NumSquares]Bitboard
	neighbors2 [NumSquares]Bitboard
)

func init() {
	for sq := Square(0); int(sq) < NumSquares; sq++ {
		for other := Square(0); int(other) < NumSquares; other++ {
			if other == sq {
				continue
			}
			switch chebyshev(sq, other) {
			case 1:
				neighbors1[sq] |= SquareBB(other)
			case 2:
				neighbors2[sq] |= SquareBB(other)
			}
		}
	}
}

// Neighbors1 returns the clone-range mask around sq.
func Neighbors1(sq Square) Bitboard { return neighbors1[sq] }

// Neighbors2 returns the leap-range mask around sq.
func Neighbors2(sq Square) Bitboard { return neighbors2[sq] }
