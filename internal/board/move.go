package board

import "fmt"

// Move encodes an Ataxx move in 16 bits:
// bits 0-5: from square, bits 6-11: to square.
// A clone move (distance <= 1) is encoded with from == to; the source
// stone is not consumed, so which adjacent stone cloned is irrelevant.
// A leap move (distance == 2) is encoded with the real source square.
type Move uint16

// NoMove and NullMove use out-of-range square fields (>= NumSquares) so
// neither can collide with any real clone or leap move encoding.
const (
	NoMove   Move = 0xFFFF
	NullMove Move = 0xFFFE
)

// NewMove builds a move from source and destination squares.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewClone builds a clone move; by convention from == to.
func NewClone(to Square) Move {
	return NewMove(to, to)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// IsClone reports whether m clones (source stone is not consumed).
func (m Move) IsClone() bool {
	return m.From() == m.To()
}

// IsNull reports whether m is the pass sentinel.
func (m Move) IsNull() bool {
	return m == NullMove
}

func (m Move) String() string {
	switch m {
	case NoMove:
		return "(none)"
	case NullMove:
		return "0000"
	}
	if m.IsClone() {
		return m.To().String()
	}
	return m.From().String() + m.To().String()
}

// ParseMove parses UAI move notation: "0000" for a pass, "c3" for a
// clone, "a1b2" for a leap.
func ParseMove(s string) (Move, error) {
	if s == "0000" {
		return NullMove, nil
	}
	switch len(s) {
	case 2:
		sq, err := ParseSquare(s)
		if err != nil {
			return NoMove, err
		}
		return NewClone(sq), nil
	case 4:
		from, err := ParseSquare(s[0:2])
		if err != nil {
			return NoMove, err
		}
		to, err := ParseSquare(s[2:4])
		if err != nil {
			return NoMove, err
		}
		return NewMove(from, to), nil
	default:
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
}

// MoveList is a fixed-size, allocation-free list of candidate moves.
// 256 matches libataxx's own move buffer size: a dense position can
// legally generate well over 128 moves (e.g. a near-checkerboard
// stone layout yields over 130 leaps and clones combined).
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Set overwrites the move at index i.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Swap exchanges the moves at i and j.
func (ml *MoveList) Swap(i, j int) { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// Clear empties the list.
func (ml *MoveList) Clear() { ml.count = 0 }

// Slice returns the populated portion of the list.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.count] }

// UndoInfo is a full board snapshot, cheap enough for Ataxx's two
// 64-bit bitboards that it's not worth a delta-encoded undo.
type UndoInfo struct {
	PrevWhite Bitboard
	PrevBlack Bitboard
	PrevHash  uint64
	PrevTurn  Color
}
