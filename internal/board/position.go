package board

// Color is the two-valued side to move; it doubles as the NNUE pov bit.
type Color int8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "x"
	}
	return "o"
}

// Position is the Searcher's entire view of the game: two stone
// bitboards, a blocker bitboard, the side to move, and an incrementally
// maintained Zobrist hash.
type Position struct {
	stones   [2]Bitboard
	Blockers Bitboard
	Turn     Color
	Hash     uint64
}

// White returns the bitboard of white's stones.
func (p *Position) White() Bitboard { return p.stones[White] }

// Black returns the bitboard of black's stones.
func (p *Position) Black() Bitboard { return p.stones[Black] }

// Ours returns the side-to-move's stones.
func (p *Position) Ours() Bitboard { return p.stones[p.Turn] }

// Theirs returns the waiting side's stones.
func (p *Position) Theirs() Bitboard { return p.stones[p.Turn.Other()] }

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard { return p.stones[White] | p.stones[Black] }

// Playable returns every square not permanently blocked.
func (p *Position) Playable() Bitboard { return FullBoard &^ p.Blockers }

// Empty returns every empty, playable square.
func (p *Position) Empty() Bitboard { return p.Playable() &^ p.Occupied() }

// StartPosition returns the standard Ataxx opening position: two stones
// of each color, each color holding a pair of opposite corners.
func StartPosition() *Position {
	p, err := FromFEN(StartFEN)
	if err != nil {
		panic("board: malformed StartFEN: " + err.Error())
	}
	return p
}

func (p *Position) computeHash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		bb := p.stones[c]
		for bb != 0 {
			sq := bb.PopLSB()
			h ^= ZobristStone(c, sq)
		}
	}
	if p.Turn == Black {
		h ^= ZobristSideToMove()
	}
	return h
}

// IsTerminal reports whether the game is over: the board is full, or
// one side has been wiped out.
func (p *Position) IsTerminal() bool {
	return p.Occupied() == p.Playable() || p.stones[White] == 0 || p.stones[Black] == 0
}

// TerminalScore returns the side-to-move-relative outcome at a terminal
// position: +1 win, -1 loss, 0 draw, compared by stone count.
func (p *Position) TerminalScore() int {
	us := p.stones[p.Turn].Count()
	them := p.stones[p.Turn.Other()].Count()
	switch {
	case us > them:
		return 1
	case us < them:
		return -1
	default:
		return 0
	}
}

// hasCloneSource reports whether any of our stones sit within clone
// range of sq.
func (p *Position) hasCloneSource(sq Square) bool {
	return Neighbors1(sq)&p.Ours() != 0
}

// LegalMoves enumerates every legal move for the side to move. If the
// position is not terminal but no stone move exists, the returned list
// contains only NullMove (a forced pass).
func (p *Position) LegalMoves() MoveList {
	var ml MoveList
	empty := p.Empty()
	ours := p.Ours()

	remaining := empty
	for remaining != 0 {
		to := remaining.PopLSB()
		if p.hasCloneSource(to) {
			ml.Add(NewClone(to))
		}
		leapSources := Neighbors2(to) & ours
		for leapSources != 0 {
			from := leapSources.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	if ml.Len() == 0 && !p.IsTerminal() {
		ml.Add(NullMove)
	}
	return ml
}

// flips returns the enemy stones adjacent to `to` that a move landing
// there would capture.
func (p *Position) flips(to Square) Bitboard {
	return Neighbors1(to) & p.Theirs()
}

// MoveEffects computes, from the pre-move position, the three square
// sets the NNUE accumulator's incremental update needs: usSet (squares
// becoming the mover's color), usUnset (the leap source, if any), and
// themUnset (enemy stones about to flip). Must be called before
// MakeMove mutates the position. Returns all-empty sets for NullMove.
func (p *Position) MoveEffects(m Move) (usSet, usUnset, themUnset Bitboard) {
	if m == NullMove || m == NoMove {
		return 0, 0, 0
	}
	from, to := m.From(), m.To()
	themUnset = p.flips(to)
	usSet = themUnset | SquareBB(to)
	if !m.IsClone() {
		usUnset = SquareBB(from) &^ SquareBB(to)
	}
	return usSet, usUnset, themUnset
}

// MakeMove applies m (which may be NullMove) and returns the undo
// record needed to reverse it.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		PrevWhite: p.stones[White],
		PrevBlack: p.stones[Black],
		PrevHash:  p.Hash,
		PrevTurn:  p.Turn,
	}

	if m == NullMove {
		p.Turn = p.Turn.Other()
		p.Hash ^= ZobristSideToMove()
		return undo
	}

	us, them := p.Turn, p.Turn.Other()
	from, to := m.From(), m.To()

	if !m.IsClone() {
		p.stones[us] &^= SquareBB(from)
		p.Hash ^= ZobristStone(us, from)
	}
	p.stones[us] |= SquareBB(to)
	p.Hash ^= ZobristStone(us, to)

	captured := p.flips(to)
	cap := captured
	for cap != 0 {
		sq := cap.PopLSB()
		p.Hash ^= ZobristStone(them, sq)
		p.Hash ^= ZobristStone(us, sq)
	}
	p.stones[them] &^= captured
	p.stones[us] |= captured

	p.Turn = them
	p.Hash ^= ZobristSideToMove()
	return undo
}

// UnmakeMove restores the position to the state captured in undo.
func (p *Position) UnmakeMove(undo UndoInfo) {
	p.stones[White] = undo.PrevWhite
	p.stones[Black] = undo.PrevBlack
	p.Hash = undo.PrevHash
	p.Turn = undo.PrevTurn
}

// Copy returns a deep copy of the position.
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}
