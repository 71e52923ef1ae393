package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPositionFEN(t *testing.T) {
	p := StartPosition()
	assert.Equal(t, StartFEN, p.ToFEN())
	assert.Equal(t, White, p.Turn)
	assert.False(t, p.IsTerminal())
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"x5o/7/2-1-2/7/2-1-2/7/o5x x",
		"xxxxxxx/xxxxxxx/xxxxxxx/xxxxxxx/ooooooo/ooooooo/ooooooo o",
	}
	for _, fen := range fens {
		p, err := FromFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, p.ToFEN())
	}
}

func TestMakeUnmakeReversibility(t *testing.T) {
	p := StartPosition()
	moves := p.LegalMoves()
	require.Greater(t, moves.Len(), 0)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		beforeHash := p.Hash
		beforeTurn := p.Turn
		beforeWhite, beforeBlack := p.White(), p.Black()

		undo := p.MakeMove(m)
		p.UnmakeMove(undo)

		assert.Equal(t, beforeHash, p.Hash, "hash not restored for move %s", m)
		assert.Equal(t, beforeTurn, p.Turn)
		assert.Equal(t, beforeWhite, p.White())
		assert.Equal(t, beforeBlack, p.Black())
	}
}

func TestCloneMoveEncoding(t *testing.T) {
	sq, _ := ParseSquare("c3")
	m := NewClone(sq)
	assert.True(t, m.IsClone())
	assert.Equal(t, sq, m.From())
	assert.Equal(t, sq, m.To())
	assert.Equal(t, "c3", m.String())
}

func TestLeapMoveEncoding(t *testing.T) {
	from, _ := ParseSquare("a1")
	to, _ := ParseSquare("c3")
	m := NewMove(from, to)
	assert.False(t, m.IsClone())
	assert.Equal(t, "a1c3", m.String())
}

func TestNullMoveDistinctFromNoMove(t *testing.T) {
	assert.NotEqual(t, NoMove, NullMove)
	assert.True(t, NullMove.IsNull())
	assert.False(t, NoMove.IsNull())
}

func TestFlipsAdjacentEnemyStones(t *testing.T) {
	p, err := FromFEN("7/7/7/3o3/7/3x3/7 x")
	require.NoError(t, err)
	to, _ := ParseSquare("d3")
	m := NewClone(to)
	p.MakeMove(m)
	flippedSq, _ := ParseSquare("d4")
	assert.True(t, p.White().Has(flippedSq), "adjacent enemy stone should flip")
	assert.False(t, p.Black().Has(flippedSq))
}

func TestForcedPassWhenNoStoneMoves(t *testing.T) {
	// White's single stone is boxed in by blockers on every clone/leap square.
	p, err := FromFEN("x------/-------/-------/-------/-------/-------/o6 x")
	require.NoError(t, err)
	moves := p.LegalMoves()
	require.Equal(t, 1, moves.Len())
	assert.Equal(t, NullMove, moves.Get(0))
}

func TestTerminalOnWipeout(t *testing.T) {
	p, err := FromFEN("x6/7/7/7/7/7/7 x")
	require.NoError(t, err)
	assert.True(t, p.IsTerminal())
	assert.Equal(t, 1, p.TerminalScore())
}
