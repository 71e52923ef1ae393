package engine

import (
	"testing"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/stretchr/testify/assert"
)

func legalOrNull(t *testing.T, pos *board.Position, m board.Move) {
	t.Helper()
	if m == board.NullMove {
		assert.Zero(t, pos.LegalMoves().Len())
		return
	}
	moves := pos.LegalMoves()
	found := false
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == m {
			found = true
			break
		}
	}
	assert.True(t, found, "move %s not in legal move list", m)
}

func TestRandomReturnsLegalMove(t *testing.T) {
	r := NewRandom()
	pos := board.StartPosition()
	m := r.Go(pos, Limits{})
	legalOrNull(t, pos, m)
	assert.False(t, r.IsSearching())
}

func TestMostCapturesPicksHighestFlipCount(t *testing.T) {
	v := NewMostCaptures()
	pos := board.StartPosition()
	m := v.Go(pos, Limits{})
	legalOrNull(t, pos, m)

	moves := pos.LegalMoves()
	best := captureCount(pos, m)
	for i := 0; i < moves.Len(); i++ {
		assert.LessOrEqual(t, captureCount(pos, moves.Get(i)), best)
	}
}

func TestLeastCapturesPicksLowestFlipCount(t *testing.T) {
	v := NewLeastCaptures()
	pos := board.StartPosition()
	m := v.Go(pos, Limits{})
	legalOrNull(t, pos, m)

	moves := pos.LegalMoves()
	worst := captureCount(pos, m)
	for i := 0; i < moves.Len(); i++ {
		assert.GreaterOrEqual(t, captureCount(pos, moves.Get(i)), worst)
	}
}

func TestMinimaxReturnsLegalMove(t *testing.T) {
	v := NewMinimax()
	pos := board.StartPosition()
	m := v.Go(pos, Limits{Depth: 2, HasDepth: true})
	legalOrNull(t, pos, m)
	assert.False(t, v.IsSearching())
}

func TestAlphabetaReturnsLegalMove(t *testing.T) {
	v := NewAlphabeta()
	pos := board.StartPosition()
	m := v.Go(pos, Limits{Depth: 3, HasDepth: true})
	legalOrNull(t, pos, m)
	assert.False(t, v.IsSearching())
}

func TestAlphabetaDeeperSearchStillLegal(t *testing.T) {
	v := NewAlphabeta()
	pos := board.StartPosition()
	m := v.Go(pos, Limits{Depth: 6, HasDepth: true})
	legalOrNull(t, pos, m)
}

func TestMCTSReturnsLegalMove(t *testing.T) {
	v := NewMCTS()
	pos := board.StartPosition()
	m := v.Go(pos, Limits{})
	legalOrNull(t, pos, m)
	assert.False(t, v.IsSearching())
}

func TestBaselinesClearIsNoopSafe(t *testing.T) {
	variants := []Variant{
		NewRandom(),
		NewMostCaptures(),
		NewLeastCaptures(),
		NewMinimax(),
		NewAlphabeta(),
		NewMCTS(),
	}
	for _, v := range variants {
		assert.NotPanics(t, func() { v.Clear() })
		v.SetOnInfo(func(SearchInfo) {})
	}
}
