package nnue

import (
	"testing"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluatorPushPopRoundTrip covers §8 S5: evaluating, playing a
// move, then unplaying it must leave the score unchanged, exercising
// the PushMake/PopUnmake pair that now mutates a single accumulator in
// place via Accumulator.ApplyMake/ApplyUnmake instead of snapshotting.
func TestEvaluatorPushPopRoundTrip(t *testing.T) {
	net := testNetwork()
	pos := board.StartPosition()
	e := NewEvaluator(net)
	e.Reset(pos)

	before := e.Evaluate(pos)

	moves := pos.LegalMoves()
	require.Greater(t, moves.Len(), 0)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		mover := pos.Turn
		usSet, usUnset, themUnset := pos.MoveEffects(m)

		undo := pos.MakeMove(m)
		e.PushMake(mover, usSet, usUnset, themUnset)
		e.PopUnmake()
		pos.UnmakeMove(undo)

		after := e.Evaluate(pos)
		assert.Equal(t, before, after, "move %s", m)
	}
}

// TestEvaluatorIncrementalMatchesFromScratch plays the first legal move
// one ply deep and checks the incrementally updated evaluation matches a
// from-scratch accumulator rebuild (§8 invariant 2).
func TestEvaluatorIncrementalMatchesFromScratch(t *testing.T) {
	net := testNetwork()
	pos := board.StartPosition()
	e := NewEvaluator(net)
	e.Reset(pos)

	moves := pos.LegalMoves()
	require.Greater(t, moves.Len(), 0)
	m := moves.Get(0)
	mover := pos.Turn
	usSet, usUnset, themUnset := pos.MoveEffects(m)

	pos.MakeMove(m)
	e.PushMake(mover, usSet, usUnset, themUnset)
	incremental := e.Evaluate(pos)

	fresh := NewEvaluator(net)
	fresh.Reset(pos)
	fromScratch := fresh.Evaluate(pos)

	assert.Equal(t, fromScratch, incremental)
}
