package nnue

import (
	"testing"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNetwork builds small deterministic weights so accumulator math
// is easy to reason about without a real weights file.
func testNetwork() *Network {
	n := NewNetwork()
	for i := 0; i < HalfKASize; i++ {
		for j := 0; j < BaseDim; j++ {
			n.WWeights[i][j] = float32(i+j) * 0.01
			n.BWeights[i][j] = float32(i-j) * 0.01
		}
	}
	return n
}

func TestComputeFullMatchesManualSum(t *testing.T) {
	net := testNetwork()
	pos := board.StartPosition()

	var acc Accumulator
	acc.ComputeFull(pos, net)

	var want Accumulator
	want.White = net.WBias
	want.Black = net.BBias

	whites := pos.White()
	for whites != 0 {
		sq := int(whites.PopLSB())
		for i := 0; i < BaseDim; i++ {
			want.White[i] += net.WWeights[sq][i]
			want.Black[i] += net.BWeights[NumSquares+sq][i]
		}
	}
	blacks := pos.Black()
	for blacks != 0 {
		sq := int(blacks.PopLSB())
		for i := 0; i < BaseDim; i++ {
			want.White[i] += net.WWeights[NumSquares+sq][i]
			want.Black[i] += net.BWeights[sq][i]
		}
	}

	assert.InDeltaSlice(t, want.White[:], acc.White[:], 1e-5)
	assert.InDeltaSlice(t, want.Black[:], acc.Black[:], 1e-5)
}

func TestIncrementalMatchesFromScratch(t *testing.T) {
	net := testNetwork()
	pos := board.StartPosition()
	moves := pos.LegalMoves()
	require.Greater(t, moves.Len(), 0)

	var acc Accumulator
	acc.ComputeFull(pos, net)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		mover := pos.Turn
		usSet, usUnset, themUnset := pos.MoveEffects(m)

		incremental := acc
		incremental.ApplyMake(net, mover, usSet, usUnset, themUnset)

		pos.MakeMove(m)
		var fromScratch Accumulator
		fromScratch.ComputeFull(pos, net)

		assert.InDeltaSlicef(t, fromScratch.White[:], incremental.White[:], 1e-4, "move %s", m)
		assert.InDeltaSlicef(t, fromScratch.Black[:], incremental.Black[:], 1e-4, "move %s", m)

		incremental.ApplyUnmake(net, mover, usSet, usUnset, themUnset)
		assert.InDeltaSlicef(t, acc.White[:], incremental.White[:], 1e-5, "unmake move %s", m)
		assert.InDeltaSlicef(t, acc.Black[:], incremental.Black[:], 1e-5, "unmake move %s", m)

		// restore board for the next candidate move
		pos2 := board.StartPosition()
		*pos = *pos2
	}
}

func TestForwardIsDeterministic(t *testing.T) {
	net := testNetwork()
	pos := board.StartPosition()
	var acc Accumulator
	acc.ComputeFull(pos, net)

	a := net.Forward(&acc, board.White)
	b := net.Forward(&acc, board.White)
	assert.Equal(t, a, b)
}
