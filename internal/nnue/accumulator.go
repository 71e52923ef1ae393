package nnue

import "github.com/kz04px/autaxxnnue/internal/board"

// Accumulator holds the two perspective vectors: White is always the
// white-perspective feature transformer's running sum, Black the
// black-perspective one, regardless of whose turn it is.
type Accumulator struct {
	White    [BaseDim]float32
	Black    [BaseDim]float32
	Computed bool
}

func vecAndWeights(acc *Accumulator, net *Network, perspective board.Color) (*[BaseDim]float32, *[HalfKASize][BaseDim]float32) {
	if perspective == board.White {
		return &acc.White, &net.WWeights
	}
	return &acc.Black, &net.BWeights
}

func insertColumn(vec *[BaseDim]float32, weights *[HalfKASize][BaseDim]float32, idx int) {
	col := weights[idx]
	for i := 0; i < BaseDim; i++ {
		vec[i] += col[i]
	}
}

func eraseColumn(vec *[BaseDim]float32, weights *[HalfKASize][BaseDim]float32, idx int) {
	col := weights[idx]
	for i := 0; i < BaseDim; i++ {
		vec[i] -= col[i]
	}
}

// ComputeFull rebuilds both accumulators from scratch for pos.
func (acc *Accumulator) ComputeFull(pos *board.Position, net *Network) {
	acc.White = net.WBias
	acc.Black = net.BBias

	whites := pos.White()
	for whites != 0 {
		sq := whites.PopLSB()
		insertColumn(&acc.White, &net.WWeights, int(sq))
		insertColumn(&acc.Black, &net.BWeights, NumSquares+int(sq))
	}
	blacks := pos.Black()
	for blacks != 0 {
		sq := blacks.PopLSB()
		insertColumn(&acc.White, &net.WWeights, NumSquares+int(sq))
		insertColumn(&acc.Black, &net.BWeights, int(sq))
	}
	acc.Computed = true
}

// ApplyMake performs the incremental make-side update described by the
// three square sets returned from board.Position.MoveEffects, called
// by the mover before the turn flips.
func (acc *Accumulator) ApplyMake(net *Network, mover board.Color, usSet, usUnset, themUnset board.Bitboard) {
	moverVec, moverW := vecAndWeights(acc, net, mover)
	oppVec, oppW := vecAndWeights(acc, net, mover.Other())

	bb := usSet
	for bb != 0 {
		sq := int(bb.PopLSB())
		insertColumn(moverVec, moverW, sq)
		insertColumn(oppVec, oppW, NumSquares+sq)
	}
	bb = usUnset
	for bb != 0 {
		sq := int(bb.PopLSB())
		eraseColumn(moverVec, moverW, sq)
		eraseColumn(oppVec, oppW, NumSquares+sq)
	}
	bb = themUnset
	for bb != 0 {
		sq := int(bb.PopLSB())
		eraseColumn(oppVec, oppW, sq)
		eraseColumn(moverVec, moverW, NumSquares+sq)
	}
}

// ApplyUnmake applies the exact inverse of ApplyMake (every insert
// becomes an erase and vice versa).
func (acc *Accumulator) ApplyUnmake(net *Network, mover board.Color, usSet, usUnset, themUnset board.Bitboard) {
	moverVec, moverW := vecAndWeights(acc, net, mover)
	oppVec, oppW := vecAndWeights(acc, net, mover.Other())

	bb := usSet
	for bb != 0 {
		sq := int(bb.PopLSB())
		eraseColumn(moverVec, moverW, sq)
		eraseColumn(oppVec, oppW, NumSquares+sq)
	}
	bb = usUnset
	for bb != 0 {
		sq := int(bb.PopLSB())
		insertColumn(moverVec, moverW, sq)
		insertColumn(oppVec, oppW, NumSquares+sq)
	}
	bb = themUnset
	for bb != 0 {
		sq := int(bb.PopLSB())
		insertColumn(oppVec, oppW, sq)
		insertColumn(moverVec, moverW, NumSquares+sq)
	}
}
