package nnue

import "github.com/kz04px/autaxxnnue/internal/board"

// moveEffect records the square sets a PushMake applied, so the
// matching PopUnmake can invert them in place via Accumulator.ApplyUnmake
// instead of restoring a snapshot.
type moveEffect struct {
	mover                     board.Color
	usSet, usUnset, themUnset board.Bitboard
}

// maxUndo bounds the make/unmake history depth: MaxPly (128) plus slack
// for search extensions.
const maxUndo = 160

// Evaluator bundles a loaded network with the single accumulator the
// Searcher drives in lockstep with the board's make/unmake, plus the
// undo history PopUnmake needs to invert a PushMake.
type Evaluator struct {
	net *Network
	acc Accumulator

	undo [maxUndo]moveEffect
	top  int
}

// NewEvaluator wraps a pre-loaded network. Weights are injected by
// reference: they live above the engine and are shared, immutable,
// read-only data for the process lifetime (§9's resolved open
// question prefers this over a by-path-loading constructor).
func NewEvaluator(net *Network) *Evaluator {
	return &Evaluator{net: net}
}

// Reset rebuilds the accumulator from scratch for pos and empties the
// undo history, for a new `position` or `uainewgame`.
func (e *Evaluator) Reset(pos *board.Position) {
	e.top = 0
	e.acc = Accumulator{}
	e.acc.ComputeFull(pos, e.net)
}

// Evaluate returns the centipawn score from the side-to-move's
// perspective at the current accumulator state.
func (e *Evaluator) Evaluate(pos *board.Position) int {
	if !e.acc.Computed {
		e.acc.ComputeFull(pos, e.net)
	}
	return e.net.Forward(&e.acc, pos.Turn)
}

// PushMake applies the incremental update for a move already computed
// via board.Position.MoveEffects directly to the accumulator, and
// records the effect so PopUnmake can apply its exact inverse (§4.2).
// Call after board.Position.MakeMove.
func (e *Evaluator) PushMake(mover board.Color, usSet, usUnset, themUnset board.Bitboard) {
	e.acc.ApplyMake(e.net, mover, usSet, usUnset, themUnset)
	if e.top < len(e.undo) {
		e.undo[e.top] = moveEffect{mover: mover, usSet: usSet, usUnset: usUnset, themUnset: themUnset}
	}
	e.top++
}

// PopUnmake reverses the matching PushMake by applying
// Accumulator.ApplyUnmake with the recorded effect. It does not read the
// board; the Searcher calls it just before board.Position.UnmakeMove.
func (e *Evaluator) PopUnmake() {
	e.top--
	if e.top >= 0 && e.top < len(e.undo) {
		eff := e.undo[e.top]
		e.acc.ApplyUnmake(e.net, eff.mover, eff.usSet, eff.usUnset, eff.themUnset)
	}
}
