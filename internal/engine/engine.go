// Package engine wires the Board Adapter, NNUE Evaluator, Transposition
// Table, Move Ordering, and Searcher into the single-worker search
// engine described by §2's data-flow paragraph, and dispatches between
// the tryhard variant and its didactic siblings behind one capability
// set (§9).
package engine

import (
	"fmt"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/kz04px/autaxxnnue/internal/nnue"
)

// VariantName identifies one of the `search` option's combo values.
type VariantName string

// The seven variant names registered by the `search` option (§6).
const (
	VariantTryhard       VariantName = "tryhard"
	VariantMCTS          VariantName = "mcts"
	VariantMinimax       VariantName = "minimax"
	VariantMostCaptures  VariantName = "mostcaptures"
	VariantRandom        VariantName = "random"
	VariantLeastCaptures VariantName = "leastcaptures"
	VariantAlphabeta     VariantName = "alphabeta"
)

// Engine owns the shared state a search needs across calls: the
// transposition table and NNUE evaluator backing the tryhard variant,
// plus the full set of registered variants. Only one variant is active
// at a time, selected by the `search` option.
type Engine struct {
	tt      *TranspositionTable
	eval    *nnue.Evaluator
	tryhard *Searcher

	variants map[VariantName]Variant
	active   VariantName
}

// New creates an engine with a hash table sized to ttSizeMB and an
// NNUE evaluator wrapping net (weights live above the engine and are
// injected by reference, per §9's resolved open question).
func New(ttSizeMB int, net *nnue.Network) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	evaluator := nnue.NewEvaluator(net)
	tryhard := NewSearcher(tt, evaluator)

	e := &Engine{
		tt:      tt,
		eval:    evaluator,
		tryhard: tryhard,
		active:  VariantTryhard,
	}
	e.variants = map[VariantName]Variant{
		VariantTryhard:       tryhard,
		VariantMCTS:          NewMCTS(),
		VariantMinimax:       NewMinimax(),
		VariantMostCaptures:  NewMostCaptures(),
		VariantRandom:        NewRandom(),
		VariantLeastCaptures: NewLeastCaptures(),
		VariantAlphabeta:     NewAlphabeta(),
	}
	return e
}

// SetVariant selects which registered variant subsequent Go calls run,
// per the `search` combo option (§6). Returns an error for an unknown
// name so the caller can surface it as an `info string`.
func (e *Engine) SetVariant(name VariantName) error {
	if _, ok := e.variants[name]; !ok {
		return fmt.Errorf("engine: unknown search variant %q", name)
	}
	e.active = name
	return nil
}

// Variant returns the currently selected variant's name.
func (e *Engine) Variant() VariantName { return e.active }

// Resize rebuilds the transposition table at a new size in megabytes.
// Only meaningful for the tryhard variant; the didactic baselines
// don't use a TT.
func (e *Engine) Resize(ttSizeMB int) {
	e.tt = NewTranspositionTable(ttSizeMB)
	e.tryhard = NewSearcher(e.tt, e.eval)
	e.variants[VariantTryhard] = e.tryhard
}

// Go dispatches to the active variant and runs it to completion,
// returning the recommended move (or the nullmove token if none).
func (e *Engine) Go(pos *board.Position, limits Limits, onInfo func(SearchInfo)) board.Move {
	v := e.variants[e.active]
	v.SetOnInfo(onInfo)
	return v.Go(pos, limits)
}

// Stop cooperatively stops whichever variant is mid-search (§5).
func (e *Engine) Stop() {
	for _, v := range e.variants {
		v.Stop()
	}
}

// Clear resets the transposition table and move-ordering state for a
// new game (`uainewgame`, §6). Every variant is cleared even though
// only tryhard carries state worth resetting, so a mid-game switch of
// the `search` option never finds stale data.
func (e *Engine) Clear() {
	for _, v := range e.variants {
		v.Clear()
	}
}

// IsSearching reports whether the active variant is mid-search.
func (e *Engine) IsSearching() bool {
	return e.variants[e.active].IsSearching()
}

// Evaluate returns the static NNUE score for pos from the side to
// move's perspective, for the `eval` command (§6). Always uses the
// tryhard variant's evaluator regardless of the active search variant,
// since only NNUE is in scope as a static evaluator (§1).
func (e *Engine) Evaluate(pos *board.Position) int {
	e.eval.Reset(pos)
	return e.eval.Evaluate(pos)
}

// Perft runs a pure move-generation leaf count (§1's "PERFT move-count
// debugger"), delegating entirely to the board adapter.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	return pos.Copy().Perft(depth)
}
