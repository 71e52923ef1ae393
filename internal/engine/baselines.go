package engine

import (
	"math/rand"
	"sync/atomic"

	"github.com/kz04px/autaxxnnue/internal/board"
)

// The variants in this file are the didactic baselines named in §1:
// random, most/least-captures, plain minimax, and an MCTS skeleton,
// plus a plain alpha-beta.
// None of them is engineered for strength; they exist so the `search`
// option's combo values (§6) all resolve to something playable, and
// so the capability set in Variant is exercised by more than one
// implementation, matching the source's seven-variants-one-trait
// shape. Only Searcher (the "tryhard" registration) gets the real
// engineering budget.

// materialEval is the flat stone-count evaluation the baselines share:
// simpler than the NNUE evaluator, with no accumulator bookkeeping.
func materialEval(pos *board.Position) int {
	return pos.Ours().Count() - pos.Theirs().Count()
}

// baseVariant factors out the Stop/IsSearching/SetOnInfo bookkeeping
// common to every non-tryhard variant, none of which report iteration
// progress.
type baseVariant struct {
	stop      atomic.Bool
	searching atomic.Bool
	onInfo    func(SearchInfo)
}

func (b *baseVariant) Stop()                       { b.stop.Store(true) }
func (b *baseVariant) IsSearching() bool            { return b.searching.Load() }
func (b *baseVariant) SetOnInfo(f func(SearchInfo)) { b.onInfo = f }
func (b *baseVariant) Clear()                       {}

func (b *baseVariant) begin() {
	b.stop.Store(false)
	b.searching.Store(true)
}

func (b *baseVariant) end() { b.searching.Store(false) }

// Random plays a uniformly chosen legal move.
type Random struct{ baseVariant }

// NewRandom returns a fresh Random variant.
func NewRandom() *Random { return &Random{} }

// Go picks a random legal move, ignoring limits entirely.
func (r *Random) Go(pos *board.Position, _ Limits) board.Move {
	r.begin()
	defer r.end()
	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return board.NullMove
	}
	return moves.Get(rand.Intn(moves.Len()))
}

// captureCount returns how many enemy stones m would flip.
func captureCount(pos *board.Position, m board.Move) int {
	_, _, themUnset := pos.MoveEffects(m)
	return themUnset.Count()
}

// MostCaptures greedily plays the move that flips the most stones.
type MostCaptures struct{ baseVariant }

// NewMostCaptures returns a fresh MostCaptures variant.
func NewMostCaptures() *MostCaptures { return &MostCaptures{} }

// Go picks the legal move with the highest immediate capture count.
func (v *MostCaptures) Go(pos *board.Position, _ Limits) board.Move {
	v.begin()
	defer v.end()
	return extremeCaptureMove(pos, true)
}

// LeastCaptures greedily plays the move that flips the fewest stones.
type LeastCaptures struct{ baseVariant }

// NewLeastCaptures returns a fresh LeastCaptures variant.
func NewLeastCaptures() *LeastCaptures { return &LeastCaptures{} }

// Go picks the legal move with the lowest immediate capture count.
func (v *LeastCaptures) Go(pos *board.Position, _ Limits) board.Move {
	v.begin()
	defer v.end()
	return extremeCaptureMove(pos, false)
}

func extremeCaptureMove(pos *board.Position, wantMost bool) board.Move {
	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return board.NullMove
	}
	best := moves.Get(0)
	bestCount := captureCount(pos, best)
	for i := 1; i < moves.Len(); i++ {
		m := moves.Get(i)
		c := captureCount(pos, m)
		if (wantMost && c > bestCount) || (!wantMost && c < bestCount) {
			best, bestCount = m, c
		}
	}
	return best
}

// Minimax is a plain fixed-depth minimax with no alpha-beta pruning,
// no transposition table, and no move ordering: a teaching baseline
// showing what the tryhard variant's pruning saves.
type Minimax struct {
	baseVariant
	nodes uint64
}

// NewMinimax returns a fresh Minimax variant.
func NewMinimax() *Minimax { return &Minimax{} }

// Go runs fixed-depth minimax; limits.Depth selects the depth (default 4).
func (v *Minimax) Go(pos *board.Position, limits Limits) board.Move {
	v.begin()
	defer v.end()
	v.nodes = 0

	depth := limits.Depth
	if depth <= 0 {
		depth = 4
	}

	p := pos.Copy()
	moves := p.LegalMoves()
	if moves.Len() == 0 {
		return board.NullMove
	}

	best := moves.Get(0)
	bestScore := -MateScore - 1
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := p.MakeMove(m)
		score := -v.minimax(p, depth-1)
		p.UnmakeMove(undo)
		if score > bestScore {
			bestScore = score
			best = m
		}
		if v.stop.Load() {
			break
		}
	}
	return best
}

func (v *Minimax) minimax(pos *board.Position, depth int) int {
	v.nodes++
	if pos.IsTerminal() {
		switch pos.TerminalScore() {
		case 1:
			return MateScore
		case -1:
			return -MateScore
		default:
			return 0
		}
	}
	if depth <= 0 || v.stop.Load() {
		return materialEval(pos)
	}

	moves := pos.LegalMoves()
	best := -MateScore - 1
	for i := 0; i < moves.Len(); i++ {
		undo := pos.MakeMove(moves.Get(i))
		score := -v.minimax(pos, depth-1)
		pos.UnmakeMove(undo)
		if score > best {
			best = score
		}
	}
	return best
}

// Alphabeta is iterative-deepening alpha-beta with none of tryhard's
// extras: no transposition table, no NNUE, no null-move, no LMR. It
// shows the pruning win in isolation from the rest of the search
// machinery, grounded on the original's plain alphabeta variant.
type Alphabeta struct {
	baseVariant
	nodes uint64
}

// NewAlphabeta returns a fresh Alphabeta variant.
func NewAlphabeta() *Alphabeta { return &Alphabeta{} }

// Go runs iterative-deepening alpha-beta to limits.Depth (default MaxPly).
func (v *Alphabeta) Go(pos *board.Position, limits Limits) board.Move {
	v.begin()
	defer v.end()
	v.nodes = 0

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = MaxPly
	}

	p := pos.Copy()
	best := board.NullMove
	for d := 1; d <= maxDepth; d++ {
		if v.stop.Load() {
			break
		}
		move, _ := v.searchRoot(p, d)
		if move != board.NoMove {
			best = move
		}
	}
	return best
}

func (v *Alphabeta) searchRoot(pos *board.Position, depth int) (board.Move, int) {
	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return board.NullMove, 0
	}
	alpha, beta := -MateScore, MateScore
	best := moves.Get(0)
	bestScore := -MateScore - 1
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -v.alphabeta(pos, 1, -beta, -alpha, depth-1)
		pos.UnmakeMove(undo)
		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if v.stop.Load() {
			break
		}
	}
	return best, bestScore
}

func (v *Alphabeta) alphabeta(pos *board.Position, ply, alpha, beta, depth int) int {
	v.nodes++
	if v.stop.Load() || ply >= MaxPly {
		return materialEval(pos)
	}
	if pos.IsTerminal() {
		switch pos.TerminalScore() {
		case 1:
			return MateScore - ply
		case -1:
			return -MateScore + ply
		default:
			return 0
		}
	}
	if depth <= 0 {
		return materialEval(pos)
	}

	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		undo := pos.MakeMove(moves.Get(i))
		score := -v.alphabeta(pos, ply+1, -beta, -alpha, depth-1)
		pos.UnmakeMove(undo)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// MCTS is a skeleton Monte Carlo tree search: single-threaded random
// playouts with a win-rate vote per root move, no UCT tree reuse. Out
// of scope for real engineering per §1; kept as the `search` option's
// "mcts" value.
type MCTS struct{ baseVariant }

// NewMCTS returns a fresh MCTS variant.
func NewMCTS() *MCTS { return &MCTS{} }

// Go runs a fixed number of random playouts per legal root move and
// returns the one with the best win rate.
func (v *MCTS) Go(pos *board.Position, limits Limits) board.Move {
	v.begin()
	defer v.end()

	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return board.NullMove
	}

	const playoutsPerMove = 64
	best := moves.Get(0)
	bestScore := -1.0
	for i := 0; i < moves.Len(); i++ {
		if v.stop.Load() {
			break
		}
		m := moves.Get(i)
		p := pos.Copy()
		undo := p.MakeMove(m)
		wins := 0
		for n := 0; n < playoutsPerMove; n++ {
			if v.rollout(p.Copy()) {
				wins++
			}
		}
		p.UnmakeMove(undo)
		score := float64(wins) / playoutsPerMove
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}

// rollout plays uniformly random moves to a terminal position and
// reports whether the mover-at-root's side ended up ahead. That side is
// the opponent of the side to move at entry; since TerminalScore is
// relative to whoever is to move at the end, its sign is flipped when
// that is not the root mover.
func (v *MCTS) rollout(pos *board.Position) bool {
	rootSide := pos.Turn.Other()
	for i := 0; i < 200 && !pos.IsTerminal(); i++ {
		moves := pos.LegalMoves()
		if moves.Len() == 0 {
			break
		}
		m := moves.Get(rand.Intn(moves.Len()))
		pos.MakeMove(m)
	}
	if !pos.IsTerminal() {
		return false
	}
	ts := pos.TerminalScore()
	if pos.Turn == rootSide {
		return ts > 0
	}
	return ts < 0
}
