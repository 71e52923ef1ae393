package engine

import (
	"sync/atomic"
	"time"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/kz04px/autaxxnnue/internal/nnue"
)

// Variant is the capability set every search algorithm implements,
// tryhard (this package's Searcher) included: the protocol dispatcher
// talks to whichever one is selected through this single interface
// instead of a class hierarchy (§9's tagged-variant design note). Only
// the tryhard variant is engineered for strength; the others behind
// the `search` option are didactic baselines sharing this same trait.
type Variant interface {
	Go(pos *board.Position, limits Limits) board.Move
	Stop()
	Clear()
	IsSearching() bool
	SetOnInfo(func(SearchInfo))
}

// Search constants (§4.6/§4.7).
const (
	MateScore = 10000
	MaxPly    = 128
)

// PVTable stores the principal variation built up during the move loop.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Controller is the cooperative stop/deadline/node-budget latch shared
// between the protocol thread and the single search worker (§5).
type Controller struct {
	stop     atomic.Bool
	deadline time.Time
	maxNodes uint64
}

// Reset arms the controller for a new search.
func (c *Controller) Reset(deadline time.Time, maxNodes uint64) {
	c.stop.Store(false)
	c.deadline = deadline
	c.maxNodes = maxNodes
}

// Stop sets the monotone stop latch. Safe to call from another thread.
func (c *Controller) Stop() {
	c.stop.Store(true)
}

// Stopped reports whether the stop latch has been set.
func (c *Controller) Stopped() bool {
	return c.stop.Load()
}

// SearchInfo is the per-iteration payload handed to the Searcher's
// OnInfo callback, matching the §4.8 info line's token order.
type SearchInfo struct {
	Depth    int
	SelDepth int
	ScoreCP  int
	TimeMs   int64
	Nodes    uint64
	TTHits   uint64
	HashFull int
	NPS      uint64
	PV       []board.Move
}

// Searcher runs the iterative-deepening negamax search described in
// §4.6/§4.7, driving the board and NNUE accumulator in lockstep.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer
	eval    *nnue.Evaluator

	controller Controller
	nodes      uint64
	selDepth   int
	start      time.Time

	pv      PVTable
	mayNull [MaxPly + 1]bool
	running atomic.Bool

	// OnInfo, if set, is invoked after every completed iteration.
	OnInfo func(SearchInfo)
}

// NewSearcher wires a searcher to a transposition table and evaluator
// it does not own the lifetime of; both are shared with the Engine.
func NewSearcher(tt *TranspositionTable, eval *nnue.Evaluator) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
		eval:    eval,
	}
}

// Stop signals the worker to stop at its next poll.
func (s *Searcher) Stop() {
	s.controller.Stop()
}

// IsSearching reports whether a Go call is currently in flight.
func (s *Searcher) IsSearching() bool {
	return s.running.Load()
}

// SetOnInfo installs the per-iteration progress callback.
func (s *Searcher) SetOnInfo(f func(SearchInfo)) {
	s.OnInfo = f
}

// Clear empties the transposition table and move-ordering state for a
// new game (§6's `uainewgame`).
func (s *Searcher) Clear() {
	s.tt.Clear()
	s.orderer.Clear()
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Reset clears the search stack and statistics (§4.6 step 1). History
// is preserved across searches within a game; see MoveOrderer.Clear
// for the full per-game reset, invoked separately by Searcher.Clear.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.selDepth = 0
	s.orderer.ClearKillers()
	s.tt.ResetStats()
	s.pv = PVTable{}
	for i := range s.mayNull {
		s.mayNull[i] = false
	}
}

// Go runs the root iterative-deepening loop and returns the best move
// found, or the nullmove token if the position is already terminal.
func (s *Searcher) Go(pos *board.Position, limits Limits) board.Move {
	s.running.Store(true)
	defer s.running.Store(false)

	s.pos = pos.Copy()
	s.Reset()
	s.eval.Reset(s.pos)
	s.start = time.Now()

	deadline, maxNodes, targetDepth := computeDeadline(limits, s.pos.Turn, s.start)
	s.controller.Reset(deadline, maxNodes)

	bestMove := board.NullMove
	for d := 1; d <= targetDepth; d++ {
		s.mayNull[0] = true
		score := s.negamax(s.pos, 0, -MateScore, MateScore, d)

		stopped := d > 1 && (s.controller.Stopped() || s.nodes >= maxNodes || time.Now().After(deadline))
		if stopped {
			break
		}

		if s.pv.length[0] > 0 {
			bestMove = s.pv.moves[0][0]
		}
		s.reportInfo(d, score)
	}

	return bestMove
}

func (s *Searcher) reportInfo(depth, scoreCP int) {
	if s.OnInfo == nil {
		return
	}
	elapsed := time.Since(s.start)
	ms := elapsed.Milliseconds()
	var nps uint64
	if ms > 0 {
		nps = s.nodes * 1000 / uint64(ms)
	}
	pv := make([]board.Move, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])

	s.OnInfo(SearchInfo{
		Depth:    depth,
		SelDepth: s.selDepth,
		ScoreCP:  scoreCP,
		TimeMs:   ms,
		Nodes:    s.nodes,
		TTHits:   s.tt.Hits(),
		HashFull: s.tt.HashFull(),
		NPS:      nps,
		PV:       pv,
	})
}

// negamax implements §4.7's node algorithm. pos is mutated in place via
// MakeMove/UnmakeMove and the NNUE accumulator stack moves in lockstep.
func (s *Searcher) negamax(pos *board.Position, ply, alpha, beta, depth int) int {
	s.nodes++
	if ply > s.selDepth {
		s.selDepth = ply
	}

	if s.controller.Stopped() || s.nodes >= s.controller.maxNodes || ply >= MaxPly || time.Now().After(s.controller.deadline) {
		return s.eval.Evaluate(pos)
	}

	s.pv.length[ply] = ply

	if pos.IsTerminal() {
		switch ts := pos.TerminalScore(); {
		case ts > 0:
			return MateScore - ply
		case ts < 0:
			return -MateScore + ply
		default:
			return 0
		}
	}

	if depth <= 0 {
		return s.eval.Evaluate(pos)
	}

	ttMove := board.NoMove
	if entry, found := s.tt.Probe(pos.Hash); found {
		ttMove = entry.BestMove
		// No cutoff at the root: it must walk its moves to build a PV.
		if ply > 0 && int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	// Null-move pruning: Ataxx has no check, so the only guards are the
	// may_null stack flag and a minimum depth.
	if s.mayNull[ply] && depth >= 3 {
		if staticEval := s.eval.Evaluate(pos); staticEval >= beta {
			undo := pos.MakeMove(board.NullMove)
			s.mayNull[ply+1] = false
			score := -s.negamax(pos, ply+1, -beta, -beta+1, depth-3)
			pos.UnmakeMove(undo)
			if score >= beta {
				return beta
			}
		}
	}

	moves := pos.LegalMoves()
	scores := s.orderer.ScoreMoves(&moves, ply, ttMove)

	alphaOrig := alpha
	bestScore := -MateScore - 1
	bestMove := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		PickMove(&moves, scores, i)
		move := moves.Get(i)

		mover := pos.Turn
		usSet, usUnset, themUnset := pos.MoveEffects(move)
		undo := pos.MakeMove(move)
		if !move.IsNull() {
			s.eval.PushMake(mover, usSet, usUnset, themUnset)
		}
		s.mayNull[ply+1] = true

		r := lmrReduction(i+1, s.orderer.History(move))
		score := -s.negamax(pos, ply+1, -beta, -alpha, depth-1-r)
		if r > 0 && score > alpha {
			score = -s.negamax(pos, ply+1, -beta, -alpha, depth-1)
		}

		if !move.IsNull() {
			s.eval.PopUnmake()
		}
		pos.UnmakeMove(undo)

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			s.pv.moves[ply][ply] = move
			for j := ply + 1; j < s.pv.length[ply+1]; j++ {
				s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
			}
			s.pv.length[ply] = s.pv.length[ply+1]
		}
		if alpha >= beta {
			if !move.IsNull() {
				s.orderer.UpdateKillers(move, ply)
				s.orderer.UpdateHistory(move, depth)
			}
			s.tt.Store(pos.Hash, depth, AdjustScoreToTT(score, ply), TTLowerBound, move)
			return beta
		}
	}

	if alpha == alphaOrig {
		s.tt.Store(pos.Hash, depth, AdjustScoreToTT(alpha, ply), TTUpperBound, board.NoMove)
	} else {
		s.tt.Store(pos.Hash, depth, AdjustScoreToTT(alpha, ply), TTExact, bestMove)
	}

	return alpha
}

// lmrReduction implements §4.7 step 6's reduction formula for the
// move at 1-based index i with history score h.
func lmrReduction(i int, h int16) int {
	r := 0
	switch {
	case i < 3:
		r = 0
	case i < 16:
		r = 2
	default:
		r = 4
	}
	adjust := -int(h) / 5000
	if adjust > 2 {
		adjust = 2
	}
	if adjust < -2 {
		adjust = -2
	}
	r += adjust
	if r < 0 {
		r = 0
	}
	return r
}
