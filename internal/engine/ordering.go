package engine

import "github.com/kz04px/autaxxnnue/internal/board"

// Move ordering priorities, high to low per §4.5: TT move, killer,
// then history score.
const (
	TTMoveScore  = 1 << 30
	KillerScore1 = 1 << 20
	KillerScore2 = 1<<20 - 1
)

// MoveOrderer orders candidate moves using the TT move, the stack
// frame's killer, and the history heuristic.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [board.NumSquares][board.NumSquares]int16
}

// NewMoveOrderer returns an empty move orderer.
func NewMoveOrderer() *MoveOrderer {
	mo := &MoveOrderer{}
	mo.ClearKillers()
	return mo
}

// ClearKillers resets the per-ply killer slots at the start of every
// `go`. History is intentionally left alone here: it is not reset or
// aged between searches within the same game, only between games
// (§9), so it keeps accumulating move-quality signal search to search.
func (mo *MoveOrderer) ClearKillers() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
}

// Clear resets killers and history for a new game (`uainewgame`).
func (mo *MoveOrderer) Clear() {
	mo.ClearKillers()
	for i := range mo.history {
		for j := range mo.history[i] {
			mo.history[i][j] = 0
		}
	}
}

// ScoreMoves assigns an ordering score to every move in the list.
func (mo *MoveOrderer) ScoreMoves(moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(moves.Get(i), ply, ttMove)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(m board.Move, ply int, ttMove board.Move) int {
	if m == ttMove {
		return TTMoveScore
	}
	if m == mo.killers[ply][0] {
		return KillerScore1
	}
	if m == mo.killers[ply][1] {
		return KillerScore2
	}
	return int(mo.History(m))
}

// History returns the raw history score for a move, used by the LMR
// reduction formula as well as move ordering. A NullMove (forced pass)
// has no squares and scores 0.
func (mo *MoveOrderer) History(m board.Move) int16 {
	if m.IsNull() {
		return 0
	}
	return mo.history[m.From()][m.To()]
}

// PickMove selects the best-scored remaining move and swaps it into
// position index, giving a lazily-sorted partial selection sort.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers records a beta-cutoff move as the ply's killer,
// keeping at most two and never duplicating the most recent one.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory bumps a cutoff move's history score by depth^2,
// clamped to the signed 16-bit range instead of periodically halved
// (§9: the source neither ages nor scales history between searches).
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int) {
	from, to := m.From(), m.To()
	bonus := int32(depth * depth)
	v := int32(mo.history[from][to]) + bonus
	switch {
	case v > 32767:
		v = 32767
	case v < -32768:
		v = -32768
	}
	mo.history[from][to] = int16(v)
}
