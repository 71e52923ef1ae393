package engine

import (
	"testing"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/stretchr/testify/assert"
)

func TestOrdererTTMoveFirst(t *testing.T) {
	mo := NewMoveOrderer()
	p := board.StartPosition()
	moves := p.LegalMoves()
	ttMove := moves.Get(2)

	scores := mo.ScoreMoves(&moves, 0, ttMove)
	PickMove(&moves, scores, 0)

	assert.Equal(t, ttMove, moves.Get(0))
}

func TestOrdererKillerOutranksHistory(t *testing.T) {
	mo := NewMoveOrderer()
	p := board.StartPosition()
	moves := p.LegalMoves()

	killer := moves.Get(1)
	other := moves.Get(0)
	mo.UpdateKillers(killer, 0)
	mo.UpdateHistory(other, 10) // large history bonus, still below killer score

	scores := mo.ScoreMoves(&moves, 0, board.NoMove)
	PickMove(&moves, scores, 0)

	assert.Equal(t, killer, moves.Get(0))
}

func TestOrdererKillersDontDuplicate(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewClone(5)
	mo.UpdateKillers(m, 0)
	mo.UpdateKillers(m, 0)
	assert.Equal(t, m, mo.killers[0][0])
	assert.Equal(t, board.NoMove, mo.killers[0][1])
}

func TestHistoryClampsToInt16Range(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(0, 2)
	for i := 0; i < 50; i++ {
		mo.UpdateHistory(m, 127) // depth^2 = 16129 per update, saturates fast
	}
	assert.Equal(t, int16(32767), mo.History(m))
}

func TestClearKillersPreservesHistory(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(0, 2)
	mo.UpdateHistory(m, 4)
	mo.UpdateKillers(board.NewClone(1), 0)

	mo.ClearKillers()

	assert.NotZero(t, mo.History(m))
	assert.Equal(t, board.NoMove, mo.killers[0][0])
}

func TestFullClearResetsHistoryToo(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(0, 2)
	mo.UpdateHistory(m, 4)
	mo.Clear()
	assert.Zero(t, mo.History(m))
}
