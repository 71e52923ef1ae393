package engine

import (
	"testing"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0x1234567890ABCDEF)
	m := board.NewClone(3)

	tt.Store(hash, 5, 42, TTExact, m)

	entry, found := tt.Probe(hash)
	require.True(t, found)
	assert.Equal(t, int8(5), entry.Depth)
	assert.Equal(t, int16(42), entry.Score)
	assert.Equal(t, TTExact, entry.Flag)
	assert.Equal(t, m, entry.BestMove)
}

func TestTTProbeMissOnEmptySlot(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, found := tt.Probe(0xDEADBEEF)
	assert.False(t, found)
}

func TestTTAlwaysReplace(t *testing.T) {
	tt := NewTranspositionTable(1)
	// Force a collision: a 1MB table has far fewer than 2^64 slots, so
	// two different hashes that share the low mask bits collide.
	hash := uint64(1)
	collidingHash := hash + tt.Size()

	tt.Store(hash, 3, 10, TTExact, board.NewClone(1))
	tt.Store(collidingHash, 7, 20, TTLowerBound, board.NewClone(2))

	entry, found := tt.Probe(collidingHash)
	require.True(t, found)
	assert.Equal(t, int8(7), entry.Depth)
	assert.Equal(t, int16(20), entry.Score)
}

func TestTTClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(1, 1, 1, TTExact, board.NewClone(1))
	tt.Clear()
	_, found := tt.Probe(1)
	assert.False(t, found)
	assert.Equal(t, 0, tt.HashFull())
}

// TestTTMateRebaseRoundTrip covers invariant 3: eval_from_tt(eval_to_tt(s,
// ply), ply) == s for every ply and every |s| <= mate_score.
func TestTTMateRebaseRoundTrip(t *testing.T) {
	scores := []int{
		MateScore,
		MateScore - 1,
		MateScore - MaxPly,
		-MateScore,
		-MateScore + 1,
		-MateScore + MaxPly,
		0,
		500,
		-500,
	}
	for _, s := range scores {
		for ply := 0; ply < MaxPly; ply++ {
			stored := AdjustScoreToTT(s, ply)
			back := AdjustScoreFromTT(stored, ply)
			assert.Equal(t, s, back, "score=%d ply=%d", s, ply)
		}
	}
}

func TestHashFullSamplesFirstThousandSlots(t *testing.T) {
	tt := NewTranspositionTable(1)
	assert.Equal(t, 0, tt.HashFull())
	for i := 0; i < 500; i++ {
		tt.Store(uint64(i), 1, 1, TTExact, board.NoMove)
	}
	full := tt.HashFull()
	assert.Greater(t, full, 0)
	assert.LessOrEqual(t, full, 1000)
}
