package engine

import "github.com/kz04px/autaxxnnue/internal/board"

// TTFlag indicates the type of bound stored in a transposition entry.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // exact score
	TTLowerBound               // failed high (beta cutoff)
	TTUpperBound               // failed low
)

// TTEntry occupies 12 bytes (10 of fields plus alignment padding),
// within the 16 bytes per entry NewTranspositionTable budgets: the upper
// 32 bits of the Zobrist hash stand in for the full 64-bit key, plus a
// 16-bit move, a 16-bit score, a depth byte and a flag.
type TTEntry struct {
	Key      uint32
	BestMove board.Move
	Score    int16
	Depth    int8
	Flag     TTFlag
}

// TranspositionTable is a direct-mapped, always-replace cache of
// search results, indexed by hash modulo its power-of-two size.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64

	hits uint64
}

// NewTranspositionTable sizes a table to fit sizeMB megabytes.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = uint64(16)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up hash. A hit requires the stored key to match the
// probed hash's upper 32 bits and the slot to be occupied.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	idx := hash & tt.mask
	entry := tt.entries[idx]
	if entry.Key == uint32(hash>>32) && entry.Depth > 0 {
		tt.hits++
		return entry, true
	}
	return TTEntry{}, false
}

// Store always replaces the slot's contents (§4.4: "Store policy:
// always replace"). depth is clamped to int8's positive range: at
// MaxPly (128) it would otherwise wrap to a negative Depth, which the
// Key-match-plus-Depth>0 occupancy check in Probe/HashFull would then
// read back as an empty slot.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	if depth > 127 {
		depth = 127
	}
	idx := hash & tt.mask
	tt.entries[idx] = TTEntry{
		Key:      uint32(hash >> 32),
		BestMove: bestMove,
		Score:    int16(score),
		Depth:    int8(depth),
		Flag:     flag,
	}
}

// Clear empties the table and resets statistics; called on uainewgame.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.ResetStats()
}

// ResetStats zeroes the hit counter without touching the stored
// entries, called at the start of every root search so the `tthits`
// token (§4.8) reports per-search counts instead of accumulating across
// successive `go` commands within the same game.
func (tt *TranspositionTable) ResetStats() {
	tt.hits = 0
}

// HashFull samples the first 1000 slots and reports the per-mille that
// are occupied.
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Depth > 0 {
			used++
		}
	}
	return (used * 1000) / sampleSize
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// Hits returns the raw probe-hit count, for the info reporter's tthits
// token.
func (tt *TranspositionTable) Hits() uint64 {
	return tt.hits
}

// AdjustScoreFromTT reverses the ply-rebasing applied by
// AdjustScoreToTT, so mate scores stay comparable across differing
// search plies.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT rebases a mate-distance-sensitive score by ply
// before storing it, sign matching the score's own sign.
func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
