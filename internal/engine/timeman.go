package engine

import (
	"time"

	"github.com/kz04px/autaxxnnue/internal/board"
)

// Limits mirrors the `go` command's parameters (§6).
type Limits struct {
	Depth    int
	Nodes    uint64
	MoveTime time.Duration
	WTime    time.Duration
	BTime    time.Duration
	WInc     time.Duration
	BInc     time.Duration
	Infinite bool
	HasDepth bool
	HasNodes bool
	HasTime  bool
}

// oneHour stands in for "no deadline" without special-casing an
// infinite sentinel throughout the hot polling path.
const oneHour = time.Hour

// computeDeadline implements the root protocol's §4.6 step 2: derive a
// deadline, node budget, and target depth from the settings record.
func computeDeadline(l Limits, us board.Color, start time.Time) (deadline time.Time, maxNodes uint64, targetDepth int) {
	targetDepth = MaxPly
	maxNodes = ^uint64(0)
	deadline = start.Add(oneHour)

	switch {
	case l.MoveTime > 0:
		deadline = start.Add(l.MoveTime)
	case l.HasDepth:
		if l.Depth > 0 && l.Depth < MaxPly {
			targetDepth = l.Depth
		}
	case l.HasNodes:
		maxNodes = l.Nodes
	case l.Infinite:
		// deadline and node budget already at their unlimited defaults
	case l.HasTime:
		remaining := l.WTime
		if us == board.Black {
			remaining = l.BTime
		}
		ms := remaining.Milliseconds() / 30
		if ms < 1 {
			ms = 1
		}
		deadline = start.Add(time.Duration(ms) * time.Millisecond)
	}

	return deadline, maxNodes, targetDepth
}
