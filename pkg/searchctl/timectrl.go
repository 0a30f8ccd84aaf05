// Package searchctl drives iterative-deepening search on top of pkg/search, translating
// time and depth controls into a stream of principal variations and a stop signal.
package searchctl

import (
	"fmt"
	"time"

	"github.com/herohde/gyrfalcon/pkg/board"
)

// Kind discriminates the TimeControl tagged union.
type Kind uint8

const (
	// Infinite searches until explicitly stopped.
	Infinite Kind = iota
	// MoveTime allocates a fixed duration to the current move.
	MoveTime
	// Clock allocates time from a game clock with increment and moves-to-go.
	Clock
	// Depth stops after a fixed ply depth, regardless of elapsed time.
	Depth
	// Nodes stops after a fixed node count, regardless of elapsed time.
	Nodes
)

// TimeControl is a tagged union of the ways a search can be bounded. Only the fields
// relevant to Kind are meaningful.
type TimeControl struct {
	Kind Kind

	MoveTime time.Duration

	WhiteTime, BlackTime time.Duration
	WhiteInc, BlackInc   time.Duration
	MovesToGo            int

	DepthLimit int
	NodeLimit  uint64
}

func (t TimeControl) String() string {
	switch t.Kind {
	case Infinite:
		return "infinite"
	case MoveTime:
		return fmt.Sprintf("movetime=%v", t.MoveTime)
	case Clock:
		return fmt.Sprintf("clock[w=%v b=%v winc=%v binc=%v movestogo=%v]", t.WhiteTime, t.BlackTime, t.WhiteInc, t.BlackInc, t.MovesToGo)
	case Depth:
		return fmt.Sprintf("depth=%v", t.DepthLimit)
	case Nodes:
		return fmt.Sprintf("nodes=%v", t.NodeLimit)
	default:
		return "?"
	}
}

// defaultSafetyMargin is reserved against clock overrun from scheduling jitter.
const defaultSafetyMargin = 100 * time.Millisecond

// Limits returns the soft and hard search-time budgets for the side to move, following
// the allocation formula: base = available/(movestogo ?? 40), soft = base + 3/4*increment,
// hard = min(soft*(available>10s ? 5 : 3), available). Only meaningful for Kind == Clock;
// other kinds are handled directly by the iterative-deepening loop.
func (t TimeControl) Limits(turn board.Color) (soft, hard time.Duration) {
	available, increment := t.WhiteTime, t.WhiteInc
	if turn == board.Black {
		available, increment = t.BlackTime, t.BlackInc
	}

	margin := defaultSafetyMargin
	if available/50 < margin {
		margin = available / 50
	}
	available -= margin
	if available < 0 {
		available = 0
	}

	movesToGo := t.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 40
	}

	base := available / time.Duration(movesToGo)
	soft = base + (increment*3)/4

	mult := time.Duration(3)
	if available > 10*time.Second {
		mult = 5
	}
	hard = soft * mult
	if hard > available {
		hard = available
	}
	if soft > hard {
		soft = hard
	}
	return soft, hard
}
