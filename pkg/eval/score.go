// Package eval is the static position evaluator (L3): material, piece-square tables, pawn
// structure, king safety, piece activity, and phase interpolation, composed into a single
// centipawn score from the perspective of the side to move.
package eval

import (
	"fmt"

	"github.com/herohde/gyrfalcon/pkg/board"
)

// Score is a signed evaluation in centipawns. Positive favors White on the absolute scale
// used internally by every component below; Evaluate negates it for Black before returning.
type Score int32

const (
	// MinScore/MaxScore bound every ordinary evaluation; Mate scores live outside this
	// range so they are never confused with a merely lopsided material count.
	MinScore Score = -25000
	MaxScore Score = 25000

	// Mate is the score of a position where the side to move has just been checkmated,
	// i.e. it is already adjusted for ply distance by the caller (root ply 0 gives the
	// largest magnitude). Search code computes a mate-in-N score as Mate - n or -Mate + n.
	Mate Score = 32000

	// Inf is a sentinel wider than any real score, used to seed alpha-beta bounds.
	Inf Score = Mate + 1
)

func (s Score) String() string {
	return fmt.Sprintf("%d", s)
}

// IsMate reports whether s encodes a forced mate (for either side).
func (s Score) IsMate() bool {
	return s > Mate-1000 || s < -Mate+1000
}

// MateDistance returns the number of plies to the forced mate s encodes, if any. The
// distance is never negative and does not say which side mates: a positive s means the
// side whose perspective s is expressed from delivers mate, a negative s that it is mated.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s > Mate-1000:
		return int(Mate - s), true
	case s < -Mate+1000:
		return int(Mate + s), true
	default:
		return 0, false
	}
}

// Unit returns the signed unit for the color: +1 for White, -1 for Black. Every per-color
// accumulator in this package is summed as value*Unit(color) so White is always positive.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

func clamp(s, lo, hi Score) Score {
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}

func maxScore(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

func minScore(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
