package eval

import "github.com/herohde/gyrfalcon/pkg/board"

// MaxPhase is the phase value of a bare-kings endgame; phase 0 is the starting material.
const MaxPhase = 256

// totalPhase is the phase-weighted non-pawn material present at the start of the game:
// 4 knights + 4 bishops + 4 rooks*2 + 2 queens*4 = 4+4+8+8 = 24.
const totalPhase = 24

const (
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
)

// Phase returns a value in [0, MaxPhase] describing how far the position has progressed
// from the opening (0, all non-pawn material present) towards a bare endgame (MaxPhase).
func Phase(b *board.Board) int {
	var p int
	for _, c := range [2]board.Color{board.White, board.Black} {
		p += b.PieceBB(c, board.Knight).PopCount() * knightPhase
		p += b.PieceBB(c, board.Bishop).PopCount() * bishopPhase
		p += b.PieceBB(c, board.Rook).PopCount() * rookPhase
		p += b.PieceBB(c, board.Queen).PopCount() * queenPhase
	}

	phase := MaxPhase - (p*MaxPhase)/totalPhase
	if phase < 0 {
		phase = 0
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}

// Interpolate blends a middlegame and endgame score by phase (0 = pure middlegame, MaxPhase
// = pure endgame).
func Interpolate(mg, eg Score, phase int) Score {
	return (mg*Score(MaxPhase-phase) + eg*Score(phase)) / MaxPhase
}
