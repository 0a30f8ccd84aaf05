package eval

import (
	"testing"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// colorFlipMirror builds the position obtained by mirroring b vertically and swapping the
// color of every piece, plus swapping the side to move and castling rights. This is the
// standard symmetry transform: a sane evaluator must return the same score for a position
// and its color-flipped mirror.
func colorFlipMirror(b *board.Board) *board.Board {
	out := board.NewBoard()
	for _, c := range [2]board.Color{board.White, board.Black} {
		for p := board.Pawn; p <= board.King; p++ {
			bb := b.PieceBB(c, p)
			for bb != 0 {
				var sq board.Square
				sq, bb = bb.PopLSB()
				out.Put(c.Opponent(), p, sq.Mirror())
			}
		}
	}
	out.SetSideToMove(b.SideToMove().Opponent())

	var flipped board.Castling
	old := b.Castling()
	if old.Has(board.WhiteKingside) {
		flipped |= board.BlackKingside
	}
	if old.Has(board.WhiteQueenside) {
		flipped |= board.BlackQueenside
	}
	if old.Has(board.BlackKingside) {
		flipped |= board.WhiteKingside
	}
	if old.Has(board.BlackQueenside) {
		flipped |= board.WhiteQueenside
	}
	out.SetCastling(flipped)

	if ep, ok := b.EnPassant(); ok {
		out.SetEnPassant(ep.Mirror())
	} else {
		out.SetEnPassant(board.NoSquare)
	}
	out.RecomputeHash()
	return out
}

func TestEvaluateSymmetricUnderColorFlip(t *testing.T) {
	positions := []string{
		fen.Initial,
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		"r1bqk2r/ppp2ppp/2n1pn2/3p4/1b1P4/2N1PN2/PPP2PPP/R1BQKB1R w KQkq - 4 6",
		"8/8/8/4k3/8/8/4K3/3R4 w - - 0 1",
	}

	for _, p := range positions {
		b, err := fen.Decode(p)
		require.NoError(t, err, p)

		e := NewEvaluator(DefaultOptions())
		want := e.Evaluate(b)

		mirror := colorFlipMirror(b)
		got := e.Evaluate(mirror)

		assert.Equal(t, int32(want), int32(got), "position %q: evaluate(mirror) should equal evaluate(original)", p)
	}
}

func TestEvaluateRespectsDivisors(t *testing.T) {
	b, err := fen.Decode("r1bqk2r/ppp2ppp/2n1pn2/3p4/1b1P4/2N1PN2/PPP2PPP/R1BQKB1R w KQkq - 4 6")
	require.NoError(t, err)

	base := NewEvaluator(DefaultOptions())
	baseScore := base.Evaluate(b)

	doubled := NewEvaluator(Options{
		PSTScale:             DefaultOptions().PSTScale * 2,
		PawnStructureDivisor: DefaultOptions().PawnStructureDivisor * 2,
		MobilityDivisor:      DefaultOptions().MobilityDivisor * 2,
		KingSafetyDivisor:    DefaultOptions().KingSafetyDivisor * 2,
	})
	doubledScore := doubled.Evaluate(b)

	// Doubling every divisor rescales the non-material contribution, so with non-material
	// terms present the score must change.
	assert.NotEqual(t, baseScore, doubledScore, "changing divisors should change the score when non-material terms are present")
}

func TestEvaluateFinitePureAndDeterministic(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	before := fen.Encode(b)
	e := NewEvaluator(DefaultOptions())

	s1 := e.Evaluate(b)
	s2 := e.Evaluate(b)
	assert.Equal(t, s1, s2)
	assert.Equal(t, before, fen.Encode(b), "Evaluate must not mutate the board")
	assert.GreaterOrEqual(t, int32(s1), int32(MinScore))
	assert.LessOrEqual(t, int32(s1), int32(MaxScore))
}
