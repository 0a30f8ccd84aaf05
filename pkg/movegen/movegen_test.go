package movegen_test

import (
	"testing"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/board/fen"
	"github.com/herohde/gyrfalcon/pkg/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contains(list *board.MoveList, from, to board.Square, flag board.MoveFlag) bool {
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.From() == from && m.To() == to && m.Flag() == flag {
			return true
		}
	}
	return false
}

func TestGenerateLegalExcludesPinnedMoveThatExposesCheck(t *testing.T) {
	// White rook on e2 is pinned to the White king on e1 by the Black rook on e8: the rook
	// may slide along the pin but may not step off the e-file.
	b, err := fen.Decode("4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1")
	require.NoError(t, err)

	legal := movegen.GenerateLegal(b)
	e2 := board.NewSquare(board.FileE, board.Rank2)
	e4 := board.NewSquare(board.FileE, board.Rank4)
	f2 := board.NewSquare(board.FileF, board.Rank2)
	assert.True(t, contains(legal, e2, e4, board.FlagQuiet), "rook may slide along the pin")
	assert.False(t, contains(legal, e2, f2, board.FlagQuiet), "rook may not step off the pin")
}

func TestGenerateLegalKeepsKingInCheckResponses(t *testing.T) {
	// White king in check from a black rook on the e-file must either move, block, or
	// capture -- anything else is filtered out.
	b, err := fen.Decode("4r1k1/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	require.True(t, b.InCheck())

	legal := movegen.GenerateLegal(b)
	for i := 0; i < legal.Len(); i++ {
		undo := b.MakeMove(legal.At(i))
		inCheck := b.ColorInCheck(board.White)
		b.UnmakeMove(legal.At(i), undo)
		assert.False(t, inCheck, "every legal response must leave White out of check")
	}
}

func TestEnPassantCaptureIsLegalEvenWhenItUnveilsNothing(t *testing.T) {
	b, err := fen.Decode("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)

	legal := movegen.GenerateLegal(b)
	e5, d6 := board.NewSquare(board.FileE, board.Rank5), board.NewSquare(board.FileD, board.Rank6)
	assert.True(t, contains(legal, e5, d6, board.FlagEnPassant))
}

func TestEnPassantCaptureIllegalWhenItExposesKingOnRank(t *testing.T) {
	// White king and a black rook share rank 5 with the en-passant pair between them: after
	// both pawns vanish from rank 5, the rook would check the king, so the capture must be
	// excluded from the legal move list even though it is pseudo-legal.
	b, err := fen.Decode("8/8/8/K2Pp2r/8/8/8/4k3 w - e6 0 1")
	require.NoError(t, err)

	legal := movegen.GenerateLegal(b)
	d5, e6 := board.NewSquare(board.FileD, board.Rank5), board.NewSquare(board.FileE, board.Rank6)
	assert.False(t, contains(legal, d5, e6, board.FlagEnPassant))
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	// Black rook on f8 attacks f1, the transit square for White's kingside castle.
	b, err := fen.Decode("4k2r/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	legal := movegen.GenerateLegal(b)
	e1, g1 := board.NewSquare(board.FileE, board.Rank1), board.NewSquare(board.FileG, board.Rank1)
	assert.True(t, contains(legal, e1, g1, board.FlagKingCastle), "f1 is not attacked in this position")

	b2, err := fen.Decode("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	legal2 := movegen.GenerateLegal(b2)
	assert.False(t, contains(legal2, e1, g1, board.FlagKingCastle), "f1 is attacked by the rook on f8")
}

func TestSEEWinningAndLosingCaptures(t *testing.T) {
	// White pawn takes an undefended black knight: wins the whole knight.
	b, err := fen.Decode("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m := board.NewMove(board.NewSquare(board.FileE, board.Rank4), board.NewSquare(board.FileD, board.Rank5), board.FlagCapture)
	assert.Equal(t, int32(320), movegen.SEE(b, m))

	// White rook takes a pawn defended by a bishop on the far diagonal: loses the exchange.
	b2, err := fen.Decode("4k3/b7/8/2p5/8/8/8/2R1K3 w - - 0 1")
	require.NoError(t, err)
	m2 := board.NewMove(board.NewSquare(board.FileC, board.Rank1), board.NewSquare(board.FileC, board.Rank5), board.FlagCapture)
	assert.Equal(t, int32(-400), movegen.SEE(b2, m2))
	assert.False(t, movegen.SEEGE(b2, m2, 0))
}
