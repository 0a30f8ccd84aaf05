package board_test

import (
	"testing"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/board/fen"
	"github.com/stretchr/testify/require"
)

// TestMakeUnmakeRoundTrip exercises MakeMove/UnmakeMove across a capture, a castle, an
// en-passant capture, and a promotion, checking that each unmake restores the board to
// byte-for-byte equality with its pre-make state, including the hash. package movegen has
// its own, more exhaustive version of this property via perft (which walks every legal
// move to depth); this package cannot depend on movegen, so these cases are spelled out by
// hand instead of generated.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		m    board.Move
	}{
		{
			"double pawn push",
			fen.Initial,
			board.NewMove(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), board.FlagDoublePawnPush),
		},
		{
			"kingside castle",
			"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			board.NewMove(board.NewSquare(board.FileE, board.Rank1), board.NewSquare(board.FileG, board.Rank1), board.FlagKingCastle),
		},
		{
			"en passant capture",
			"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
			board.NewMove(board.NewSquare(board.FileE, board.Rank5), board.NewSquare(board.FileD, board.Rank6), board.FlagEnPassant),
		},
		{
			"promotion",
			"8/P7/8/8/8/8/8/k6K w - - 0 1",
			board.NewMove(board.NewSquare(board.FileA, board.Rank7), board.NewSquare(board.FileA, board.Rank8), board.PromoFlag(board.Queen, false)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := fen.Decode(tt.fen)
			require.NoError(t, err)

			before := fen.Encode(b)
			beforeHash := b.Hash()

			undo := b.MakeMove(tt.m)
			require.NotEqual(t, beforeHash, b.Hash())
			b.UnmakeMove(tt.m, undo)

			require.Equal(t, before, fen.Encode(b))
			require.Equal(t, beforeHash, b.Hash())
		})
	}
}

func TestZobristIncrementalMatchesFromScratch(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	require.Equal(t, board.ZobristFromScratch(b), b.Hash())

	m := board.NewMove(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), board.FlagDoublePawnPush)
	undo := b.MakeMove(m)
	require.Equal(t, board.ZobristFromScratch(b), b.Hash())

	b.UnmakeMove(m, undo)
	require.Equal(t, board.ZobristFromScratch(b), b.Hash())
}

func TestNullMoveRoundTrip(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	before := fen.Encode(b)
	undo := b.MakeNullMove()
	require.Equal(t, board.Black, b.SideToMove())
	b.UnmakeNullMove(undo)
	require.Equal(t, before, fen.Encode(b))
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	// Black rook on a8 is captured by a white bishop: White gains nothing, but Black
	// loses queenside castling rights even though Black's king never moved.
	b, err := fen.Decode("rnbqkbnr/1ppppppp/8/8/8/8/1PPPPPPP/BNBQK1NR w Kkq - 0 1")
	require.NoError(t, err)

	m := board.NewMove(board.NewSquare(board.FileA, board.Rank1), board.NewSquare(board.FileA, board.Rank8), board.FlagCapture)
	b.MakeMove(m)

	require.False(t, b.Castling().Has(board.BlackQueenside))
	require.True(t, b.Castling().Has(board.BlackKingside))
}

func TestEnPassantSquareClearsAfterOneMove(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m := board.NewMove(board.NewSquare(board.FileE, board.Rank2), board.NewSquare(board.FileE, board.Rank4), board.FlagDoublePawnPush)
	b.MakeMove(m)
	ep, ok := b.EnPassant()
	require.True(t, ok)
	require.Equal(t, board.NewSquare(board.FileE, board.Rank3), ep)

	// Any other move clears it.
	m2 := board.NewMove(board.NewSquare(board.FileA, board.Rank7), board.NewSquare(board.FileA, board.Rank6), board.FlagQuiet)
	b.MakeMove(m2)
	_, ok = b.EnPassant()
	require.False(t, ok)
}
