package movegen_test

import (
	"testing"

	"github.com/herohde/gyrfalcon/pkg/board/fen"
	"github.com/herohde/gyrfalcon/pkg/movegen"
	"github.com/stretchr/testify/require"
)

// Reference perft node counts. Kiwipete and positions 3-5 are the standard conformance
// positions used to exercise castling, en passant, promotion, and check-evasion corners
// that the starting position alone does not reach.
func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  uint64
	}{
		{"startpos d1", fen.Initial, 1, 20},
		{"startpos d2", fen.Initial, 2, 400},
		{"startpos d3", fen.Initial, 3, 8902},
		{"startpos d4", fen.Initial, 4, 197281},
		{"startpos d5", fen.Initial, 5, 4865609},
		{"kiwipete d1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"kiwipete d2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"kiwipete d3", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"position3 d4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
		{"position4 d3", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3, 9467},
		{"position5 d3", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1", 3, 62379},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b, err := fen.Decode(tt.fen)
			require.NoError(t, err)

			got := movegen.Perft(b, tt.depth)
			require.Equal(t, tt.want, got)

			// The board must come back byte-for-byte equal to what it started as: perft
			// makes and unmakes every move along the way, and any leaked mutation would
			// show up here.
			after, err := fen.Decode(tt.fen)
			require.NoError(t, err)
			require.Equal(t, fen.Encode(after), fen.Encode(b))
		})
	}
}
