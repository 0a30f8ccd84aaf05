package fen_test

import (
	"testing"

	"github.com/herohde/gyrfalcon/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"startpos",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	}

	for _, f := range tests {
		b, err := fen.Decode(f)
		require.NoError(t, err, f)

		got := fen.Encode(b)
		b2, err := fen.Decode(got)
		require.NoError(t, err)
		assert.Equal(t, got, fen.Encode(b2), "re-encoding a decoded position must be stable")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"8/8/8/8/8/8/8/8 w KQkq - 0 1",                                // no kings
		"k6K/8/8/8/8/8/8/8 w - - 0 1 extra",                           // 7 fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",    // bad active color
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZZZZ - 0 1",    // bad castling
		"4k3/8/8/8/8/8/8/K3R3 w - - 0 1",                              // side not to move (Black) is in check
	}
	for _, f := range tests {
		_, err := fen.Decode(f)
		assert.Error(t, err, f)
	}
}
