package eval

import "github.com/herohde/gyrfalcon/pkg/board"

// pieceValue gives the nominal material value of each piece kind, in centipawns. The King
// entry is never realized as material; it exists only so SEE and mobility code that index
// this table by arbitrary board.Piece values never go out of bounds.
var pieceValue = [board.NumPieces + 1]Score{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

// PieceValue returns the nominal material value of p.
func PieceValue(p board.Piece) Score {
	return pieceValue[p]
}

// material returns the material balance from White's perspective: positive means White has
// more material. It is phase-independent, so the same value feeds both accumulators.
func material(b *board.Board) Score {
	var s Score
	for p := board.Pawn; p <= board.Queen; p++ {
		w := b.PieceBB(board.White, p).PopCount()
		bl := b.PieceBB(board.Black, p).PopCount()
		s += Score(w-bl) * pieceValue[p]
	}
	return s
}
