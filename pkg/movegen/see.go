package movegen

import "github.com/herohde/gyrfalcon/pkg/board"

// seeValue gives each piece kind's value for exchange evaluation, in centipawns. The King
// entry exists only so a king can appear as an attacker in the swap list; SEE never prices
// a king capture (the position would already be illegal) but pricing it high keeps a king
// from ever being treated as "cheap" if it is ever scanned by mistake.
var seeValue = [board.NumPieces + 1]int32{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

// SEE returns the static exchange evaluation of m: the net material gain, in centipawns
// from the mover's perspective, of playing m and then letting both sides recapture on the
// target square in turn, each side always recapturing with its least valuable attacker. It
// does not account for pins or discovered attacks that a recapture might expose elsewhere
// on the board, and it assumes a pinned defender is free to recapture, which can overstate
// a defender's value in rare positions.
func SEE(b *board.Board, m board.Move) int32 {
	from, to := m.From(), m.To()

	_, mover, _ := b.PieceAt(from)
	moverValue := seeValue[mover]
	if m.IsPromotion() {
		moverValue = seeValue[m.PromotionPiece()]
	}

	var gain [32]int32
	depth := 0

	switch {
	case m.IsEnPassant():
		gain[0] = seeValue[board.Pawn]
	case m.IsCapture():
		_, captured, _ := b.PieceAt(to)
		gain[0] = seeValue[captured]
	}
	if m.IsPromotion() {
		gain[0] += seeValue[m.PromotionPiece()] - seeValue[board.Pawn]
	}

	occ := b.Occupied().Clear(from)
	used := board.SquareBB(from)
	if m.IsEnPassant() {
		capSq := to - 8
		if b.SideToMove() == board.Black {
			capSq = to + 8
		}
		occ = occ.Clear(capSq)
	}

	side := b.SideToMove().Opponent()
	curValue := moverValue

	for {
		attackers := b.AttackersToWithOccupancy(to, side, occ) &^ used
		if attackers == 0 {
			break
		}
		sq, piece, ok := leastValuableAttacker(b, side, attackers)
		if !ok || depth+1 >= len(gain) {
			break
		}

		depth++
		gain[depth] = curValue - gain[depth-1]

		used = used.Set(sq)
		occ = occ.Clear(sq)
		curValue = seeValue[piece]
		side = side.Opponent()
	}

	for d := depth; d > 0; d-- {
		gain[d-1] = -max32(-gain[d-1], gain[d])
	}
	return gain[0]
}

// SEEGE reports whether m's static exchange value is at least threshold. Move ordering and
// quiescence search use this to discard captures that lose material without computing (or
// caring about) the exact swap value.
func SEEGE(b *board.Board, m board.Move, threshold int32) bool {
	return SEE(b, m) >= threshold
}

func leastValuableAttacker(b *board.Board, side board.Color, attackers board.Bitboard) (board.Square, board.Piece, bool) {
	for p := board.Pawn; p <= board.King; p++ {
		if bb := b.PieceBB(side, p) & attackers; bb != 0 {
			return bb.LSB(), p, true
		}
	}
	return board.NoSquare, board.NoPiece, false
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
