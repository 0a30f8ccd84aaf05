package board

import "github.com/herohde/gyrfalcon/pkg/attacks"

// IsSquareAttacked returns true iff sq is attacked by a piece of byColor, given the
// board's current occupancy. Does not consider en-passant (captures en-passant are
// checked separately by the legality filter, per spec.md §4.2).
func (b *Board) IsSquareAttacked(sq Square, byColor Color) bool {
	return b.AttackersTo(sq, byColor) != 0
}

// AttackersTo returns the bitboard of byColor's pieces that attack sq, given the board's
// current occupancy. Used both for check detection and for static exchange evaluation.
func (b *Board) AttackersTo(sq Square, byColor Color) Bitboard {
	return b.AttackersToWithOccupancy(sq, byColor, b.occupied)
}

// AttackersToWithOccupancy is AttackersTo but against an overridden occupancy bitboard,
// used by SEE to simulate the board with some attackers already removed.
func (b *Board) AttackersToWithOccupancy(sq Square, byColor Color, occ Bitboard) Bitboard {
	occ64 := uint64(occ)
	var out Bitboard

	if bishops := b.pieces[byColor][Bishop] | b.pieces[byColor][Queen]; bishops != 0 {
		out |= Bitboard(attacks.Bishop(int(sq), occ64)) & bishops
	}
	if rooks := b.pieces[byColor][Rook] | b.pieces[byColor][Queen]; rooks != 0 {
		out |= Bitboard(attacks.Rook(int(sq), occ64)) & rooks
	}
	if knights := b.pieces[byColor][Knight]; knights != 0 {
		out |= Bitboard(attacks.Knight(int(sq))) & knights
	}
	if kings := b.pieces[byColor][King]; kings != 0 {
		out |= Bitboard(attacks.King(int(sq))) & kings
	}
	if pawns := b.pieces[byColor][Pawn]; pawns != 0 {
		// A pawn of byColor attacks sq iff sq is one of *its* diagonal targets, i.e. sq is
		// reachable via the opposite-colored pawn-attack table rooted at sq.
		out |= Bitboard(attacks.Pawn(int(byColor.Opponent()), int(sq))) & pawns
	}
	return out
}

// InCheck returns true iff the side to move's king is attacked.
func (b *Board) InCheck() bool {
	return b.IsSquareAttacked(b.KingSquare(b.sideToMove), b.sideToMove.Opponent())
}

// ColorInCheck returns true iff the given color's king is attacked.
func (b *Board) ColorInCheck(c Color) bool {
	return b.IsSquareAttacked(b.KingSquare(c), c.Opponent())
}
