// Package movegen generates pseudo-legal and legal moves from a board.Board, using the
// precomputed attack tables in package attacks.
package movegen

import (
	"github.com/herohde/gyrfalcon/pkg/attacks"
	"github.com/herohde/gyrfalcon/pkg/board"
)

// IsSquareAttacked reports whether sq is attacked by a piece of byColor. Thin re-export of
// board.Board.IsSquareAttacked, named per spec.md §4.2's required helper.
func IsSquareAttacked(b *board.Board, sq board.Square, byColor board.Color) bool {
	return b.IsSquareAttacked(sq, byColor)
}

// GeneratePseudoLegal generates every pseudo-legal move for the side to move: it does not
// check whether the mover's own king ends up attacked.
func GeneratePseudoLegal(b *board.Board) *board.MoveList {
	list := &board.MoveList{}
	us := b.SideToMove()
	them := us.Opponent()
	own := b.OccupiedBy(us)
	occ := b.Occupied()
	empty := ^occ

	genPawnMoves(b, list, us)

	for p := board.Knight; p <= board.King; p++ {
		bb := b.PieceBB(us, p)
		for bb != 0 {
			var from board.Square
			from, bb = bb.PopLSB()
			targets := pieceAttacks(p, us, from, occ) &^ own
			quiet := targets & empty
			captures := targets & b.OccupiedBy(them)
			emitSimple(list, from, quiet, board.FlagQuiet)
			emitSimple(list, from, captures, board.FlagCapture)
		}
	}

	genCastles(b, list, us)

	return list
}

func pieceAttacks(p board.Piece, c board.Color, sq board.Square, occ board.Bitboard) board.Bitboard {
	switch p {
	case board.Knight:
		return board.Bitboard(attacks.Knight(int(sq)))
	case board.King:
		return board.Bitboard(attacks.King(int(sq)))
	case board.Bishop:
		return board.Bitboard(attacks.Bishop(int(sq), uint64(occ)))
	case board.Rook:
		return board.Bitboard(attacks.Rook(int(sq), uint64(occ)))
	case board.Queen:
		return board.Bitboard(attacks.Queen(int(sq), uint64(occ)))
	default:
		return 0
	}
}

func emitSimple(list *board.MoveList, from board.Square, targets board.Bitboard, flag board.MoveFlag) {
	for targets != 0 {
		var to board.Square
		to, targets = targets.PopLSB()
		list.Add(board.NewMove(from, to, flag))
	}
}

func genPawnMoves(b *board.Board, list *board.MoveList, us board.Color) {
	occ := b.Occupied()
	empty := ^occ
	pawns := b.PieceBB(us, board.Pawn)

	var push func(board.Bitboard) board.Bitboard
	var promoRank board.Bitboard
	var pushDelta int

	if us == board.White {
		push = board.Bitboard.ShiftN
		promoRank = rankBB(board.Rank8)
		pushDelta = 8
	} else {
		push = board.Bitboard.ShiftS
		promoRank = rankBB(board.Rank1)
		pushDelta = -8
	}

	singlePush := push(pawns) & empty
	nonPromoSingle := singlePush &^ promoRank
	promoSingle := singlePush & promoRank

	for nonPromoSingle != 0 {
		var to board.Square
		to, nonPromoSingle = nonPromoSingle.PopLSB()
		from := fromOfPush(to, pushDelta)
		list.Add(board.NewMove(from, to, board.FlagQuiet))
	}
	for promoSingle != 0 {
		var to board.Square
		to, promoSingle = promoSingle.PopLSB()
		from := fromOfPush(to, pushDelta)
		addPromotions(list, from, to, false)
	}

	startRankPawns := pawns & fromDoublePushRank(us)
	doublePushBB := push(push(startRankPawns)&empty) & empty
	for doublePushBB != 0 {
		var to board.Square
		to, doublePushBB = doublePushBB.PopLSB()
		from := fromOfPush(fromOfPush(to, pushDelta), pushDelta)
		list.Add(board.NewMove(from, to, board.FlagDoublePawnPush))
	}

	genPawnCaptures(b, list, us)
	genEnPassant(b, list, us)
}

func rankBB(r board.Rank) board.Bitboard {
	return board.RankBB(r)
}

func fromDoublePushRank(us board.Color) board.Bitboard {
	if us == board.White {
		return rankBB(board.Rank2)
	}
	return rankBB(board.Rank7)
}

func fromOfPush(to board.Square, delta int) board.Square {
	return board.Square(int(to) - delta)
}

func addPromotions(list *board.MoveList, from, to board.Square, capture bool) {
	for _, p := range []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight} {
		list.Add(board.NewMove(from, to, board.PromoFlag(p, capture)))
	}
}

// genPawnCaptures emits diagonal pawn captures (including capture-promotions), computed
// directly per color to keep the wrap-safe shift and back-delta pairing unambiguous.
func genPawnCaptures(b *board.Board, list *board.MoveList, us board.Color) {
	them := us.Opponent()
	enemy := b.OccupiedBy(them)
	pawns := b.PieceBB(us, board.Pawn)
	var promoRank board.Bitboard

	type capDir struct {
		shift func(board.Bitboard) board.Bitboard
		delta int // to - from
	}
	var dirs []capDir
	if us == board.White {
		promoRank = rankBB(board.Rank8)
		dirs = []capDir{{board.Bitboard.ShiftNE, 9}, {board.Bitboard.ShiftNW, 7}}
	} else {
		promoRank = rankBB(board.Rank1)
		dirs = []capDir{{board.Bitboard.ShiftSE, -7}, {board.Bitboard.ShiftSW, -9}}
	}

	for _, d := range dirs {
		targets := d.shift(pawns) & enemy
		for targets != 0 {
			var to board.Square
			to, targets = targets.PopLSB()
			from := board.Square(int(to) - d.delta)
			if promoRank.IsSet(to) {
				addPromotions(list, from, to, true)
			} else {
				list.Add(board.NewMove(from, to, board.FlagCapture))
			}
		}
	}
}

func genEnPassant(b *board.Board, list *board.MoveList, us board.Color) {
	ep, ok := b.EnPassant()
	if !ok {
		return
	}
	pawns := b.PieceBB(us, board.Pawn)

	var fromDeltas []int
	if us == board.White {
		fromDeltas = []int{7, 9}
	} else {
		fromDeltas = []int{-7, -9}
	}
	for _, d := range fromDeltas {
		fromIdx := int(ep) - d
		if fromIdx < 0 || fromIdx >= 64 {
			continue
		}
		from := board.Square(fromIdx)
		if !from.IsValid() {
			continue
		}
		// Guard file wrap: the capturing pawn must be on an adjacent file to ep.
		fileDiff := int(from.File()) - int(ep.File())
		if fileDiff != 1 && fileDiff != -1 {
			continue
		}
		if pawns.IsSet(from) {
			list.Add(board.NewMove(from, ep, board.FlagEnPassant))
		}
	}
}

func genCastles(b *board.Board, list *board.MoveList, us board.Color) {
	them := us.Opponent()
	occ := b.Occupied()

	if us == board.White {
		if b.Castling().Has(board.WhiteKingside) &&
			empty(occ, board.FileF, board.Rank1) && empty(occ, board.FileG, board.Rank1) &&
			!b.IsSquareAttacked(sq(board.FileE, board.Rank1), them) &&
			!b.IsSquareAttacked(sq(board.FileF, board.Rank1), them) &&
			!b.IsSquareAttacked(sq(board.FileG, board.Rank1), them) {
			list.Add(board.NewMove(sq(board.FileE, board.Rank1), sq(board.FileG, board.Rank1), board.FlagKingCastle))
		}
		if b.Castling().Has(board.WhiteQueenside) &&
			empty(occ, board.FileD, board.Rank1) && empty(occ, board.FileC, board.Rank1) && empty(occ, board.FileB, board.Rank1) &&
			!b.IsSquareAttacked(sq(board.FileE, board.Rank1), them) &&
			!b.IsSquareAttacked(sq(board.FileD, board.Rank1), them) &&
			!b.IsSquareAttacked(sq(board.FileC, board.Rank1), them) {
			list.Add(board.NewMove(sq(board.FileE, board.Rank1), sq(board.FileC, board.Rank1), board.FlagQueenCastle))
		}
	} else {
		if b.Castling().Has(board.BlackKingside) &&
			empty(occ, board.FileF, board.Rank8) && empty(occ, board.FileG, board.Rank8) &&
			!b.IsSquareAttacked(sq(board.FileE, board.Rank8), them) &&
			!b.IsSquareAttacked(sq(board.FileF, board.Rank8), them) &&
			!b.IsSquareAttacked(sq(board.FileG, board.Rank8), them) {
			list.Add(board.NewMove(sq(board.FileE, board.Rank8), sq(board.FileG, board.Rank8), board.FlagKingCastle))
		}
		if b.Castling().Has(board.BlackQueenside) &&
			empty(occ, board.FileD, board.Rank8) && empty(occ, board.FileC, board.Rank8) && empty(occ, board.FileB, board.Rank8) &&
			!b.IsSquareAttacked(sq(board.FileE, board.Rank8), them) &&
			!b.IsSquareAttacked(sq(board.FileD, board.Rank8), them) &&
			!b.IsSquareAttacked(sq(board.FileC, board.Rank8), them) {
			list.Add(board.NewMove(sq(board.FileE, board.Rank8), sq(board.FileC, board.Rank8), board.FlagQueenCastle))
		}
	}
}

func sq(f board.File, r board.Rank) board.Square { return board.NewSquare(f, r) }

func empty(occ board.Bitboard, f board.File, r board.Rank) bool {
	return !occ.IsSet(sq(f, r))
}

// GenerateLegal generates every legal move for the side to move, by generating
// pseudo-legal moves and filtering out those that leave the mover's own king attacked.
func GenerateLegal(b *board.Board) *board.MoveList {
	pseudo := GeneratePseudoLegal(b)
	legal := &board.MoveList{}
	us := b.SideToMove()

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		undo := b.MakeMove(m)
		if !b.ColorInCheck(us) {
			legal.Add(m)
		}
		b.UnmakeMove(m, undo)
	}
	return legal
}

// IsLegal reports whether m (assumed structurally well-formed) is a legal move in b.
func IsLegal(b *board.Board, m board.Move) bool {
	legal := GenerateLegal(b)
	for i := 0; i < legal.Len(); i++ {
		if legal.At(i) == m {
			return true
		}
	}
	return false
}
