package eval

import "github.com/herohde/gyrfalcon/pkg/board"

const (
	rookOpenFileMG     Score = 30
	rookOpenFileEG     Score = 15
	rookSemiOpenFileMG Score = 15
	rookSemiOpenFileEG Score = 10
	rookOnSeventhMG    Score = 25
	rookOnSeventhEG    Score = 30
	tworooksSeventhMG  Score = 40
	tworooksSeventhEG  Score = 50

	bishopPairMG    Score = 50
	bishopPairEG    Score = 60
	badBishopMG     Score = -15
	badBishopEG     Score = -10
	trappedBishopMG Score = -150
	trappedBishopEG Score = -100

	knightOutpostBaseMG    Score = 20
	knightOutpostBaseEG    Score = 15
	knightOutpostCentralMG Score = 10
	knightOutpostCentralEG Score = 5
	trappedKnightMG        Score = -100
	trappedKnightEG        Score = -80

	// backRankPhaseCutoff matches the original evaluator's midgame-only gate: above this
	// phase value the position is close enough to a pure endgame that a back-rank piece is
	// no longer a placement weakness worth penalizing.
	backRankPhaseCutoff = 200

	backRankPenaltyMG Score = -10
	centralizationMG  Score = 5
	centralizationEG  Score = 2
)

// activity returns the (mg, eg) piece-activity score for color: rook file/rank placement,
// bishop pair and bad/trapped bishops, knight outposts and trapped knights, a small
// centralization bonus for minor pieces, and a midgame-only back-rank penalty for knights,
// bishops, and rooks.
func activity(b *board.Board, c board.Color, phase, divisor int) (Score, Score) {
	mg, eg := rookActivity(b, c)
	bm, be := bishopActivity(b, c)
	mg += bm
	eg += be
	km, ke := knightActivity(b, c)
	mg += km
	eg += ke
	cm, ce := centralizationAndBackRank(b, c, phase)
	mg += cm
	eg += ce

	return mg / Score(divisor), eg / Score(divisor)
}

func rookActivity(b *board.Board, c board.Color) (Score, Score) {
	ourPawns := b.PieceBB(c, board.Pawn)
	theirPawns := b.PieceBB(c.Opponent(), board.Pawn)

	seventh := board.Rank7
	if c == board.Black {
		seventh = board.Rank2
	}

	var mg, eg Score
	onSeventh := 0
	rooks := b.PieceBB(c, board.Rook)
	for rooks != 0 {
		var sq board.Square
		sq, rooks = rooks.PopLSB()
		file := board.FileBB(sq.File())

		switch {
		case (ourPawns & file) == 0 && (theirPawns & file) == 0:
			mg += rookOpenFileMG
			eg += rookOpenFileEG
		case (ourPawns & file) == 0:
			mg += rookSemiOpenFileMG
			eg += rookSemiOpenFileEG
		}
		if sq.Rank() == seventh {
			onSeventh++
		}
	}
	if onSeventh >= 2 {
		mg += tworooksSeventhMG
		eg += tworooksSeventhEG
	} else if onSeventh == 1 {
		mg += rookOnSeventhMG
		eg += rookOnSeventhEG
	}
	return mg, eg
}

func bishopActivity(b *board.Board, c board.Color) (Score, Score) {
	bishops := b.PieceBB(c, board.Bishop)
	ourPawns := b.PieceBB(c, board.Pawn)
	occ := b.Occupied()

	var mg, eg Score
	if bishops.PopCount() >= 2 {
		mg += bishopPairMG
		eg += bishopPairEG
	}

	bb := bishops
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.PopLSB()
		if isTrappedBishop(sq, c, occ) {
			mg += trappedBishopMG
			eg += trappedBishopEG
		} else if isBadBishop(sq, ourPawns) {
			mg += badBishopMG
			eg += badBishopEG
		}
	}
	return mg, eg
}

func isTrappedBishop(sq board.Square, c board.Color, occ board.Bitboard) bool {
	a7 := board.NewSquare(board.FileA, board.Rank7)
	h7 := board.NewSquare(board.FileH, board.Rank7)
	a2 := board.NewSquare(board.FileA, board.Rank2)
	h2 := board.NewSquare(board.FileH, board.Rank2)

	var corner board.Square
	switch {
	case c == board.White && sq == a7:
		corner = board.NewSquare(board.FileB, board.Rank6)
	case c == board.White && sq == h7:
		corner = board.NewSquare(board.FileG, board.Rank6)
	case c == board.Black && sq == a2:
		corner = board.NewSquare(board.FileB, board.Rank3)
	case c == board.Black && sq == h2:
		corner = board.NewSquare(board.FileG, board.Rank3)
	default:
		return false
	}
	return occ.IsSet(corner)
}

// isBadBishop is true when most of the side's own pawns sit on the bishop's square color,
// blocking its diagonals.
func isBadBishop(sq board.Square, ourPawns board.Bitboard) bool {
	lightSquared := (int(sq.File())+int(sq.Rank()))%2 == 0
	var sameSq int
	bb := ourPawns
	for bb != 0 {
		var p board.Square
		p, bb = bb.PopLSB()
		pLight := (int(p.File())+int(p.Rank()))%2 == 0
		if pLight == lightSquared {
			sameSq++
		}
	}
	return sameSq*2 > ourPawns.PopCount()
}

func knightActivity(b *board.Board, c board.Color) (Score, Score) {
	ourPawns := b.PieceBB(c, board.Pawn)
	theirPawns := b.PieceBB(c.Opponent(), board.Pawn)
	occ := b.Occupied()

	var mg, eg Score
	knights := b.PieceBB(c, board.Knight)
	for knights != 0 {
		var sq board.Square
		sq, knights = knights.PopLSB()

		if isTrappedKnight(sq, occ) {
			mg += trappedKnightMG
			eg += trappedKnightEG
			continue
		}
		if isKnightOutpost(sq, c, ourPawns, theirPawns) {
			mg += knightOutpostBaseMG
			eg += knightOutpostBaseEG
			if isCentralSquare(sq) {
				mg += knightOutpostCentralMG
				eg += knightOutpostCentralEG
			}
		}
	}
	return mg, eg
}

func isTrappedKnight(sq board.Square, occ board.Bitboard) bool {
	f, r := sq.File(), sq.Rank()
	onEdge := f == board.FileA || f == board.FileH || r == board.Rank1 || r == board.Rank8
	if !onEdge {
		return false
	}
	// Approximate "low mobility" by corner/edge proximity; exact destination-square
	// counting belongs to a full mobility term this evaluator does not implement.
	corners := []board.Square{
		board.NewSquare(board.FileA, board.Rank1), board.NewSquare(board.FileA, board.Rank8),
		board.NewSquare(board.FileH, board.Rank1), board.NewSquare(board.FileH, board.Rank8),
	}
	for _, c := range corners {
		if sq == c {
			return true
		}
	}
	return false
}

func isKnightOutpost(sq board.Square, c board.Color, ourPawns, theirPawns board.Bitboard) bool {
	r := int(sq.Rank())
	onOutpostRanks := (c == board.White && r >= 3 && r <= 5) || (c == board.Black && r >= 2 && r <= 4)
	if !onOutpostRanks {
		return false
	}
	if !isProtected(sq, c, ourPawns) {
		return false
	}
	return !canBeAttackedByPawn(sq, c, theirPawns)
}

func canBeAttackedByPawn(sq board.Square, us board.Color, enemyPawns board.Bitboard) bool {
	f := int(sq.File())
	r := int(sq.Rank())
	var mask board.Bitboard
	for _, df := range []int{-1, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		file := board.FileBB(board.File(nf))
		if us == board.White {
			mask |= file &^ ranksAtOrBelow(r)
		} else {
			mask |= file &^ ranksAtOrAbove(r)
		}
	}
	return (enemyPawns & mask) != 0
}

func isCentralSquare(sq board.Square) bool {
	f, r := sq.File(), sq.Rank()
	return (f == board.FileD || f == board.FileE) && (r == board.Rank4 || r == board.Rank5)
}

// centralizationAndBackRank applies the small centralization bonus to minor pieces only
// (spec restricts it to knights and bishops), and the midgame-only back-rank penalty to
// knights, bishops, and rooks, matching the original evaluator's undifferentiated piece
// set for that term.
func centralizationAndBackRank(b *board.Board, c board.Color, phase int) (Score, Score) {
	backRank := board.Rank1
	if c == board.Black {
		backRank = board.Rank8
	}
	penalizeBackRank := phase < backRankPhaseCutoff

	var mg, eg Score
	for _, p := range [2]board.Piece{board.Knight, board.Bishop} {
		bb := b.PieceBB(c, p)
		for bb != 0 {
			var sq board.Square
			sq, bb = bb.PopLSB()
			if isCentralSquare(sq) {
				mg += centralizationMG
				eg += centralizationEG
			}
			if penalizeBackRank && sq.Rank() == backRank {
				mg += backRankPenaltyMG
			}
		}
	}

	rooks := b.PieceBB(c, board.Rook)
	for penalizeBackRank && rooks != 0 {
		var sq board.Square
		sq, rooks = rooks.PopLSB()
		if sq.Rank() == backRank {
			mg += backRankPenaltyMG
		}
	}
	return mg, eg
}
