package eval

import "github.com/herohde/gyrfalcon/pkg/board"

const (
	shieldCloseMG Score = 15
	shieldCloseEG Score = 10
	shieldFarMG   Score = 8
	shieldFarEG   Score = 5

	missingShieldMG Score = -10
	missingShieldEG Score = -3

	openFileOnKingMG    Score = -25
	openFileOnKingEG    Score = -8
	openFileAdjacentMG  Score = -12
	openFileAdjacentEG  Score = -4
	semiOpenOnKingMG    Score = -12
	semiOpenOnKingEG    Score = -4
	semiOpenAdjacentMG  Score = -6
	semiOpenAdjacentEG  Score = 0

	queenAttackWeight  = 4
	rookAttackWeight   = 3
	bishopAttackWeight = 2
	knightAttackWeight = 2
	pawnAttackWeight   = 1
)

// attackWeightPenalty converts a king-zone attacker weight sum into a non-linear penalty,
// in centipawns. Low weights are nearly free; the curve steepens as the zone gets crowded.
var attackWeightPenalty = [...]Score{
	0, 0, -10, -20, -35, -55, -80, -110,
	-145, -185, -200, -200, -200, -200, -200, -200, -200, -200, -200, -200,
}

var tropismBonus = [8]Score{0, 10, 8, 6, 4, 2, 1, 0}

// kingSafety returns the (mg, eg) king-safety score for color, given the precomputed game
// phase (0 = middlegame, MaxPhase = endgame). King-safety terms are weighted down as the
// position approaches the endgame, where mating nets and pawn shields matter much less.
func kingSafety(b *board.Board, c board.Color, phase int, divisor int) (Score, Score) {
	kingBB := b.PieceBB(c, board.King)
	if kingBB.Empty() {
		return 0, 0
	}
	kingSq := kingBB.LSB()

	mg, eg := pawnShield(b, kingSq, c)

	if phase < 200 {
		pen := kingAttackers(b, kingSq, c)
		mg += pen
		eg += pen / 4
	}

	fm, fe := openFilesNearKing(b, kingSq, c)
	mg += fm
	eg += fe

	if phase < 200 {
		mg += tropism(b, kingSq, c)
	}

	return mg / Score(divisor), eg / Score(divisor)
}

func pawnShield(b *board.Board, kingSq board.Square, c board.Color) (Score, Score) {
	f, r := int(kingSq.File()), int(kingSq.Rank())
	// Shield evaluation only makes sense for a king that has moved to a flank; centrally
	// placed kings get no bonus or penalty here (activity.go's back-rank term covers them).
	if f > 2 && f < 5 {
		return 0, 0
	}

	ahead1, ahead2 := r+1, r+2
	if c == board.Black {
		ahead1, ahead2 = r-1, r-2
	}

	ourPawns := b.PieceBB(c, board.Pawn)
	var mg, eg Score
	for df := -1; df <= 1; df++ {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		hasClose := ahead1 >= 0 && ahead1 <= 7 && ourPawns.IsSet(board.NewSquare(board.File(nf), board.Rank(ahead1)))
		hasFar := ahead2 >= 0 && ahead2 <= 7 && ourPawns.IsSet(board.NewSquare(board.File(nf), board.Rank(ahead2)))
		switch {
		case hasClose:
			mg += shieldCloseMG
			eg += shieldCloseEG
		case hasFar:
			mg += shieldFarMG
			eg += shieldFarEG
		default:
			mg += missingShieldMG
			eg += missingShieldEG
		}
	}
	return mg, eg
}

func kingAttackers(b *board.Board, kingSq board.Square, c board.Color) Score {
	them := c.Opponent()
	f, r := int(kingSq.File()), int(kingSq.Rank())

	weight := 0
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			nf, nr := f+df, r+dr
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			sq := board.NewSquare(board.File(nf), board.Rank(nr))
			weight += zoneAttackWeight(b, sq, them)
		}
	}
	if weight >= len(attackWeightPenalty) {
		weight = len(attackWeightPenalty) - 1
	}
	if weight < 0 {
		weight = 0
	}
	return attackWeightPenalty[weight]
}

// zoneAttackWeight returns the piece-weighted attacker count for one king-zone square,
// without double counting: AttackersTo already found the pieces, this assigns their value.
func zoneAttackWeight(b *board.Board, sq board.Square, by board.Color) int {
	w := 0
	att := b.AttackersTo(sq, by)
	for att != 0 {
		var from board.Square
		from, att = att.PopLSB()
		_, p, ok := b.PieceAt(from)
		if !ok {
			continue
		}
		switch p {
		case board.Queen:
			w += queenAttackWeight
		case board.Rook:
			w += rookAttackWeight
		case board.Bishop:
			w += bishopAttackWeight
		case board.Knight:
			w += knightAttackWeight
		case board.Pawn:
			w += pawnAttackWeight
		}
	}
	return w
}

func openFilesNearKing(b *board.Board, kingSq board.Square, c board.Color) (Score, Score) {
	f := int(kingSq.File())
	ourPawns := b.PieceBB(c, board.Pawn)
	theirPawns := b.PieceBB(c.Opponent(), board.Pawn)

	var mg, eg Score
	for df := -1; df <= 1; df++ {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		file := board.FileBB(board.File(nf))
		ourOnFile := (ourPawns & file) != 0
		theirOnFile := (theirPawns & file) != 0

		onKingFile := df == 0
		switch {
		case !ourOnFile && !theirOnFile:
			if onKingFile {
				mg += openFileOnKingMG
				eg += openFileOnKingEG
			} else {
				mg += openFileAdjacentMG
				eg += openFileAdjacentEG
			}
		case !ourOnFile && theirOnFile:
			if onKingFile {
				mg += semiOpenOnKingMG
				eg += semiOpenOnKingEG
			} else {
				mg += semiOpenAdjacentMG
				eg += semiOpenAdjacentEG
			}
		}
	}
	return mg, eg
}

func tropism(b *board.Board, kingSq board.Square, c board.Color) Score {
	them := c.Opponent()
	var bonus Score
	for p := board.Knight; p <= board.Queen; p++ {
		bb := b.PieceBB(them, p)
		for bb != 0 {
			var sq board.Square
			sq, bb = bb.PopLSB()
			d := chebyshev(kingSq, sq)
			if d < len(tropismBonus) {
				bonus += tropismBonus[d]
			}
		}
	}
	return bonus
}

func chebyshev(a, b board.Square) int {
	df := int(a.File()) - int(b.File())
	dr := int(a.Rank()) - int(b.Rank())
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}
