package eval

import "github.com/herohde/gyrfalcon/pkg/board"

// Pawn-structure penalties and bonuses, in centipawns, as [midgame, endgame] pairs.
const (
	doubledPawnMG   Score = -15
	doubledPawnEG   Score = -15
	isolatedPawnMG  Score = -15
	isolatedPawnEG  Score = -20
	backwardPawnMG  Score = -10
	backwardPawnEG  Score = -15
	protectedPawnMG Score = 5
	protectedPawnEG Score = 10
	pawnIslandMG    Score = -10
	pawnIslandEG    Score = -15
)

var passedPawnBonusMG = [8]Score{0, 0, 10, 15, 30, 50, 80, 0}
var passedPawnBonusEG = [8]Score{0, 0, 15, 25, 50, 90, 150, 0}

// pawnEntry is cached by its pawn-only Zobrist key; it stores no reference back to the
// board, only the two scores, so nothing can keep a position alive past its use.
type pawnEntry struct {
	key    board.ZobristHash
	valid  bool
	mg, eg Score
}

// pawnHashSize is the fixed entry count for the pawn-hash table (§5: "fixed 16K-entry
// table").
const pawnHashSize = 16 * 1024

// PawnCache is a direct-mapped cache of pawn-structure evaluations keyed by a pawn-only
// Zobrist hash, avoiding recomputation across positions that share the same pawn skeleton.
type PawnCache struct {
	entries []pawnEntry
}

// NewPawnCache creates an empty, fixed-size pawn-structure cache.
func NewPawnCache() *PawnCache {
	return &PawnCache{entries: make([]pawnEntry, pawnHashSize)}
}

// Clear resets the cache, e.g. at the start of a new game.
func (c *PawnCache) Clear() {
	for i := range c.entries {
		c.entries[i] = pawnEntry{}
	}
}

func (c *PawnCache) slot(key board.ZobristHash) *pawnEntry {
	return &c.entries[uint64(key)%uint64(len(c.entries))]
}

// pawnKey is a Zobrist-style hash over pawn placement only (reusing the piece-square keys
// that also feed the full position hash, restricted to Pawn), so two positions with the
// same pawn skeleton but different piece placement elsewhere collide to the same cache
// line only when their pawns genuinely match.
func pawnKey(b *board.Board) board.ZobristHash {
	var h board.ZobristHash
	for _, c := range [2]board.Color{board.White, board.Black} {
		bb := b.PieceBB(c, board.Pawn)
		for bb != 0 {
			var sq board.Square
			sq, bb = bb.PopLSB()
			h ^= board.PawnZobristKey(c, sq)
		}
	}
	return h
}

// pawnStructure returns the White-perspective (mg, eg) pawn-structure score, consulting
// and populating cache.
func pawnStructure(b *board.Board, cache *PawnCache) (Score, Score) {
	key := pawnKey(b)
	if cache != nil {
		if e := cache.slot(key); e.valid && e.key == key {
			return e.mg, e.eg
		}
	}

	var mg, eg Score
	for _, c := range [2]board.Color{board.White, board.Black} {
		m, e := evaluatePawnsForSide(b, c)
		mg += m * Unit(c)
		eg += e * Unit(c)
	}

	if cache != nil {
		*cache.slot(key) = pawnEntry{key: key, valid: true, mg: mg, eg: eg}
	}
	return mg, eg
}

func evaluatePawnsForSide(b *board.Board, c board.Color) (Score, Score) {
	us := b.PieceBB(c, board.Pawn)
	them := b.PieceBB(c.Opponent(), board.Pawn)

	var mg, eg Score
	occupiedFiles := [8]int{}

	bb := us
	for bb != 0 {
		var sq board.Square
		sq, bb = bb.PopLSB()
		f, r := int(sq.File()), int(sq.Rank())
		occupiedFiles[f]++

		if occupiedFiles[f] > 1 {
			mg += doubledPawnMG
			eg += doubledPawnEG
		}
		if isIsolated(f, us) {
			mg += isolatedPawnMG
			eg += isolatedPawnEG
		} else if isBackward(sq, c, us, them) {
			mg += backwardPawnMG
			eg += backwardPawnEG
		}
		if isProtected(sq, c, us) {
			mg += protectedPawnMG
			eg += protectedPawnEG
		}
		if isPassed(sq, c, them) {
			relRank := r
			if c == board.Black {
				relRank = 7 - r
			}
			mg += passedPawnBonusMG[relRank]
			eg += passedPawnBonusEG[relRank]
		}
	}

	islands := countPawnIslands(us)
	if islands > 1 {
		mg += Score(islands-1) * pawnIslandMG
		eg += Score(islands-1) * pawnIslandEG
	}

	return mg, eg
}

func isIsolated(file int, pawns board.Bitboard) bool {
	adj := board.EmptyBitboard
	if file > 0 {
		adj |= board.FileBB(board.File(file - 1))
	}
	if file < 7 {
		adj |= board.FileBB(board.File(file + 1))
	}
	return (pawns & adj).Empty()
}

func isProtected(sq board.Square, c board.Color, ourPawns board.Bitboard) bool {
	f, r := int(sq.File()), int(sq.Rank())
	behind := r - 1
	if c == board.Black {
		behind = r + 1
	}
	if behind < 0 || behind > 7 {
		return false
	}
	for _, df := range []int{-1, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		if ourPawns.IsSet(board.NewSquare(board.File(nf), board.Rank(behind))) {
			return true
		}
	}
	return false
}

func isBackward(sq board.Square, c board.Color, ourPawns, theirPawns board.Bitboard) bool {
	f, r := int(sq.File()), int(sq.Rank())
	ahead := r + 1
	if c == board.Black {
		ahead = r - 1
	}
	if ahead < 0 || ahead > 7 {
		return false
	}
	// A pawn is backward if no friendly pawn on an adjacent file is level with or behind
	// it, and its stop square is controlled by an enemy pawn.
	for _, df := range []int{-1, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		file := board.FileBB(board.File(nf))
		if c == board.White {
			if (ourPawns & file & ranksAtOrBelow(r)) != 0 {
				return false
			}
		} else {
			if (ourPawns & file & ranksAtOrAbove(r)) != 0 {
				return false
			}
		}
	}
	stop := board.NewSquare(board.File(f), board.Rank(ahead))
	return isAttackedByPawn(stop, c.Opponent(), theirPawns)
}

func ranksAtOrBelow(r int) board.Bitboard {
	var bb board.Bitboard
	for i := 0; i <= r; i++ {
		bb |= board.RankBB(board.Rank(i))
	}
	return bb
}

func ranksAtOrAbove(r int) board.Bitboard {
	var bb board.Bitboard
	for i := r; i <= 7; i++ {
		bb |= board.RankBB(board.Rank(i))
	}
	return bb
}

func isAttackedByPawn(sq board.Square, byColor board.Color, pawns board.Bitboard) bool {
	f, r := int(sq.File()), int(sq.Rank())
	behind := r - 1
	if byColor == board.Black {
		behind = r + 1
	}
	if behind < 0 || behind > 7 {
		return false
	}
	for _, df := range []int{-1, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		if pawns.IsSet(board.NewSquare(board.File(nf), board.Rank(behind))) {
			return true
		}
	}
	return false
}

func isPassed(sq board.Square, c board.Color, enemyPawns board.Bitboard) bool {
	f, r := int(sq.File()), int(sq.Rank())
	var mask board.Bitboard
	for _, df := range []int{-1, 0, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		file := board.FileBB(board.File(nf))
		if c == board.White {
			mask |= file &^ ranksAtOrBelow(r)
		} else {
			mask |= file &^ ranksAtOrAbove(r)
		}
	}
	return (enemyPawns & mask).Empty()
}

func countPawnIslands(pawns board.Bitboard) int {
	islands := 0
	inIsland := false
	for f := 0; f < 8; f++ {
		if (pawns & board.FileBB(board.File(f))) != 0 {
			if !inIsland {
				islands++
				inIsland = true
			}
		} else {
			inIsland = false
		}
	}
	return islands
}
