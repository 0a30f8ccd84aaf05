// Package attacks holds precomputed, read-only attack tables for every piece kind. It has
// no dependency on package board (to avoid an import cycle, since board uses these tables
// for check detection) and instead operates on plain squares (0..63, little-endian
// rank-file: square = rank*8 + file) and bitboards (uint64, bit i set means square i is a
// member). Tables are initialized once at process start and never mutated thereafter;
// sliding-piece attacks are computed on demand from the current occupancy via ray-scanning,
// which is total and deterministic: identical (square, occupied) pairs always yield
// identical output.
package attacks

const (
	fileABB uint64 = 0x0101010101010101
	fileHBB        = fileABB << 7
)

var (
	knightTable [64]uint64
	kingTable   [64]uint64
	pawnTable   [2][64]uint64

	// rays[dir][sq] is the full ray from sq (exclusive) to the board edge in that direction.
	rays [8][64]uint64
)

const (
	DirN = iota
	DirS
	DirE
	DirW
	DirNE
	DirNW
	DirSE
	DirSW
)

// Color indices, matching board.White/board.Black.
const (
	White = 0
	Black = 1
)

func init() {
	for sq := 0; sq < 64; sq++ {
		knightTable[sq] = computeKnight(sq)
		kingTable[sq] = computeKing(sq)
		pawnTable[White][sq] = computePawn(White, sq)
		pawnTable[Black][sq] = computePawn(Black, sq)
		for d := 0; d < 8; d++ {
			rays[d][sq] = computeRay(d, sq)
		}
	}
}

func sqBB(sq int) uint64 { return uint64(1) << uint(sq) }
func fileOf(sq int) int  { return sq % 8 }
func rankOf(sq int) int  { return sq / 8 }
func sqAt(f, r int) int  { return r*8 + f }

func computeKnight(sq int) uint64 {
	f, r := fileOf(sq), rankOf(sq)
	var out uint64
	deltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			out |= sqBB(sqAt(nf, nr))
		}
	}
	return out
}

func computeKing(sq int) uint64 {
	f, r := fileOf(sq), rankOf(sq)
	var out uint64
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			nf, nr := f+df, r+dr
			if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				out |= sqBB(sqAt(nf, nr))
			}
		}
	}
	return out
}

func computePawn(c, sq int) uint64 {
	f, r := fileOf(sq), rankOf(sq)
	dr := 1
	if c == Black {
		dr = -1
	}
	var out uint64
	for _, df := range []int{-1, 1} {
		nf, nr := f+df, r+dr
		if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			out |= sqBB(sqAt(nf, nr))
		}
	}
	return out
}

var dirDelta = [8][2]int{
	DirN:  {0, 1},
	DirS:  {0, -1},
	DirE:  {1, 0},
	DirW:  {-1, 0},
	DirNE: {1, 1},
	DirNW: {-1, 1},
	DirSE: {1, -1},
	DirSW: {-1, -1},
}

func computeRay(dir, sq int) uint64 {
	f, r := fileOf(sq), rankOf(sq)
	d := dirDelta[dir]
	var out uint64
	for i := 1; i < 8; i++ {
		nf, nr := f+d[0]*i, r+d[1]*i
		if nf < 0 || nf >= 8 || nr < 0 || nr >= 8 {
			break
		}
		out |= sqBB(sqAt(nf, nr))
	}
	return out
}

func lsb(b uint64) int {
	return trailingZeros(b)
}

func msb(b uint64) int {
	return 63 - leadingZeros(b)
}

// Knight returns the attack bitboard for a knight on sq.
func Knight(sq int) uint64 { return knightTable[sq] }

// King returns the attack bitboard for a king on sq.
func King(sq int) uint64 { return kingTable[sq] }

// Pawn returns the diagonal-capture attack bitboard for a pawn of color c on sq.
func Pawn(c, sq int) uint64 { return pawnTable[c][sq] }

// slideTowards walks a single ray, stopping at (and including) the first blocker.
func slideTowards(dir, sq int, occupied uint64) uint64 {
	ray := rays[dir][sq]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var blockSq int
	switch dir {
	case DirN, DirE, DirNE, DirNW:
		blockSq = lsb(blockers)
	default:
		blockSq = msb(blockers)
	}
	return ray &^ rays[dir][blockSq]
}

// Bishop returns the attack bitboard for a bishop on sq given the full board occupancy.
func Bishop(sq int, occupied uint64) uint64 {
	return slideTowards(DirNE, sq, occupied) | slideTowards(DirNW, sq, occupied) |
		slideTowards(DirSE, sq, occupied) | slideTowards(DirSW, sq, occupied)
}

// Rook returns the attack bitboard for a rook on sq given the full board occupancy.
func Rook(sq int, occupied uint64) uint64 {
	return slideTowards(DirN, sq, occupied) | slideTowards(DirS, sq, occupied) |
		slideTowards(DirE, sq, occupied) | slideTowards(DirW, sq, occupied)
}

// Queen returns the union of Bishop and Rook attacks.
func Queen(sq int, occupied uint64) uint64 {
	return Bishop(sq, occupied) | Rook(sq, occupied)
}
