package movegen

import "github.com/herohde/gyrfalcon/pkg/board"

// Perft counts the leaf nodes of the legal move tree rooted at b, searched to depth plies.
// It is the standard move-generator correctness check: the counts at each depth are known
// exactly for a handful of reference positions, so a mismatch pinpoints a generation bug.
// Perft mutates and restores b via Make/UnmakeMove rather than cloning, matching the
// search's own traversal style.
func Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := GenerateLegal(b)
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := b.MakeMove(m)
		nodes += Perft(b, depth-1)
		b.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide is Perft broken down by root move, for diffing against a reference engine's
// output when diagnosing a mismatch.
func PerftDivide(b *board.Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth == 0 {
		return out
	}

	moves := GenerateLegal(b)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		b.MakeMove(m)
		out[m.ToUCI()] = Perft(b, depth-1)
		b.UnmakeLast()
	}
	return out
}
