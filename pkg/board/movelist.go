package board

// MaxMoves bounds the number of legal (or pseudo-legal) moves in any reachable chess
// position (the true bound is 218); MoveList capacity exceeds it.
const MaxMoves = 256

// MoveList is a stack-allocated, fixed-capacity sequence of scored moves. It never
// heap-allocates during search: it is an array value, not a slice backed by the heap,
// so passing it by pointer and appending via Add keeps the hot path allocation-free.
type MoveList struct {
	moves [MaxMoves]Move
	score [MaxMoves]int32
	n     int
}

func (l *MoveList) Len() int {
	return l.n
}

func (l *MoveList) Add(m Move) {
	if l.n >= MaxMoves {
		return
	}
	l.moves[l.n] = m
	l.score[l.n] = 0
	l.n++
}

func (l *MoveList) At(i int) Move {
	return l.moves[i]
}

func (l *MoveList) SetScore(i int, score int32) {
	l.score[i] = score
}

func (l *MoveList) ScoreAt(i int) int32 {
	return l.score[i]
}

// Swap exchanges the moves (and scores) at i and j, used by in-place ordering.
func (l *MoveList) Swap(i, j int) {
	l.moves[i], l.moves[j] = l.moves[j], l.moves[i]
	l.score[i], l.score[j] = l.score[j], l.score[i]
}

// SelectSort performs a partial selection sort, moving the highest-scoring remaining
// move (at index >= i) into position i. This lets callers pull moves lazily (best
// remaining move first) without sorting the full tail up front.
func (l *MoveList) SelectSort(i int) {
	best := i
	for j := i + 1; j < l.n; j++ {
		if l.score[j] > l.score[best] {
			best = j
		}
	}
	if best != i {
		l.Swap(i, best)
	}
}

// SortDescending fully sorts the list by score, descending, stably within ties.
func (l *MoveList) SortDescending() {
	// Insertion sort: moves are few (<=218) and typically nearly-sorted after scoring,
	// and stability within a score tier matters for move ordering (§4.7).
	for i := 1; i < l.n; i++ {
		m, s := l.moves[i], l.score[i]
		j := i - 1
		for j >= 0 && l.score[j] < s {
			l.moves[j+1] = l.moves[j]
			l.score[j+1] = l.score[j]
			j--
		}
		l.moves[j+1] = m
		l.score[j+1] = s
	}
}

// Slice returns the moves as a plain slice, for callers outside the hot path (tests,
// UCI move enumeration) that want normal slice ergonomics.
func (l *MoveList) Slice() []Move {
	out := make([]Move, l.n)
	copy(out, l.moves[:l.n])
	return out
}

// Contains reports whether the list contains a move with the same from/to/promotion.
func (l *MoveList) Contains(m Move) bool {
	for i := 0; i < l.n; i++ {
		if l.moves[i].From() == m.From() && l.moves[i].To() == m.To() && l.moves[i].PromotionPiece() == m.PromotionPiece() {
			return true
		}
	}
	return false
}
