package search

import (
	"math/bits"
	"sync"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/eval"
)

// Bound classifies a stored score relative to the true minimax value.
type Bound uint8

const (
	Exact Bound = iota
	Lower
	Upper
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "Exact"
	case Lower:
		return "Lower"
	case Upper:
		return "Upper"
	default:
		return "?"
	}
}

// TTEntry is one transposition-table slot.
type TTEntry struct {
	Hash  board.ZobristHash
	Move  board.Move
	Score eval.Score
	Depth int
	Bound Bound
	Gen   uint8
}

// TranspositionTable is a fixed-capacity, open-addressed cache of search results, indexed
// by hash & (size-1). Must be safe for concurrent use even though the current search has a
// single search thread, because the transport layer may probe it (e.g. hashfull reporting)
// from another goroutine.
type TranspositionTable struct {
	mu      sync.Mutex
	entries []TTEntry
	mask    uint64
	gen     uint8
	used    int
}

// NewTranspositionTable allocates a table sized to the next power of two entries not
// exceeding sizeBytes, each entry accounted at a fixed 32 bytes (the size of TTEntry on
// 64-bit platforms).
func NewTranspositionTable(sizeBytes uint64) *TranspositionTable {
	const entrySize = 32
	count := sizeBytes / entrySize
	if count == 0 {
		count = 1
	}
	n := uint64(1) << (63 - bits.LeadingZeros64(count))

	return &TranspositionTable{
		entries: make([]TTEntry, n),
		mask:    n - 1,
	}
}

// Probe returns the entry stored for hash, iff the stored hash matches exactly.
func (t *TranspositionTable) Probe(hash board.ZobristHash) (TTEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[uint64(hash)&t.mask]
	if e.Hash == hash && e.Gen != 0 {
		return e, true
	}
	return TTEntry{}, false
}

// Store writes an entry per the replacement policy: always replace an empty slot, a slot
// holding the same position, a same-or-deeper entry, or one from an older generation;
// otherwise keep the existing entry. Mate scores are stored as distances from the stored
// node, by the caller passing a ply-adjusted score (see AdjustMateForStore).
func (t *TranspositionTable) Store(hash board.ZobristHash, move board.Move, score eval.Score, depth int, bound Bound) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := uint64(hash) & t.mask
	old := t.entries[idx]

	replace := old.Gen == 0 || old.Hash == hash || depth >= old.Depth || old.Gen != t.gen
	if !replace {
		return
	}
	if old.Gen == 0 {
		t.used++
	}

	t.entries[idx] = TTEntry{
		Hash:  hash,
		Move:  move,
		Score: score,
		Depth: depth,
		Bound: bound,
		Gen:   t.gen,
	}
}

// NewSearch bumps the generation counter (wrapping), subordinating older entries during
// the next Store's replacement decision without invalidating them for Probe.
func (t *TranspositionTable) NewSearch() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.gen == 0 {
		t.gen = 1
	}
}

// Clear zeroes every entry.
func (t *TranspositionTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.entries {
		t.entries[i] = TTEntry{}
	}
	t.used = 0
	t.gen = 1
}

// Hashfull samples (up to) the first 1000 entries and returns the fill rate in permille.
func (t *TranspositionTable) Hashfull() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.entries)
	if n > 1000 {
		n = 1000
	}
	filled := 0
	for i := 0; i < n; i++ {
		if t.entries[i].Gen != 0 {
			filled++
		}
	}
	if n == 0 {
		return 0
	}
	return filled * 1000 / n
}

// SizeBytes returns the table's allocation size.
func (t *TranspositionTable) SizeBytes() uint64 {
	return uint64(len(t.entries)) * 32
}

// AdjustMateForStore converts a mate score computed at ply (mate distance counted from the
// search root) into one counted from the current node, so that the entry remains
// meaningful when probed from a different ply via a transposition.
func AdjustMateForStore(score eval.Score, ply int) eval.Score {
	if score > eval.Mate-1000 {
		return score + eval.Score(ply)
	}
	if score < -eval.Mate+1000 {
		return score - eval.Score(ply)
	}
	return score
}

// AdjustMateForProbe converts a node-relative mate score read from the TT back into one
// counted from the search root, given the current ply.
func AdjustMateForProbe(score eval.Score, ply int) eval.Score {
	if score > eval.Mate-1000 {
		return score - eval.Score(ply)
	}
	if score < -eval.Mate+1000 {
		return score + eval.Score(ply)
	}
	return score
}
