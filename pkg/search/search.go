// Package search implements staged alpha-beta search over a board.Board: negamax with
// null-move pruning, late-move reductions, principal-variation search, quiescence, and the
// forward-pruning heuristics and extensions described for L4 of the engine.
package search

import (
	"sync/atomic"
	"time"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/movegen"
)

// MaxDepth bounds recursion: 64 plies of full search, each eligible for at most 16 plies
// of additional extension.
const (
	MaxDepth       = 64
	maxExtension   = 16
	nodesPerPoll   = 1024
)

// Config holds the tunable search parameters from the engine's configuration options
// (§6). Every forward-pruning rule reads its margin from here so it can be disabled
// (by a very large/negative margin) or retuned without touching the core algorithm.
type Config struct {
	LMRBaseReduction  int
	LMRMoveThreshold  int
	LMRDepthThreshold int

	NullMoveR        int
	NullMoveMinDepth int

	FutilityMargin [4]eval.Score // index 1..3
	RFPMargin      [6]eval.Score // index 1..5
	RazorMargin    [4]eval.Score // index 1..3
	LMPThreshold   [4]int        // index 1..3

	AspirationDelta eval.Score

	DisableNullMove   bool
	DisableRFP        bool
	DisableFutility   bool
	DisableRazoring   bool
	DisableLMP        bool
	DisableSEEPruning bool
	DisableExtensions bool
}

// DefaultConfig returns the factory-default tuning, matching the option table defaults.
func DefaultConfig() Config {
	return Config{
		LMRBaseReduction:  2,
		LMRMoveThreshold:  6,
		LMRDepthThreshold: 6,

		NullMoveR:        2,
		NullMoveMinDepth: 3,

		FutilityMargin: [4]eval.Score{0, 150, 250, 350},
		RFPMargin:      [6]eval.Score{0, 100, 160, 220, 280, 340},
		RazorMargin:    [4]eval.Score{0, 200, 300, 400},
		LMPThreshold:   [4]int{0, 3, 6, 12},

		AspirationDelta: 50,
	}
}

// PV is the result of a single completed depth of iterative deepening.
type PV struct {
	Depth int
	Score eval.Score
	Moves []board.Move
	Nodes uint64
	Time  time.Duration
}

// Engine runs staged alpha-beta search against a single board instance, made and unmade
// in place on the search thread's call stack: no board clone happens per node.
type Engine struct {
	Config Config
	TT     *TranspositionTable
	Order  *OrderingTables
	Eval   *eval.Evaluator

	nodes   uint64
	stopped *atomic.Bool

	// excludeRoot holds root moves already reported by an earlier multi-PV line; only
	// consulted at ply 0. Managed by RunMultiPV and otherwise left nil.
	excludeRoot []board.Move
}

// NewEngine creates a search engine with the given table, ordering state, and evaluator.
func NewEngine(cfg Config, tt *TranspositionTable, order *OrderingTables, e *eval.Evaluator) *Engine {
	return &Engine{
		Config:  cfg,
		TT:      tt,
		Order:   order,
		Eval:    e,
		stopped: &atomic.Bool{},
	}
}

// Stop requests the current search to unwind at the next poll point. Idempotent, and safe
// to call from a goroutine other than the one running Run.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Stopped reports whether Stop has been called for the in-flight search.
func (e *Engine) Stopped() bool {
	return e.stopped.Load()
}

// Reset clears the stop flag and node counter ahead of a new search.
func (e *Engine) Reset() {
	e.stopped.Store(false)
	e.nodes = 0
	e.excludeRoot = nil
}

// Nodes returns the node count accumulated so far by the in-flight or most recent search.
func (e *Engine) Nodes() uint64 {
	return e.nodes
}

// Run searches b to a fixed depth using an aspiration window seeded around prevScore (or a
// full window if this is one of the first few iterations), per §4.8.1.
func (e *Engine) Run(b *board.Board, depth int, prevScore eval.Score, havePrev bool) PV {
	// Every legal root move has already been reported by an earlier multi-PV line: nothing
	// to search, and the aspiration-window retry loop below would otherwise spin forever
	// trying to clear a fail-low against the sentinel score searchRoot returns in this case.
	if e.rootExhausted(b) {
		return PV{Depth: depth, Nodes: e.nodes}
	}

	e.Order.ClearHistory()
	e.TT.NewSearch()

	if depth <= 4 || !havePrev {
		score, moves := e.searchRoot(b, depth, -eval.Inf, eval.Inf)
		return PV{Depth: depth, Score: score, Moves: moves, Nodes: e.nodes}
	}

	delta := e.Config.AspirationDelta
	alpha, beta := prevScore-delta, prevScore+delta

	for {
		score, moves := e.searchRoot(b, depth, alpha, beta)
		if e.Stopped() {
			return PV{Depth: depth, Score: score, Moves: moves, Nodes: e.nodes}
		}
		if score <= alpha {
			alpha = maxEval(alpha-2*delta, -eval.Inf)
			delta *= 2
			continue
		}
		if score >= beta {
			beta = minEval(beta+2*delta, eval.Inf)
			delta *= 2
			continue
		}
		return PV{Depth: depth, Score: score, Moves: moves, Nodes: e.nodes}
	}
}

// RunMultiPV runs up to n independent root searches at depth, each excluding the best root
// move already reported by an earlier line, and returns the resulting PVs ordered best line
// first (§4.11). Fewer than n lines come back once every legal root move has been reported.
// The transposition table and ordering tables are shared across lines rather than scoped per
// PV slot: a later line's search can reuse and overwrite entries an earlier line populated,
// and only the exclusion list itself is confined to this call.
func (e *Engine) RunMultiPV(b *board.Board, depth int, n int, prevScore eval.Score, havePrev bool) []PV {
	if n < 1 {
		n = 1
	}

	var lines []PV
	e.excludeRoot = nil
	for i := 0; i < n; i++ {
		pv := e.Run(b, depth, prevScore, havePrev)
		if len(pv.Moves) == 0 {
			break
		}
		lines = append(lines, pv)
		e.excludeRoot = append(e.excludeRoot, pv.Moves[0])
		if e.Stopped() {
			break
		}
	}
	e.excludeRoot = nil
	return lines
}

// searchRoot runs one windowed negamax pass at the root and reconstructs the PV from the
// transposition table, since the recursive core only returns a score and best move via TT.
func (e *Engine) searchRoot(b *board.Board, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if e.rootExhausted(b) {
		return -eval.Inf, nil
	}
	score := e.negamax(b, depth, alpha, beta, 0, maxExtension, board.NullMove)
	if e.Stopped() {
		return score, nil
	}
	return score, e.extractPV(b, depth)
}

// rootExhausted reports whether every legal root move has already been excluded by an
// earlier multi-PV line, in which case negamax must not run at all: with nothing left to
// search, its usual empty-move-list handling would misreport the position as checkmate or
// stalemate instead of "no further PV lines."
func (e *Engine) rootExhausted(b *board.Board) bool {
	if len(e.excludeRoot) == 0 {
		return false
	}
	list := movegen.GenerateLegal(b)
	for i := 0; i < list.Len(); i++ {
		if !isExcludedRoot(e.excludeRoot, list.At(i)) {
			return false
		}
	}
	return true
}

func (e *Engine) extractPV(b *board.Board, depth int) []board.Move {
	var moves []board.Move
	seen := map[board.ZobristHash]bool{}

	for i := 0; i < depth && i < MaxDepth; i++ {
		entry, ok := e.TT.Probe(b.Hash())
		if !ok || entry.Move == board.NullMove || seen[b.Hash()] {
			break
		}
		if !movegen.IsLegal(b, entry.Move) {
			break
		}
		seen[b.Hash()] = true
		moves = append(moves, entry.Move)
		undo := b.MakeMove(entry.Move)
		defer func(m board.Move, u board.UndoInfo) { b.UnmakeMove(m, u) }(entry.Move, undo)
	}
	return moves
}

func maxEval(a, b eval.Score) eval.Score {
	if a > b {
		return a
	}
	return b
}

func minEval(a, b eval.Score) eval.Score {
	if a < b {
		return a
	}
	return b
}
