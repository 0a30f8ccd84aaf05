package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/board/fen"
	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/movegen"
	"github.com/herohde/gyrfalcon/pkg/search"
	"github.com/herohde/gyrfalcon/pkg/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// GameStatus reports whether the position is terminal, and why.
type GameStatus struct {
	Over   bool
	Reason string // "checkmate", "stalemate", or "" if not over
}

// SearchInfo mirrors search.PV in a shape decoupled from the search package's internals.
// No Engine method produces it: Analyze's channel carries search.PV values.
type SearchInfo struct {
	Depth int
	Score eval.Score
	Nodes uint64
	PV    []string
}

// Engine is the engine control surface (§4.10): position management, option
// configuration, and the analyze/stop lifecycle, all guarded by a single mutex since the
// core runs a single search thread.
type Engine struct {
	name, author string

	opts     Options
	launcher searchctl.Launcher

	b         *board.Board
	tt        *search.TranspositionTable
	order     *search.OrderingTables
	evaluator *eval.Evaluator

	active searchctl.Handle
	mu     sync.Mutex
}

// New creates an engine at the standard starting position with factory-default options.
func New(ctx context.Context, name, author string) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		opts:     DefaultOptions(),
		launcher: &searchctl.Iterative{},
	}
	e.rebuildLocked()
	_ = e.setPositionLocked(fen.Initial, nil)

	logw.Infof(ctx, "initialized %v", e.Name())
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the configured author string.
func (e *Engine) Author() string {
	return e.author
}

// NewGame resets history, killer, and countermove tables, and clears the transposition
// table, without otherwise changing the current position or options.
func (e *Engine) NewGame(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "new_game")
	e.order.Clear()
	e.tt.Clear()
}

// SetPosition parses a FEN (or the standard start position if fen is empty) and applies
// each UCI move in sequence, rejecting unknown or illegal moves without mutating the
// previously active position.
func (e *Engine) SetPosition(ctx context.Context, position string, moves []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "set_position %v moves=%v", position, moves)
	return e.setPositionLocked(position, moves)
}

func (e *Engine) setPositionLocked(position string, moves []string) error {
	if position == "" {
		position = fen.Initial
	}
	b, err := fen.Decode(position)
	if err != nil {
		return ErrInvalidFEN{FEN: position, Err: err}
	}
	for _, uci := range moves {
		m, err := movegen.ParseUCI(b, uci)
		if err != nil {
			return ErrIllegalMove{Move: uci}
		}
		b.MakeMove(m)
	}
	e.b = b
	return nil
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b)
}

// SetOption updates a single named runtime parameter (§6); unknown names are ignored. A
// change to hash_size_mb takes effect immediately: the transposition table is replaced by
// an empty one of the new size.
func (e *Engine) SetOption(ctx context.Context, name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "set_option %v=%v", name, value)
	e.opts.SetOption(name, value)
	if name == "hash_size_mb" {
		e.tt = search.NewTranspositionTable(uint64(e.opts.HashSizeMB) << 20)
	}
	e.evaluator = eval.NewEvaluator(e.opts.Eval)
}

func (e *Engine) rebuildLocked() {
	e.tt = search.NewTranspositionTable(uint64(e.opts.HashSizeMB) << 20)
	e.order = search.NewOrderingTables()
	e.evaluator = eval.NewEvaluator(e.opts.Eval)
}

// Analyze launches an iterative-deepening search on the current position. The returned
// channel receives a PV as each depth completes (it buffers one value, and an unread PV is
// replaced by the next one) and is closed when the search ends; the last value received
// is the final result.
func (e *Engine) Analyze(ctx context.Context, depthLimit int, tc searchctl.TimeControl, hasTC bool) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, ErrSearchAlreadyActive{}
	}

	logw.Infof(ctx, "analyze %v (ply=%v) depth=%v tc=%v", e.b, e.b.Ply(), depthLimit, tc)

	eng := search.NewEngine(e.opts.Search, e.tt, e.order, e.evaluator)
	opt := searchctl.Options{MultiPV: e.opts.MultiPV}
	if depthLimit > 0 {
		opt.DepthLimit = lang.Some(depthLimit)
	}
	if hasTC {
		opt.TimeControl = lang.Some(tc)
	}

	handle, out := e.launcher.Launch(ctx, e.b.Clone(), eng, opt)
	e.active = handle
	return out, nil
}

// Stop halts the active search, if any, and returns its last completed principal
// variation. Safe to call from any goroutine.
func (e *Engine) Stop(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "stop")
	return e.haltIfActiveLocked()
}

// Lines returns the most recent multi-PV snapshot of the active search, one entry per
// requested line and ordered best first, or nil if no search is active.
func (e *Engine) Lines() []search.PV {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil
	}
	return e.active.Lines()
}

func (e *Engine) haltIfActiveLocked() (search.PV, error) {
	if e.active == nil {
		return search.PV{}, ErrNoActiveSearch{}
	}
	pv := e.active.Halt()
	e.active = nil
	return pv, nil
}

// IsMoveLegal validates a UCI move in a given position without mutating engine state.
func IsMoveLegal(position, uci string) (bool, error) {
	b, err := fen.Decode(position)
	if err != nil {
		return false, ErrInvalidFEN{FEN: position, Err: err}
	}
	_, err = movegen.ParseUCI(b, uci)
	return err == nil, nil
}

// MakeMove applies one move to the given position, returning the resulting FEN.
func MakeMove(position, uci string) (string, error) {
	b, err := fen.Decode(position)
	if err != nil {
		return "", ErrInvalidFEN{FEN: position, Err: err}
	}
	m, err := movegen.ParseUCI(b, uci)
	if err != nil {
		return "", ErrIllegalMove{Move: uci}
	}
	b.MakeMove(m)
	return fen.Encode(b), nil
}

// LegalMoves enumerates every legal move from a position, in UCI form.
func LegalMoves(position string) ([]string, error) {
	b, err := fen.Decode(position)
	if err != nil {
		return nil, ErrInvalidFEN{FEN: position, Err: err}
	}
	list := movegen.GenerateLegal(b)
	out := make([]string, list.Len())
	for i := 0; i < list.Len(); i++ {
		out[i] = list.At(i).ToUCI()
	}
	return out, nil
}

// Status reports whether a position is terminal, and why.
func Status(position string) (GameStatus, error) {
	b, err := fen.Decode(position)
	if err != nil {
		return GameStatus{}, ErrInvalidFEN{FEN: position, Err: err}
	}
	list := movegen.GenerateLegal(b)
	if list.Len() > 0 {
		return GameStatus{}, nil
	}
	if b.InCheck() {
		return GameStatus{Over: true, Reason: "checkmate"}, nil
	}
	return GameStatus{Over: true, Reason: "stalemate"}, nil
}
