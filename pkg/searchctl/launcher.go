package searchctl

import (
	"context"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold the dynamic, per-search controls the caller may set on top of the engine's
// static configuration.
type Options struct {
	// DepthLimit, if set, caps the search at the given ply depth.
	DepthLimit lang.Optional[int]
	// TimeControl, if set, bounds the search in wall-clock time, moves, or nodes.
	TimeControl lang.Optional[TimeControl]
	// MultiPV requests this many independent root lines per depth (§4.11). Zero and one
	// both mean a single line; the zero value keeps existing single-PV callers unaffected.
	MultiPV int
}

// Launcher starts an iterative-deepening search and returns a handle plus a channel of
// principal variations, sent as each depth completes; the channel buffers one value and an
// unread PV is replaced by the next one. The channel always carries the primary
// (best) line; Handle.Lines reports every requested multi-PV line for the same depth.
type Launcher interface {
	Launch(ctx context.Context, b *board.Board, e *search.Engine, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the owner halt an in-flight search and retrieve its results.
type Handle interface {
	// Halt stops the search, if running, and returns the last completed PV. It blocks until
	// the first depth has completed or the search has ended, but does not wait for the
	// search goroutine to exit. Idempotent.
	Halt() search.PV
	// Lines returns the most recently completed multi-PV snapshot, one entry per requested
	// line and ordered best first. Its first element always matches Halt's eventual result
	// for the same depth. Empty before any depth has completed.
	Lines() []search.PV
}
