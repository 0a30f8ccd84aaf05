package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative runs a search.Engine at increasing depths until a stopping condition fires:
// an explicit Halt, a depth or node limit, a soft time budget, or a found forced mate
// within the current full-width search.
type Iterative struct{}

// Launch starts the iterative-deepening goroutine against b, which must be exclusively
// owned by the search (forked by the caller). The returned channel receives a PV as each
// depth completes, replacing any unread one, and is closed when the search is done.
func (it *Iterative) Launch(ctx context.Context, b *board.Board, e *search.Engine, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
		e:    e,
	}
	go h.process(ctx, b, e, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	e     *search.Engine
	pv    search.PV
	lines []search.PV
	mu    sync.Mutex
}

func (h *handle) process(ctx context.Context, b *board.Board, e *search.Engine, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	softLimit, useSoft := h.armTimers(ctx, b, opt)

	depthLimit := search.MaxDepth
	if tc, ok := opt.TimeControl.V(); ok && tc.Kind == Depth {
		depthLimit = tc.DepthLimit
	}
	if d, ok := opt.DepthLimit.V(); ok && d < depthLimit {
		depthLimit = d
	}
	var nodeLimit uint64
	if tc, ok := opt.TimeControl.V(); ok && tc.Kind == Nodes {
		nodeLimit = tc.NodeLimit
	}

	multiPV := opt.MultiPV
	if multiPV < 1 {
		multiPV = 1
	}

	var prevScore eval.Score
	havePrev := false
	searchStart := time.Now()

	for depth := 1; depth <= depthLimit; depth++ {
		if h.quit.IsClosed() {
			return
		}

		start := time.Now()
		e.Reset()

		var pv search.PV
		var lines []search.PV
		if multiPV > 1 {
			lines = e.RunMultiPV(b, depth, multiPV, prevScore, havePrev)
			if len(lines) == 0 {
				return
			}
			pv = lines[0]
		} else {
			pv = e.Run(b, depth, prevScore, havePrev)
			lines = []search.PV{pv}
		}
		pv.Time = time.Since(start)
		lines[0].Time = pv.Time

		if e.Stopped() {
			return
		}

		logw.Debugf(ctx, "searched %v: depth=%v score=%v nodes=%v pv=%v lines=%v", b, depth, pv.Score, pv.Nodes, pv.Moves, len(lines))

		h.mu.Lock()
		h.pv = pv
		h.lines = lines
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		prevScore, havePrev = pv.Score, true

		if nodeLimit > 0 && pv.Nodes >= nodeLimit {
			return
		}
		if md, ok := pv.Score.MateDistance(); ok && md <= depth {
			return // forced mate found within a full-width search: exact result
		}
		if useSoft && time.Since(searchStart) > softLimit {
			return
		}
	}
}

// armTimers schedules the hard-limit halt (if the time control implies one) and returns
// the soft limit the caller should additionally check for between iterations.
func (h *handle) armTimers(ctx context.Context, b *board.Board, opt Options) (time.Duration, bool) {
	tc, ok := opt.TimeControl.V()
	if !ok {
		return 0, false
	}

	switch tc.Kind {
	case Clock:
		soft, hard := tc.Limits(b.SideToMove())
		logw.Debugf(ctx, "time control limits: soft=%v hard=%v", soft, hard)
		time.AfterFunc(hard, func() { h.e.Stop(); h.quit.Close() })
		return soft, true
	case MoveTime:
		time.AfterFunc(tc.MoveTime, func() { h.e.Stop(); h.quit.Close() })
		return tc.MoveTime, true
	default:
		return 0, false
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.e.Stop()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *handle) Lines() []search.PV {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lines
}
