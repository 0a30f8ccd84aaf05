package search

import (
	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/movegen"
)

// quiesce extends the search along capture and promotion lines until the position is quiet,
// per §4.8.3, avoiding the horizon effect that a hard depth cutoff would otherwise create.
func (e *Engine) quiesce(b *board.Board, alpha, beta eval.Score) eval.Score {
	e.nodes++
	if e.Stopped() {
		return 0
	}

	standPat := e.Eval.Evaluate(b)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	list := movegen.GeneratePseudoLegal(b)
	scoreCaptures(b, list)

	for i := 0; i < list.Len(); i++ {
		list.SelectSort(i)
		m := list.At(i)
		if !m.IsCapture() && !m.IsPromotion() {
			continue
		}
		if m.IsCapture() && !movegen.SEEGE(b, m, 0) {
			continue // losing capture, never worth exploring in quiescence
		}

		undo := b.MakeMove(m)
		if b.ColorInCheck(b.SideToMove().Opponent()) {
			b.UnmakeMove(m, undo)
			continue
		}

		score := -e.quiesce(b, -beta, -alpha)
		b.UnmakeMove(m, undo)

		if e.Stopped() {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// scoreCaptures assigns MVV-LVA ordering scores to every capture/promotion in list, leaving
// quiet moves at zero since quiesce skips them entirely.
func scoreCaptures(b *board.Board, list *board.MoveList) {
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.IsCapture() || m.IsPromotion() {
			list.SetScore(i, captureGain(b, m))
		} else {
			list.SetScore(i, 0)
		}
	}
}
