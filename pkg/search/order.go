package search

import (
	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/movegen"
)

const (
	maxPly    = 64
	numKillers = 2
)

const (
	ttMoveScore    int32 = 1_000_000
	captureBase    int32 = 800_000
	badCaptureBase int32 = -800_000
	killerBase     int32 = 700_000
	countermoveScore int32 = 600_000
)

// OrderingTables hold the ply-indexed killer table, the countermove table, and the
// from-to history table, all cleared on new game (§4.7). At the start of every search
// iteration the history table is halved (ClearHistory); the killer and countermove
// tables are not cleared between iterations.
type OrderingTables struct {
	killers      [maxPly][numKillers]board.Move
	countermoves map[board.Move]board.Move
	history      [2][64][64]int32
}

// NewOrderingTables creates empty tables.
func NewOrderingTables() *OrderingTables {
	return &OrderingTables{countermoves: make(map[board.Move]board.Move)}
}

// Clear resets all ordering tables, as required at the start of a new game.
func (o *OrderingTables) Clear() {
	for i := range o.killers {
		o.killers[i] = [numKillers]board.Move{}
	}
	o.countermoves = make(map[board.Move]board.Move)
	for c := range o.history {
		for f := range o.history[c] {
			for t := range o.history[c][f] {
				o.history[c][f][t] = 0
			}
		}
	}
}

// ClearHistory ages the history table, halving it, a cheaper alternative to clearing it
// outright at the start of each iterative-deepening iteration.
func (o *OrderingTables) ClearHistory() {
	for c := range o.history {
		for f := range o.history[c] {
			for t := range o.history[c][f] {
				o.history[c][f][t] /= 2
			}
		}
	}
}

// RecordKiller registers m as a killer move at ply, shifting the existing killer down a
// slot unless m is already recorded there.
func (o *OrderingTables) RecordKiller(ply int, m board.Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

func (o *OrderingTables) isKiller(ply int, m board.Move) int {
	if ply < 0 || ply >= maxPly {
		return -1
	}
	for i, k := range o.killers[ply] {
		if k != 0 && k == m {
			return i
		}
	}
	return -1
}

// RecordHistory bumps the from-to history score for a quiet cutoff move by depth^2, with
// the table periodically aged by ClearHistory to bound growth.
func (o *OrderingTables) RecordHistory(us board.Color, m board.Move, depth int) {
	o.history[us][m.From()][m.To()] += int32(depth * depth)
}

// RecordCountermove stores m as the known refutation of prev.
func (o *OrderingTables) RecordCountermove(prev, m board.Move) {
	if prev.IsNull() {
		return
	}
	o.countermoves[prev] = m
}

// Score assigns every move in list an ordering priority following §4.7: TT move, then
// MVV-LVA captures (bad captures demoted below quiets), then killers, then countermove,
// then history, then zero for everything else.
func Score(b *board.Board, list *board.MoveList, o *OrderingTables, ply int, ttMove, prevMove board.Move) {
	us := b.SideToMove()
	counter := o.countermoves[prevMove]

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)

		switch {
		case ttMove != 0 && m == ttMove:
			list.SetScore(i, ttMoveScore)
		case m.IsCapture() || m.IsPromotion():
			gain := captureGain(b, m)
			if movegen.SEEGE(b, m, 0) {
				list.SetScore(i, captureBase+gain)
			} else {
				list.SetScore(i, badCaptureBase+gain)
			}
		case o.isKiller(ply, m) == 0:
			list.SetScore(i, killerBase+1)
		case o.isKiller(ply, m) == 1:
			list.SetScore(i, killerBase)
		case !prevMove.IsNull() && counter != 0 && m == counter:
			list.SetScore(i, countermoveScore)
		default:
			list.SetScore(i, o.history[us][m.From()][m.To()])
		}
	}
}

// captureGain is the MVV-LVA gain: 100x the victim's value minus the attacker's value, so
// that ties between victims are broken by the cheapest attacker first.
func captureGain(b *board.Board, m board.Move) int32 {
	_, attacker, _ := b.PieceAt(m.From())

	var victim board.Piece
	switch {
	case m.IsEnPassant():
		victim = board.Pawn
	case m.IsCapture():
		_, victim, _ = b.PieceAt(m.To())
	default:
		victim = board.NoPiece
	}

	gain := int32(0)
	if victim != board.NoPiece {
		gain = 100*int32(eval.PieceValue(victim)) - int32(eval.PieceValue(attacker))
	}
	if m.IsPromotion() {
		gain += int32(eval.PieceValue(m.PromotionPiece())) - int32(eval.PieceValue(board.Pawn))
	}
	return gain
}
