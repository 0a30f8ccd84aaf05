package search

import (
	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/movegen"
)

// negamax is the recursive search core (§4.8.2). It returns the score for the side to move
// at b, searched to depth, bounded by (alpha, beta), at the given ply from the search root.
// extBudget tracks how many more plies of extension remain available on this path.
func (e *Engine) negamax(b *board.Board, depth int, alpha, beta eval.Score, ply int, extBudget int, prevMove board.Move) eval.Score {
	e.nodes++
	if e.nodes%nodesPerPoll == 0 && e.Stopped() {
		return 0
	}
	if e.Stopped() {
		return 0
	}

	originalAlpha := alpha

	var ttMove board.Move
	if entry, ok := e.TT.Probe(b.Hash()); ok {
		ttMove = entry.Move
		if entry.Depth >= depth {
			score := AdjustMateForProbe(entry.Score, ply)
			switch entry.Bound {
			case Exact:
				return score
			case Lower:
				if score >= beta {
					return score
				}
			case Upper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return e.quiesce(b, alpha, beta)
	}

	inCheck := b.InCheck()
	isPV := beta-alpha > 1

	staticEval := e.Eval.Evaluate(b)

	// Reverse futility pruning: a big static-eval margin over beta at shallow depth means
	// the opponent would need an implausible swing to bring the score back down.
	if !isPV && !inCheck && !e.Config.DisableRFP && depth <= 5 && depth >= 1 {
		margin := e.Config.RFPMargin[depth]
		if staticEval-margin >= beta {
			return staticEval
		}
	}

	// Razoring: hopeless static eval at shallow depth drops straight to quiescence.
	if !isPV && !inCheck && !e.Config.DisableRazoring && depth <= 3 && depth >= 1 {
		margin := e.Config.RazorMargin[depth]
		if staticEval+margin < alpha {
			score := e.quiesce(b, alpha, beta)
			if score < alpha {
				return score
			}
		}
	}

	// Null-move pruning: pass the move and see if the opponent is still in trouble even
	// with a free tempo, skipped in check, in the endgame (zugzwang risk), and near mate
	// bounds where the reduced search would be meaningless.
	if !isPV && !inCheck && !e.Config.DisableNullMove &&
		depth >= e.Config.NullMoveMinDepth && !isLikelyZugzwang(b) &&
		absScore(beta) < eval.Mate-eval.Score(MaxDepth) {

		undo := b.MakeNullMove()
		score := -e.negamax(b, depth-1-e.Config.NullMoveR, -beta, -beta+1, ply+1, extBudget, board.NullMove)
		b.UnmakeNullMove(undo)

		if e.Stopped() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	list := movegen.GeneratePseudoLegal(b)
	Score(b, list, e.Order, ply, ttMove, prevMove)

	bestScore := -eval.Inf
	var bestMove board.Move
	legalCount := 0
	quietsSearched := 0

	for i := 0; i < list.Len(); i++ {
		list.SelectSort(i)
		m := list.At(i)

		undo := b.MakeMove(m)
		if b.ColorInCheck(b.SideToMove().Opponent()) {
			b.UnmakeMove(m, undo)
			continue // not legal
		}
		if ply == 0 && isExcludedRoot(e.excludeRoot, m) {
			b.UnmakeMove(m, undo)
			continue // already reported as an earlier multi-PV line
		}
		legalCount++

		givesCheck := b.InCheck()
		isQuiet := !m.IsCapture() && !m.IsPromotion()

		// Futility pruning and late-move pruning only touch quiet moves at frontier depth,
		// and never the first legal move at a node, so every node searches at least one.
		if isQuiet && !isPV && !inCheck && !givesCheck && legalCount > 1 {
			if !e.Config.DisableFutility && depth <= 3 && depth >= 1 {
				margin := e.Config.FutilityMargin[depth]
				if staticEval+margin <= alpha {
					b.UnmakeMove(m, undo)
					continue
				}
			}
			if !e.Config.DisableLMP && depth <= 3 && depth >= 1 {
				if quietsSearched >= e.Config.LMPThreshold[depth] {
					b.UnmakeMove(m, undo)
					continue
				}
			}
		}
		if isQuiet {
			quietsSearched++
		}

		if m.IsCapture() && !e.Config.DisableSEEPruning && !isPV && !inCheck {
			if !movegen.SEEGE(b, m, -100*int32(depth)) {
				b.UnmakeMove(m, undo)
				continue
			}
		}

		extension := 0
		if !e.Config.DisableExtensions && extBudget > 0 {
			extension = computeExtension(b, m, prevMove, givesCheck)
			if extension > extBudget {
				extension = extBudget
			}
		}
		childDepth := depth - 1 + extension

		reduce := 0
		if legalCount > e.Config.LMRMoveThreshold && depth >= e.Config.LMRDepthThreshold &&
			isQuiet && !givesCheck && !inCheck && extension == 0 {
			reduce = lmrReduction(e.Config.LMRBaseReduction, depth, legalCount)
		}

		var score eval.Score
		if legalCount == 1 {
			score = -e.negamax(b, childDepth, -beta, -alpha, ply+1, extBudget-extension, m)
		} else {
			score = -e.negamax(b, childDepth-reduce, -alpha-1, -alpha, ply+1, extBudget-extension, m)
			if reduce > 0 && score > alpha {
				score = -e.negamax(b, childDepth, -alpha-1, -alpha, ply+1, extBudget-extension, m)
			}
			if score > alpha && score < beta {
				score = -e.negamax(b, childDepth, -beta, -alpha, ply+1, extBudget-extension, m)
			}
		}

		b.UnmakeMove(m, undo)

		if e.Stopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if isQuiet {
				e.Order.RecordKiller(ply, m)
				e.Order.RecordHistory(b.SideToMove(), m, depth)
				e.Order.RecordCountermove(prevMove, m)
			}
			break
		}
	}

	if legalCount == 0 {
		if inCheck {
			return -eval.Mate + eval.Score(ply)
		}
		return 0
	}

	bound := Exact
	switch {
	case bestScore >= beta:
		bound = Lower
	case bestScore <= originalAlpha:
		bound = Upper
	}
	e.TT.Store(b.Hash(), bestMove, AdjustMateForStore(bestScore, ply), depth, bound)

	return bestScore
}

func isExcludedRoot(exclude []board.Move, m board.Move) bool {
	for _, x := range exclude {
		if x == m {
			return true
		}
	}
	return false
}

func absScore(s eval.Score) eval.Score {
	if s < 0 {
		return -s
	}
	return s
}

// isLikelyZugzwang is a coarse endgame detector: null-move pruning is unsound when the
// side to move has only pawns and a king, where passing is often strictly worse than any
// legal move (zugzwang).
func isLikelyZugzwang(b *board.Board) bool {
	us := b.SideToMove()
	nonPawn := b.PieceBB(us, board.Knight) | b.PieceBB(us, board.Bishop) |
		b.PieceBB(us, board.Rook) | b.PieceBB(us, board.Queen)
	return nonPawn.Empty()
}

// computeExtension applies the check, recapture, and passed-pawn extension rules (§4.8.5).
// Only one extension is granted per move, capped by the path's remaining extBudget by the
// caller.
func computeExtension(b *board.Board, m, prevMove board.Move, givesCheck bool) int {
	if givesCheck {
		return 1
	}
	if !prevMove.IsNull() && m.IsCapture() && m.To() == prevMove.To() {
		return 1
	}
	if isPassedPawnPush(b, m) {
		return 1
	}
	return 0
}

func isPassedPawnPush(b *board.Board, m board.Move) bool {
	// Called after MakeMove, so the mover is now the opponent; inspect the piece that just
	// arrived on m.To() for the side that moved (the opponent of the side now to move).
	them := b.SideToMove()
	us := them.Opponent()
	_, piece, ok := b.PieceAt(m.To())
	if !ok || piece != board.Pawn {
		return false
	}
	r := int(m.To().Rank())
	relRank := r
	if us == board.Black {
		relRank = 7 - r
	}
	if relRank < 5 {
		return false
	}
	return !enemyPawnBlocksOrFlanks(b, m.To(), us)
}

func enemyPawnBlocksOrFlanks(b *board.Board, sq board.Square, us board.Color) bool {
	enemyPawns := b.PieceBB(us.Opponent(), board.Pawn)
	f := int(sq.File())
	r := int(sq.Rank())
	for _, df := range []int{-1, 0, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		file := board.FileBB(board.File(nf))
		var ahead board.Bitboard
		for rr := 0; rr < 8; rr++ {
			if (us == board.White && rr > r) || (us == board.Black && rr < r) {
				ahead |= board.RankBB(board.Rank(rr))
			}
		}
		if (enemyPawns & file & ahead) != 0 {
			return true
		}
	}
	return false
}

// lmrReduction returns the ply-count reduction for the i-th ordered move at depth,
// monotone in both depth and move index, clamped to leave at least one ply of search.
func lmrReduction(base, depth, i int) int {
	r := base
	if depth >= 6 {
		r++
	}
	if i >= 12 {
		r++
	}
	if r > depth-1 {
		r = depth - 1
	}
	if r < 0 {
		r = 0
	}
	return r
}
