package search_test

import (
	"testing"

	"github.com/herohde/gyrfalcon/pkg/board"
	"github.com/herohde/gyrfalcon/pkg/board/fen"
	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *search.Engine {
	tt := search.NewTranspositionTable(1 << 20)
	order := search.NewOrderingTables()
	ev := eval.NewEvaluator(eval.DefaultOptions())
	return search.NewEngine(search.DefaultConfig(), tt, order, ev)
}

func TestSearchFindsBackRankMateInOne(t *testing.T) {
	// White rook delivers mate by sliding to e8: the Black king on g8 is boxed in by its
	// own pawns, with no flight square and no blocker available.
	b, err := fen.Decode("6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	require.NoError(t, err)

	e := newEngine()
	e.Reset()
	pv := e.Run(b, 4, 0, false)

	require.NotEmpty(t, pv.Moves, "expected a principal variation")
	mv := pv.Moves[0]
	assert.Equal(t, board.NewSquare(board.FileE, board.Rank1), mv.From())
	assert.Equal(t, board.NewSquare(board.FileE, board.Rank8), mv.To())
	assert.True(t, pv.Score > eval.Mate-100, "mate-in-one should score near Mate, got %d", pv.Score)
}

func TestSearchFindsFreePieceCapture(t *testing.T) {
	// The Black queen on d5 hangs to the White knight on f4; nothing recaptures it.
	b, err := fen.Decode("4k3/8/8/3q4/5N2/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	e := newEngine()
	e.Reset()
	pv := e.Run(b, 5, 0, false)

	require.NotEmpty(t, pv.Moves)
	mv := pv.Moves[0]
	assert.Equal(t, board.NewSquare(board.FileF, board.Rank4), mv.From())
	assert.Equal(t, board.NewSquare(board.FileD, board.Rank5), mv.To())
	assert.True(t, mv.IsCapture())
}

func TestSearchDetectsStalemate(t *testing.T) {
	// Black to move has no legal move and is not in check: a draw, score exactly zero.
	b, err := fen.Decode("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	e := newEngine()
	e.Reset()
	pv := e.Run(b, 3, 0, false)

	assert.Equal(t, eval.Score(0), pv.Score)
}

func TestIterativeDeepeningNodeCountsGrowWithDepth(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	e := newEngine()
	var prevNodes uint64
	var prevScore eval.Score
	havePrev := false
	for d := 1; d <= 4; d++ {
		e.Reset()
		pv := e.Run(b, d, prevScore, havePrev)
		assert.GreaterOrEqual(t, pv.Nodes, prevNodes, "deeper iteration should not search fewer nodes")
		prevNodes = pv.Nodes
		prevScore = pv.Score
		havePrev = true
	}
}

func TestStopHaltsSearchPromptly(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	e := newEngine()
	e.Reset()
	e.Stop()
	pv := e.Run(b, 10, 0, false)

	// A search asked to stop before it starts must still return without panicking; the
	// reported depth is whatever Run was asked for, but it may carry an empty PV.
	assert.Equal(t, 10, pv.Depth)
	_ = pv.Moves
}
