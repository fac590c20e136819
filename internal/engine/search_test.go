package engine

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/minichess/internal/board"
)

const tacticalFEN = "1k3/P3r/2n2/1Q3/3p1/K3R w"

// TestDepthOneMatchesBruteForce checks a one-ply search against a direct
// enumeration of every first move.
func TestDepthOneMatchesBruteForce(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(1, board.White, false)

	bestScore := -Infinity
	bestMove := board.NoMove
	scratch := pos.Copy()
	for _, m := range genAndOrder(scratch) {
		scratch.MakeMove(m)
		if score := Evaluate(scratch, board.White); score > bestScore {
			bestScore = score
			bestMove = m
		}
		scratch.UndoMove()
	}

	move, ok := eng.ChooseMove(pos)
	require.True(t, ok)
	assert.True(t, move.Equal(bestMove), "got %s, want %s", move, bestMove)
	assert.Equal(t, bestScore, eng.Stats().Evaluation)
	assert.Equal(t, board.StartFEN, pos.FEN(), "search must restore the position")
	assert.Empty(t, pos.History)
}

func TestChooseMoveCapturesKing(t *testing.T) {
	pos := mustParse(t, "k4/5/5/5/5/R3K w")
	eng := NewEngine(2, board.White, false)

	move, ok := eng.ChooseMove(pos)
	require.True(t, ok)
	assert.Equal(t, board.A1, move.From)
	assert.Equal(t, board.A6, move.To)
	assert.Equal(t, MateScore+1, eng.Stats().Evaluation)
	assert.True(t, IsMateScore(eng.Stats().Evaluation))
}

func TestCheckmateIsTerminal(t *testing.T) {
	pos := mustParse(t, "k4/5/5/5/5/R3K w")
	m, ok := pos.GeneratePieceMoves(board.A1).Find(board.A1, board.A6)
	require.True(t, ok)
	pos.MakeMove(m)
	require.True(t, pos.IsCheckmate())

	eng := NewEngine(3, board.White, true)

	// Black to move after White took the king: the minimizer sees a win
	// for the engine, with no nodes expanded.
	assert.Equal(t, MateScore+3, eng.alphaBeta(pos, 3, -Infinity, Infinity, false))
	assert.Zero(t, eng.stats.Nodes)

	// From Black's side the same capture is a loss.
	black := NewEngine(3, board.Black, true)
	assert.Equal(t, -(MateScore + 2), black.alphaBeta(pos, 2, -Infinity, Infinity, true))
}

func TestBoundRespect(t *testing.T) {
	const depth = 3

	full := NewEngine(depth, board.White, false)
	pos := mustParse(t, tacticalFEN)
	v := full.alphaBeta(pos, depth, -Infinity, Infinity, true)

	for _, w := range []struct{ alpha, beta int }{
		{v - 1, v + 1},
		{v - 37, v + 200},
		{v - 1000, v + 5},
	} {
		eng := NewEngine(depth, board.White, false)
		got := eng.alphaBeta(pos, depth, w.alpha, w.beta, true)
		assert.Equal(t, v, got, "window (%d, %d)", w.alpha, w.beta)

		entry, ok := eng.tt.Lookup(pos.Hash)
		require.True(t, ok)
		require.Equal(t, TTExact, entry.Flag)
		assert.Greater(t, entry.Value, w.alpha)
		assert.Less(t, entry.Value, w.beta)
	}

	// A window above the true value fails low and is stored as an upper bound.
	eng := NewEngine(depth, board.White, false)
	got := eng.alphaBeta(pos, depth, v+1, v+100, true)
	assert.LessOrEqual(t, got, v+1)
	assert.GreaterOrEqual(t, got, v)
	entry, ok := eng.tt.Lookup(pos.Hash)
	require.True(t, ok)
	assert.Equal(t, TTUpperBound, entry.Flag)

	assert.Equal(t, tacticalFEN, pos.FEN())
}

func TestQuiescenceFloor(t *testing.T) {
	for _, fen := range []string{
		tacticalFEN,
		"1k3/P3r/2n2/1Q3/3p1/K3R b",
		board.StartFEN,
		"rnbqk/p1p1p/1p1p1/1P1P1/P1P1P/RNBQK w",
		"k4/2q2/1r1n1/2P2/1B1N1/4K w",
	} {
		pos := mustParse(t, fen)
		us := pos.SideToMove

		// Side to move is the engine: the result never drops below stand pat.
		eng := NewEngine(1, us, true)
		standPat := Evaluate(pos, us)
		got := eng.quiesce(pos, DefaultQuiescenceDepth, -Infinity, Infinity, true)
		assert.GreaterOrEqual(t, got, standPat, fen)

		// Side to move is the opponent: it never rises above stand pat.
		opp := NewEngine(1, us.Other(), true)
		standPat = Evaluate(pos, us.Other())
		got = opp.quiesce(pos, DefaultQuiescenceDepth, -Infinity, Infinity, false)
		assert.LessOrEqual(t, got, standPat, fen)

		assert.Equal(t, fen, pos.FEN())
	}
}

func TestStalemateScoresZero(t *testing.T) {
	// Black's only piece is a blocked pawn.
	pos := mustParse(t, "5/5/5/p4/P4/4K b")
	require.Empty(t, pos.GenerateMoves())

	eng := NewEngine(2, board.White, false)
	assert.Equal(t, 0, eng.alphaBeta(pos, 2, -Infinity, Infinity, false))
}

func TestChooseMoveNoMoves(t *testing.T) {
	pos := mustParse(t, "k4/5/5/5/5/5 w")
	eng := NewEngine(2, board.White, false)

	move, ok := eng.ChooseMove(pos)
	assert.False(t, ok)
	assert.True(t, move.IsNone())
}

func TestStatsAreReset(t *testing.T) {
	pos := mustParse(t, tacticalFEN)
	eng := NewEngine(2, board.White, true)

	_, ok := eng.ChooseMove(pos)
	require.True(t, ok)
	first := eng.Stats()
	assert.NotZero(t, first.Nodes)
	assert.NotZero(t, first.QNodes)

	eng.Clear()
	_, ok = eng.ChooseMove(pos)
	require.True(t, ok)
	assert.Equal(t, first, eng.Stats(), "a cleared engine repeats the same search")

	plain := NewEngine(2, board.White, false)
	_, ok = plain.ChooseMove(pos)
	require.True(t, ok)
	assert.Zero(t, plain.Stats().QNodes)
}

func TestTableTrimmedAfterSearch(t *testing.T) {
	cfg := DefaultConfig(3, board.White, false)
	cfg.TrimThreshold = 10
	eng, err := New(cfg)
	require.NoError(t, err)

	_, ok := eng.ChooseMove(board.NewPosition())
	require.True(t, ok)
	assert.Equal(t, 5, eng.TableSize())
}

func TestOrderMoves(t *testing.T) {
	quiet := board.NewMove(board.A2, board.A3, board.WhitePawn, board.Empty, false)
	queenTakesPawn := board.NewMove(board.D1, board.D5, board.WhiteQueen, board.BlackPawn, false)
	pawnTakesRook := board.NewMove(board.B2, board.C3, board.WhitePawn, board.BlackRook, false)
	quiet2 := board.NewMove(board.B1, board.C3, board.WhiteKnight, board.Empty, false)

	assert.Equal(t, 0, scoreMove(quiet))
	assert.Equal(t, 100*10-900, scoreMove(queenTakesPawn))
	assert.Equal(t, 500*10-100, scoreMove(pawnTakesRook))

	ordered := orderMoves(board.MoveList{quiet, queenTakesPawn, quiet2, pawnTakesRook})
	assert.Equal(t, board.MoveList{pawnTakesRook, queenTakesPawn, quiet, quiet2}, ordered)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig(0, board.NoColor, true)
	cfg.QuiescenceDepth = -1
	cfg.TrimThreshold = 0

	err := cfg.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)

	_, err = New(cfg)
	assert.Error(t, err)
	assert.Panics(t, func() { NewEngine(0, board.White, false) })

	assert.NoError(t, ConfigFor(Hard, board.Black).Validate())
}

func TestDifficulty(t *testing.T) {
	d, err := ParseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("impossible")
	assert.Error(t, err)

	cfg := ConfigFor(Easy, board.White)
	assert.Equal(t, 3, cfg.Depth)
	assert.False(t, cfg.UseQuiescence)
}

func TestPerft(t *testing.T) {
	assert.Equal(t, uint64(452), Perft(board.NewPosition(), 3))
}

func TestScoreToString(t *testing.T) {
	assert.Equal(t, "1.25", ScoreToString(125))
	assert.Equal(t, "-0.05", ScoreToString(-5))
	assert.Equal(t, "Mate (+2)", ScoreToString(MateScore+2))
	assert.Equal(t, "Mated (-0)", ScoreToString(-MateScore))
}
