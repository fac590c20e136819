package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/minichess/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	require.NoError(t, err)
	return pos
}

func TestEvaluateInsufficientMaterial(t *testing.T) {
	for _, fen := range []string{
		"k4/5/5/5/5/4K w",
		"k4/5/5/5/5/4K b",
		"k4/5/5/2N2/5/4K w",
		"k4/5/5/2N2/5/4K b",
		"4k/1n3/5/5/5/K4 w",
		"4k/1n3/5/5/5/K4 b",
	} {
		pos := mustParse(t, fen)
		assert.Equal(t, 0, Evaluate(pos, board.White), fen)
		assert.Equal(t, 0, Evaluate(pos, board.Black), fen)
	}

	// A lone bishop is not covered by the draw rule.
	pos := mustParse(t, "k4/5/5/2B2/5/4K w")
	assert.NotZero(t, Evaluate(pos, board.White))

	// Three pieces with one knight but a missing king.
	for _, fen := range []string{"4n/5/5/5/5/QK3 w", "5/5/5/5/5/K3N w"} {
		pos := mustParse(t, fen)
		assert.Positive(t, Evaluate(pos, board.White), fen)
		assert.Negative(t, Evaluate(pos, board.Black), fen)
	}
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, 0, Evaluate(pos, board.White))
	assert.Equal(t, 0, Evaluate(pos, board.Black))
}

func TestEvaluateMirrorsForBlack(t *testing.T) {
	// Same material both sides: the trade bonus is off and the score is
	// antisymmetric in the engine color.
	pos := board.NewPosition()
	pos.MakeMove(pos.CreateMove(board.B1, board.C3))
	pos.MakeMove(pos.CreateMove(board.A5, board.A4))

	white := Evaluate(pos, board.White)
	assert.Equal(t, -white, Evaluate(pos, board.Black))
	// Knight c3 (+20) replaced b1 (-10); pawn a4 (+20 mirrored) replaced a5 (+10).
	assert.Equal(t, 30-10, white)
}

func TestEvaluateTradeBonus(t *testing.T) {
	pos := mustParse(t, "k4/5/5/5/5/Q3K w")

	// Queen a1: 900-10. Kings cancel (both on a corner of their back rank).
	material := 890
	bonus := TradeBonus * (board.TotalPieceCount - 3)

	assert.Equal(t, material+bonus, Evaluate(pos, board.White))
	assert.Equal(t, -material, Evaluate(pos, board.Black))
}
