package engine

import (
	"golang.org/x/exp/slices"

	"github.com/hailam/minichess/internal/board"
)

// scoreMove returns the MVV-LVA ordering score for a move.
// Score = victimValue * 10 - attackerValue for captures, 0 otherwise.
func scoreMove(m board.Move) int {
	if !m.IsCapture() {
		return 0
	}
	return pieceValues[m.Captured.Type()]*10 - pieceValues[m.Piece.Type()]
}

// orderMoves sorts moves by descending score. The sort is stable, so moves
// with equal scores keep their generation order.
func orderMoves(moves board.MoveList) board.MoveList {
	type scored struct {
		move  board.Move
		score int
	}

	list := make([]scored, len(moves))
	for i, m := range moves {
		list[i] = scored{m, scoreMove(m)}
	}
	slices.SortStableFunc(list, func(a, b scored) int {
		return b.score - a.score
	})

	for i := range list {
		moves[i] = list[i].move
	}
	return moves
}

// genAndOrder generates all moves for the side to move, best-first.
func genAndOrder(pos *board.Position) board.MoveList {
	return orderMoves(pos.GenerateMoves())
}

// genAndOrderCaptures generates capture moves only, best-first.
func genAndOrderCaptures(pos *board.Position) board.MoveList {
	return orderMoves(pos.GenerateCaptures())
}
