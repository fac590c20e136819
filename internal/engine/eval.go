// Package engine implements the alpha-beta search engine for 6x5 chess.
package engine

import (
	"github.com/hailam/minichess/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	RookValue   = 500
	KnightValue = 320
	BishopValue = 330
	QueenValue  = 900
	KingValue   = 20000
)

// Piece values array for quick lookup, indexed by board.PieceType.
var pieceValues = [7]int{0, PawnValue, RookValue, KnightValue, BishopValue, QueenValue, KingValue}

const (
	// winningMargin is the material lead that turns on the trade bonus.
	winningMargin = 300
	// TradeBonus is awarded per captured piece while ahead, so that
	// exchanges are preferred once the engine is winning.
	TradeBonus = 10
)

// Piece-square tables from White's perspective, row 0 = rank 6.
var (
	pawnPST = [board.Rows][board.Cols]int{
		{80, 80, 80, 80, 80}, // about to promote
		{50, 50, 50, 50, 50},
		{30, 30, 40, 30, 30},
		{20, 20, 30, 20, 20},
		{10, 10, 20, 10, 10},
		{0, 0, 0, 0, 0},
	}

	knightPST = [board.Rows][board.Cols]int{
		{-20, -10, 0, -10, -20},
		{-10, 0, 10, 0, -10},
		{0, 10, 20, 10, 0},
		{0, 10, 20, 10, 0},
		{-10, 0, 10, 0, -10},
		{-20, -10, 0, -10, -20},
	}

	bishopPST = [board.Rows][board.Cols]int{
		{0, -5, 0, -5, 10},
		{-5, 0, 0, 0, -5},
		{0, 10, 15, 10, 0},
		{0, 10, 15, 10, 0},
		{10, 10, 5, 10, 10},
		{5, -5, 0, -5, 5},
	}

	rookPST = [board.Rows][board.Cols]int{
		{0, 0, 5, 0, 0},
		{5, 5, 5, 5, 5},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{5, 5, 5, 5, 5},
		{0, 0, 5, 0, 0},
	}

	queenPST = [board.Rows][board.Cols]int{
		{-10, -5, 0, -5, -10},
		{-5, 0, 5, 0, -5},
		{0, 5, 10, 5, 0},
		{0, 5, 10, 5, 0},
		{-5, 0, 5, 0, -5},
		{-10, -5, 0, -5, -10},
	}

	// Back rank is safest
	kingPST = [board.Rows][board.Cols]int{
		{-60, -60, -60, -60, -60},
		{-60, -60, -60, -60, -60},
		{-40, -40, -40, -40, -40},
		{-20, -20, -20, -20, -20},
		{-10, -10, -10, -10, -10},
		{30, 20, 0, 20, 30},
	}
)

// pst is indexed by board.PieceType.
var pst = [7]*[board.Rows][board.Cols]int{
	nil, &pawnPST, &rookPST, &knightPST, &bishopPST, &queenPST, &kingPST,
}

// Evaluate returns the static evaluation of pos from color's perspective.
// Positive scores favor color.
func Evaluate(pos *board.Position, color board.Color) int {
	score := 0
	material := 0
	pieces := 0
	knights := 0
	kings := 0

	for i, piece := range pos.Board {
		if piece == board.Empty {
			continue
		}
		pieces++

		sq := board.Square(i)
		pt := piece.Type()
		switch pt {
		case board.Knight:
			knights++
		case board.King:
			kings++
		}

		value := pieceValues[pt]
		row := sq.Row()
		if piece.Color() != board.White {
			row = board.Rows - 1 - row
		}
		bonus := pst[pt][row][sq.Col()]

		if piece.Color() == color {
			score += value + bonus
			material += value
		} else {
			score -= value + bonus
			material -= value
		}
	}

	// Insufficient material: bare kings, or a lone knight against a king.
	if kings == 2 && (pieces == 2 || (pieces == 3 && knights == 1)) {
		return 0
	}

	if material >= winningMargin {
		score += TradeBonus * (board.TotalPieceCount - pieces)
	}

	return score
}
