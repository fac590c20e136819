package engine

import (
	"github.com/hailam/minichess/internal/board"
)

// Search constants
const (
	Infinity  = 1 << 30
	MateScore = 1000000
)

// mateScore scores a position whose last move captured a king. Scores are
// from the engine's perspective: if the engine is to move, its king was
// just taken. Adding depth makes faster mates slightly larger in magnitude.
func mateScore(depth int, maximizing bool) int {
	score := MateScore + depth
	if maximizing {
		return -score
	}
	return score
}

// alphaBeta is the recursive minimax search with alpha-beta pruning.
// The engine's side maximizes; the opponent minimizes.
func (e *Engine) alphaBeta(pos *board.Position, depth, alpha, beta int, maximizing bool) int {
	origAlpha, origBeta := alpha, beta

	// Transposition table lookup
	ttValue, a, b, ok := e.tt.Probe(pos.Hash, depth, alpha, beta)
	if ok {
		return ttValue
	}
	alpha, beta = a, b

	if pos.IsCheckmate() {
		return mateScore(depth, maximizing)
	}

	if depth == 0 {
		if e.cfg.UseQuiescence {
			return e.quiesce(pos, e.cfg.QuiescenceDepth, alpha, beta, maximizing)
		}
		return e.Evaluate(pos)
	}

	moves := genAndOrder(pos)
	if len(moves) == 0 {
		return 0 // stalemate
	}

	e.stats.Nodes++

	bestMove := board.NoMove
	var best int

	if maximizing {
		best = -Infinity
		for _, m := range moves {
			pos.MakeMove(m)
			value := e.alphaBeta(pos, depth-1, alpha, beta, false)
			pos.UndoMove()

			if value > best {
				best = value
				bestMove = m
			}
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
	} else {
		best = Infinity
		for _, m := range moves {
			pos.MakeMove(m)
			value := e.alphaBeta(pos, depth-1, alpha, beta, true)
			pos.UndoMove()

			if value < best {
				best = value
				bestMove = m
			}
			beta = min(beta, value)
			if beta <= alpha {
				break
			}
		}
	}

	e.tt.Store(pos.Hash, depth, best, origAlpha, origBeta, bestMove)
	return best
}

// quiesce extends the search along capture lines until the position is
// quiet or the budget runs out. The static evaluation is a floor (for the
// maximizer) or ceiling (for the minimizer) the side to move can always
// take by declining to capture.
//
// Entries share the main table; depth is the remaining quiescence budget.
func (e *Engine) quiesce(pos *board.Position, depth, alpha, beta int, maximizing bool) int {
	e.stats.QNodes++
	origAlpha, origBeta := alpha, beta

	ttValue, a, b, ok := e.tt.Probe(pos.Hash, depth, alpha, beta)
	if ok {
		return ttValue
	}
	alpha, beta = a, b

	if pos.IsCheckmate() {
		return mateScore(0, maximizing)
	}

	standPat := e.Evaluate(pos)
	if maximizing {
		if standPat >= beta {
			return beta
		}
		alpha = max(alpha, standPat)
	} else {
		if standPat <= alpha {
			return alpha
		}
		beta = min(beta, standPat)
	}

	if depth == 0 {
		return standPat
	}

	captures := genAndOrderCaptures(pos)
	if len(captures) == 0 {
		return standPat
	}

	best := standPat
	bestMove := board.NoMove

	if maximizing {
		for _, m := range captures {
			pos.MakeMove(m)
			value := e.quiesce(pos, depth-1, alpha, beta, false)
			pos.UndoMove()

			if value > best {
				best = value
				bestMove = m
			}
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
	} else {
		for _, m := range captures {
			pos.MakeMove(m)
			value := e.quiesce(pos, depth-1, alpha, beta, true)
			pos.UndoMove()

			if value < best {
				best = value
				bestMove = m
			}
			beta = min(beta, value)
			if beta <= alpha {
				break
			}
		}
	}

	e.tt.Store(pos.Hash, depth, best, origAlpha, origBeta, bestMove)
	return best
}
