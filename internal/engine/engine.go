package engine

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hailam/minichess/internal/board"
)

// SearchStats contains counters for the last top-level search.
type SearchStats struct {
	Nodes      uint64 // Internal nodes of the main search
	QNodes     uint64 // Quiescence nodes
	Evaluation int    // Score of the chosen root move
}

// Reset clears the statistics.
func (s *SearchStats) Reset() {
	*s = SearchStats{}
}

// Total returns the number of main and quiescence nodes.
func (s SearchStats) Total() uint64 {
	return s.Nodes + s.QNodes
}

// String returns a formatted summary.
func (s SearchStats) String() string {
	return fmt.Sprintf("Nodes Visited: %d\nQ Nodes Visited: %d\nEvaluation: %s",
		s.Nodes, s.QNodes, ScoreToString(s.Evaluation))
}

// Engine is the game AI. It owns a private transposition table, so one
// Engine must not be used by concurrent searches.
type Engine struct {
	cfg   Config
	tt    *TranspositionTable
	evals *EvalCache
	stats SearchStats
	log   zerolog.Logger
}

// NewEngine creates an engine searching depth plies for color, optionally
// extending leaves with quiescence search. It panics if the arguments are
// invalid; use New to get an error instead.
func NewEngine(depth int, color board.Color, useQuiescence bool) *Engine {
	e, err := New(DefaultConfig(depth, color, useQuiescence))
	if err != nil {
		panic(err)
	}
	return e
}

// New creates an engine from a configuration.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:   cfg,
		tt:    NewTranspositionTable(),
		evals: NewEvalCache(cfg.EvalCacheMB),
		log:   cfg.Logger.With().Str("engine", cfg.Color.String()).Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Color returns the side the engine plays.
func (e *Engine) Color() board.Color {
	return e.cfg.Color
}

// Stats returns the statistics of the last ChooseMove call.
func (e *Engine) Stats() SearchStats {
	return e.stats
}

// TableSize returns the number of transposition table entries.
func (e *Engine) TableSize() int {
	return e.tt.Len()
}

// IsEnginesTurn returns true if the engine's color is to move in pos.
func (e *Engine) IsEnginesTurn(pos *board.Position) bool {
	return pos.SideToMove == e.cfg.Color
}

// ChooseMove searches pos and returns the best move for the side to move.
// It returns false when there are no moves, which the caller treats as
// game over. pos is mutated during the search and restored on return.
func (e *Engine) ChooseMove(pos *board.Position) (board.Move, bool) {
	e.stats.Reset()

	if !e.IsEnginesTurn(pos) {
		e.log.Warn().Str("to_move", pos.SideToMove.String()).Msg("searching a position where the engine is not to move")
	}

	bestMove := board.NoMove
	bestScore := -Infinity
	found := false

	for _, m := range genAndOrder(pos) {
		pos.MakeMove(m)
		score := e.alphaBeta(pos, e.cfg.Depth-1, -Infinity, Infinity, false)
		pos.UndoMove()

		// Strictly better only: the first of equal moves is kept.
		if score > bestScore {
			bestScore = score
			bestMove = m
			found = true
		}
	}

	if !found {
		e.log.Debug().Msg("no moves available")
		return board.NoMove, false
	}

	e.stats.Evaluation = bestScore
	e.log.Debug().
		Str("move", bestMove.String()).
		Int("eval", bestScore).
		Uint64("nodes", e.stats.Nodes).
		Uint64("qnodes", e.stats.QNodes).
		Int("tt", e.tt.Len()).
		Float64("tt_hits", e.tt.HitRate()).
		Float64("eval_hits", e.evals.HitRate()).
		Msg("search complete")

	if size := e.tt.Len(); e.tt.Trim(e.cfg.TrimThreshold) {
		e.log.Debug().Int("before", size).Int("after", e.tt.Len()).Msg("transposition table trimmed")
	}

	return bestMove, true
}

// Clear clears the transposition table, evaluation cache and statistics.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.evals.Clear()
	e.stats.Reset()
}

// Evaluate returns the static evaluation of a position for the engine's color.
func (e *Engine) Evaluate(pos *board.Position) int {
	if score, ok := e.evals.Probe(pos.Hash); ok {
		return score
	}
	score := Evaluate(pos, e.cfg.Color)
	e.evals.Store(pos.Hash, score)
	return score
}

// Perft performs a perft test (for debugging move generation).
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		pos.MakeMove(m)
		nodes += Perft(pos, depth-1)
		pos.UndoMove()
	}

	return nodes
}

// IsMateScore returns true if the score signals a captured king.
func IsMateScore(score int) bool {
	return score >= MateScore || score <= -MateScore
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score >= MateScore {
		return "Mate (+" + strconv.Itoa(score-MateScore) + ")"
	}
	if score <= -MateScore {
		return "Mated (-" + strconv.Itoa(-score-MateScore) + ")"
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
