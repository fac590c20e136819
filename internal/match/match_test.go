package match

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
)

func TestPlayCheckmate(t *testing.T) {
	res, err := Play(context.Background(), Config{
		White:  Player{Depth: 2},
		Black:  Player{Depth: 2},
		FEN:    "k4/5/5/5/5/R3K w",
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.Equal(t, Checkmate, res.Termination)
	assert.Equal(t, board.White, res.Winner)
	assert.Equal(t, 1, res.Plies)
	require.Len(t, res.Moves, 1)
	assert.Equal(t, board.A6, res.Moves[0].To)
	assert.NotZero(t, res.White.Nodes)
	assert.Zero(t, res.Black.Total())
}

func TestPlayMoveLimit(t *testing.T) {
	res, err := Play(context.Background(), Config{
		White:    Player{Depth: 1},
		Black:    Player{Depth: 1, UseQuiescence: true},
		MaxMoves: 2,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.Equal(t, MoveLimit, res.Termination)
	assert.Equal(t, board.NoColor, res.Winner)
	assert.Equal(t, 2, res.Plies)
	assert.Len(t, res.Moves, 2)
	assert.NotZero(t, res.Black.QNodes)
	assert.Zero(t, res.White.QNodes)
	assert.Positive(t, res.AverageNodesPerMove())
}

func TestPlayNoMoves(t *testing.T) {
	res, err := Play(context.Background(), Config{
		White:  Player{Depth: 2},
		Black:  Player{Depth: 2},
		FEN:    "k4/5/5/5/5/5 w",
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.Equal(t, NoMoves, res.Termination)
	assert.Equal(t, 0, res.Plies)
	assert.Zero(t, res.AverageNodesPerMove())
}

func TestPlayErrors(t *testing.T) {
	_, err := Play(context.Background(), Config{White: Player{Depth: 0}, Black: Player{Depth: 1}})
	assert.Error(t, err)

	_, err = Play(context.Background(), Config{White: Player{Depth: 1}, Black: Player{Depth: 1}, FEN: "bad"})
	assert.Error(t, err)

	_, err = Play(context.Background(), Config{White: Player{Depth: 1}, Black: Player{Depth: 1}, FEN: "P3k/5/5/5/5/4K w"})
	assert.ErrorContains(t, err, "promotion rank")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Play(ctx, Config{White: Player{Depth: 1}, Black: Player{Depth: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayerSettings(t *testing.T) {
	cfg := engine.DefaultConfig(3, board.White, true)
	cfg.QuiescenceDepth = 2
	cfg.TrimThreshold = 1000

	p := PlayerFor(cfg)
	assert.Equal(t, Player{Depth: 3, UseQuiescence: true, QuiescenceDepth: 2, TrimThreshold: 1000}, p)

	eng, err := newEngine(p, board.Black, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, eng.Config().QuiescenceDepth)
	assert.Equal(t, 1000, eng.Config().TrimThreshold)
	assert.Equal(t, board.Black, eng.Color())

	eng, err = newEngine(Player{Depth: 1}, board.White, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultQuiescenceDepth, eng.Config().QuiescenceDepth)
	assert.Equal(t, engine.DefaultTrimThreshold, eng.Config().TrimThreshold)
}

func TestRunSeries(t *testing.T) {
	cfg := Config{
		White:    Player{Depth: 2},
		Black:    Player{Depth: 1},
		MaxMoves: 4,
		Logger:   zerolog.Nop(),
	}
	results, err := RunSeries(context.Background(), cfg, 3, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Fresh engines per game make every game identical.
	for _, r := range results[1:] {
		assert.Equal(t, results[0].Moves, r.Moves)
		assert.Equal(t, results[0].Plies, r.Plies)
	}

	score := Tally(results)
	assert.Equal(t, 3, score.WhiteWins+score.BlackWins+score.Unfinished)
}

func TestRunSeriesError(t *testing.T) {
	_, err := RunSeries(context.Background(), Config{White: Player{Depth: 0}}, 2, 1)
	assert.Error(t, err)

	_, err = RunSeries(context.Background(), Config{}, -1, 1)
	assert.Error(t, err)

	results, err := RunSeries(context.Background(), Config{}, 0, 1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTally(t *testing.T) {
	score := Tally([]*Result{
		{Winner: board.White},
		{Winner: board.White},
		{Winner: board.Black},
		{Winner: board.NoColor},
	})
	assert.Equal(t, Score{WhiteWins: 2, BlackWins: 1, Unfinished: 1}, score)
}
