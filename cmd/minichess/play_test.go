package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
)

func TestPlayHuman(t *testing.T) {
	var out bytes.Buffer
	script := "help\nmoves\na2a4\nb2b3\nhistory\nundo\nhistory\nquit\n"
	cfg := engine.DefaultConfig(1, board.Black, false)

	err := playHuman(context.Background(), cfg, strings.NewReader(script), &out, zerolog.Nop())
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "You play White")
	assert.Contains(t, s, "commands:")
	assert.Contains(t, s, "a2a3 b2b3 c2c3 d2d3 e2e3 b1a3 b1c3")
	assert.Contains(t, s, "illegal move")
	assert.Equal(t, 1, strings.Count(s, "Engine plays"))
	assert.Contains(t, s, "1. b3 ")
	assert.Contains(t, s, "no moves\n")
	assert.True(t, strings.HasSuffix(s, "> "), "quit ends the loop at the prompt")
}

func TestPlayHumanEngineMovesFirst(t *testing.T) {
	var out bytes.Buffer
	cfg := engine.DefaultConfig(1, board.White, false)

	err := playHuman(context.Background(), cfg, strings.NewReader(""), &out, zerolog.Nop())
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "You play Black")
	assert.Contains(t, s, "Engine plays ")
	assert.Contains(t, s, "(White ")
}

func TestPlayHumanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := playHuman(ctx, engine.DefaultConfig(1, board.Black, false), strings.NewReader("quit\n"), &bytes.Buffer{}, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayHumanPieceMoves(t *testing.T) {
	var out bytes.Buffer
	script := "moves b1\nmoves a1\nmoves b5\nmoves z9\nquit\n"
	cfg := engine.DefaultConfig(1, board.Black, false)

	err := playHuman(context.Background(), cfg, strings.NewReader(script), &out, zerolog.Nop())
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "> b1a3 b1c3\n")
	assert.Equal(t, 3, strings.Count(s, "> no moves\n"), "blocked rook, enemy pawn, bad square")
}

func TestFormatMoves(t *testing.T) {
	assert.Equal(t, "no moves", formatMoves(nil))
	assert.Equal(t, "no moves", formatHistory(nil))
	assert.Equal(t, "1. Nc3 b4 2. Nxd5", formatHistory([]string{"Nc3", "b4", "Nxd5"}))
}
