package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hailam/minichess/internal/board"
)

func TestEvalCache(t *testing.T) {
	c := NewEvalCache(1)
	assert.Len(t, c.entries, 1<<16)

	_, ok := c.Probe(42)
	assert.False(t, ok)

	c.Store(42, -1234)
	score, ok := c.Probe(42)
	assert.True(t, ok)
	assert.Equal(t, -1234, score)
	assert.InDelta(t, 50.0, c.HitRate(), 1e-9)

	// Same slot, different key: replaced.
	c.Store(42+uint64(len(c.entries)), 7)
	_, ok = c.Probe(42)
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Probe(42 + uint64(len(c.entries)))
	assert.False(t, ok)
}

func TestEvalCacheDisabled(t *testing.T) {
	var c *EvalCache = NewEvalCache(0)
	assert.Nil(t, c)

	c.Store(1, 1)
	_, ok := c.Probe(1)
	assert.False(t, ok)
	assert.Zero(t, c.HitRate())
	c.Clear()
}

func TestEngineEvaluateUsesCache(t *testing.T) {
	pos := mustParse(t, tacticalFEN)

	eng := NewEngine(2, board.Black, false)
	want := Evaluate(pos, board.Black)
	assert.Equal(t, want, eng.Evaluate(pos))
	assert.Equal(t, want, eng.Evaluate(pos))
	assert.InDelta(t, 50.0, eng.evals.HitRate(), 1e-9)

	// A cached engine searches exactly like an uncached one.
	cfg := DefaultConfig(3, board.White, true)
	cfg.EvalCacheMB = 0
	plain, err := New(cfg)
	assert.NoError(t, err)
	cached := NewEngine(3, board.White, true)

	m1, _ := plain.ChooseMove(pos)
	m2, _ := cached.ChooseMove(pos)
	assert.Equal(t, m1, m2)
	assert.Equal(t, plain.Stats(), cached.Stats())
}
