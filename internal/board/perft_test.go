package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UndoMove()
	}
	return nodes
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 7},
		{2, 49},
		{3, 452},
		{4, 4214},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
			require.Equal(t, pos.ComputeHash(), pos.Hash, "hash drifted during perft")
		})
	}
}

// TestPerftTactical covers promotions on both sides, captures by every
// slider and a knight in the middle of the board.
func TestPerftTactical(t *testing.T) {
	tests := []struct {
		fen      string
		expected []int64
	}{
		{"1k3/P3r/2n2/1Q3/3p1/K3R w", []int64{26, 508, 11745}},
		{"1k3/P3r/2n2/1Q3/3p1/K3R b", []int64{21, 523, 10063}},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(tc.fen)
		require.NoError(t, err)
		start := pos.FEN()

		for i, want := range tc.expected {
			depth := i + 1
			if got := perft(pos, depth); got != want {
				t.Errorf("%s: perft(%d) = %d, want %d", tc.fen, depth, got, want)
			}
		}
		require.Equal(t, start, pos.FEN(), "board not restored after perft")
	}
}
