package engine

import (
	"golang.org/x/exp/slices"

	"github.com/hailam/minichess/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// String returns the bound name.
func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "EXACT"
	case TTLowerBound:
		return "LOWERBOUND"
	case TTUpperBound:
		return "UPPERBOUND"
	default:
		return "UNKNOWN"
	}
}

// DefaultTrimThreshold is the entry count at which the table is trimmed
// after a root search.
const DefaultTrimThreshold = 200000

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Value    int        // Score (bounded by Flag)
	Depth    int        // Remaining depth the score was computed with
	Flag     TTFlag     // Type of bound
	BestMove board.Move // Best move found, NoMove at quiescence leaves
}

// TranspositionTable memoizes search results by position hash.
//
// Keys are the bare Zobrist hash with no verification tag, so two
// positions that collide share one entry. The table is not synchronized
// and belongs to a single Engine.
type TranspositionTable struct {
	entries map[uint64]TTEntry

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates an empty transposition table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{
		entries: make(map[uint64]TTEntry),
	}
}

// Probe looks up hash for a search of the given remaining depth and window.
//
// If the stored result settles the node, Probe returns it with ok=true.
// Otherwise it returns the window, tightened by any usable bound.
func (tt *TranspositionTable) Probe(hash uint64, depth, alpha, beta int) (value, newAlpha, newBeta int, ok bool) {
	tt.probes++

	entry, found := tt.Lookup(hash)
	if !found || entry.Depth < depth {
		return 0, alpha, beta, false
	}
	tt.hits++

	switch entry.Flag {
	case TTExact:
		return entry.Value, alpha, beta, true
	case TTLowerBound:
		alpha = max(alpha, entry.Value)
	case TTUpperBound:
		beta = min(beta, entry.Value)
	}

	if alpha >= beta {
		return entry.Value, alpha, beta, true
	}
	return 0, alpha, beta, false
}

// Lookup returns the raw entry for hash.
func (tt *TranspositionTable) Lookup(hash uint64) (TTEntry, bool) {
	entry, ok := tt.entries[hash]
	return entry, ok
}

// Store records a node result, classifying it against the window that was
// active when the node was entered.
func (tt *TranspositionTable) Store(hash uint64, depth, value, origAlpha, origBeta int, bestMove board.Move) {
	tt.entries[hash] = TTEntry{
		Value:    value,
		Depth:    depth,
		Flag:     classify(value, origAlpha, origBeta),
		BestMove: bestMove,
	}
}

// classify returns the bound kind of value for the window (alpha, beta).
func classify(value, alpha, beta int) TTFlag {
	switch {
	case alpha < value && value < beta:
		return TTExact
	case value >= beta:
		return TTLowerBound
	default:
		return TTUpperBound
	}
}

// Trim keeps the threshold/2 deepest entries once the table holds at least
// threshold entries. It reports whether the table was trimmed.
func (tt *TranspositionTable) Trim(threshold int) bool {
	if threshold <= 0 || len(tt.entries) < threshold {
		return false
	}

	type keyed struct {
		hash  uint64
		entry TTEntry
	}
	all := make([]keyed, 0, len(tt.entries))
	for h, e := range tt.entries {
		all = append(all, keyed{h, e})
	}
	slices.SortFunc(all, func(a, b keyed) int {
		return b.entry.Depth - a.entry.Depth
	})

	kept := make(map[uint64]TTEntry, threshold)
	for _, k := range all[:threshold/2] {
		kept[k.hash] = k.entry
	}
	tt.entries = kept
	return true
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	tt.entries = make(map[uint64]TTEntry)
	tt.hits = 0
	tt.probes = 0
}

// Len returns the number of entries in the table.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}
