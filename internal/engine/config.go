package engine

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/hailam/minichess/internal/board"
)

// DefaultQuiescenceDepth is the capture-only extension budget past the
// nominal horizon.
const DefaultQuiescenceDepth = 4

// Config configures an Engine.
type Config struct {
	Depth           int         // Nominal search depth in plies (>= 1)
	Color           board.Color // Side the engine plays and evaluates for
	UseQuiescence   bool        // Extend leaves with a capture-only search
	QuiescenceDepth int         // Capture plies allowed past the horizon
	TrimThreshold   int         // Table size that triggers a trim after a root search
	EvalCacheMB     int         // Static evaluation cache size, 0 disables it
	Logger          zerolog.Logger
}

// DefaultConfig returns the configuration used by NewEngine.
func DefaultConfig(depth int, color board.Color, useQuiescence bool) Config {
	return Config{
		Depth:           depth,
		Color:           color,
		UseQuiescence:   useQuiescence,
		QuiescenceDepth: DefaultQuiescenceDepth,
		TrimThreshold:   DefaultTrimThreshold,
		EvalCacheMB:     DefaultEvalCacheMB,
		Logger:          zerolog.Nop(),
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs *multierror.Error

	if c.Depth < 1 {
		errs = multierror.Append(errs, fmt.Errorf("depth must be at least 1, got %d", c.Depth))
	}
	if c.Color != board.White && c.Color != board.Black {
		errs = multierror.Append(errs, fmt.Errorf("invalid engine color %d", c.Color))
	}
	if c.UseQuiescence && c.QuiescenceDepth < 0 {
		errs = multierror.Append(errs, fmt.Errorf("quiescence depth must not be negative, got %d", c.QuiescenceDepth))
	}
	if c.EvalCacheMB < 0 {
		errs = multierror.Append(errs, fmt.Errorf("eval cache size must not be negative, got %d", c.EvalCacheMB))
	}
	if c.TrimThreshold < 2 {
		errs = multierror.Append(errs, fmt.Errorf("trim threshold must be at least 2, got %d", c.TrimThreshold))
	}

	return errs.ErrorOrNil()
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 3 ply, no quiescence
	Medium                   // 4 ply + quiescence
	Hard                     // 5 ply + quiescence
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// SearchLimits specifies the search shape for a difficulty.
type SearchLimits struct {
	Depth         int
	UseQuiescence bool
}

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 3, UseQuiescence: false},
	Medium: {Depth: 4, UseQuiescence: true},
	Hard:   {Depth: 5, UseQuiescence: true},
}

// ConfigFor returns the configuration for a difficulty level.
func ConfigFor(d Difficulty, color board.Color) Config {
	limits, ok := DifficultySettings[d]
	if !ok {
		limits = DifficultySettings[Medium]
	}
	return DefaultConfig(limits.Depth, color, limits.UseQuiescence)
}
