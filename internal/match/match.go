// Package match plays engine-versus-engine games.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
)

// DefaultMaxMoves is the ply limit after which a game is abandoned.
const DefaultMaxMoves = 50

// Termination says why a game ended.
type Termination int

const (
	Checkmate Termination = iota // A king was captured
	NoMoves                      // The side to move had no moves
	MoveLimit                    // MaxMoves plies were played
)

// String returns the termination name.
func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "checkmate"
	case NoMoves:
		return "no moves"
	case MoveLimit:
		return "move limit"
	default:
		return "unknown"
	}
}

// Player describes one side's engine. Zero QuiescenceDepth and
// TrimThreshold use the engine defaults.
type Player struct {
	Depth           int
	UseQuiescence   bool
	QuiescenceDepth int
	TrimThreshold   int
}

// PlayerFor returns the player searching with cfg's settings.
func PlayerFor(cfg engine.Config) Player {
	return Player{
		Depth:           cfg.Depth,
		UseQuiescence:   cfg.UseQuiescence,
		QuiescenceDepth: cfg.QuiescenceDepth,
		TrimThreshold:   cfg.TrimThreshold,
	}
}

// Config configures a game.
type Config struct {
	White    Player
	Black    Player
	MaxMoves int    // Ply limit; DefaultMaxMoves if zero
	FEN      string // Start position; board.StartFEN if empty
	Logger   zerolog.Logger
}

// SideStats accumulates search counters for one side over a game.
type SideStats struct {
	Nodes  uint64
	QNodes uint64
	Last   engine.SearchStats // Stats of the side's final search
}

// Total returns main plus quiescence nodes.
func (s SideStats) Total() uint64 {
	return s.Nodes + s.QNodes
}

// Result describes a finished game.
type Result struct {
	Plies       int
	Winner      board.Color // NoColor unless a king was captured
	Termination Termination
	Moves       []board.Move
	White       SideStats
	Black       SideStats
	Duration    time.Duration
}

// AverageNodesPerMove returns the node count per ply for both sides.
func (r *Result) AverageNodesPerMove() float64 {
	if r.Plies == 0 {
		return 0
	}
	return float64(r.White.Total()+r.Black.Total()) / float64(r.Plies)
}

// String returns a one-line summary.
func (r *Result) String() string {
	winner := "none"
	if r.Winner != board.NoColor {
		winner = r.Winner.String()
	}
	return fmt.Sprintf("%s after %d plies, winner %s, nodes %d + %d, %s",
		r.Termination, r.Plies, winner,
		r.White.Nodes+r.Black.Nodes, r.White.QNodes+r.Black.QNodes,
		r.Duration.Round(time.Millisecond))
}

// Play runs a single game between two fresh engines. The context is
// checked between plies.
func Play(ctx context.Context, cfg Config) (*Result, error) {
	maxMoves := cfg.MaxMoves
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}

	fen := cfg.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, errors.Wrap(err, "start position")
	}

	white, err := newEngine(cfg.White, board.White, cfg.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "white engine")
	}
	black, err := newEngine(cfg.Black, board.Black, cfg.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "black engine")
	}

	log := cfg.Logger
	res := &Result{Termination: MoveLimit}
	start := time.Now()

	for res.Plies < maxMoves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		eng, side := white, &res.White
		if pos.SideToMove == board.Black {
			eng, side = black, &res.Black
		}

		m, ok := eng.ChooseMove(pos.Copy())
		stats := eng.Stats()
		side.Nodes += stats.Nodes
		side.QNodes += stats.QNodes
		side.Last = stats
		if !ok {
			res.Termination = NoMoves
			break
		}

		pos.MakeMove(m)
		res.Plies++
		log.Debug().
			Int("ply", res.Plies).
			Str("move", m.String()).
			Str("eval", engine.ScoreToString(stats.Evaluation)).
			Int("tt", eng.TableSize()).
			Msg("move")

		if pos.IsCheckmate() {
			res.Termination = Checkmate
			res.Winner = pos.SideToMove.Other()
			break
		}
	}

	res.Moves = append([]board.Move(nil), pos.History...)
	res.Duration = time.Since(start)
	log.Info().
		Str("termination", res.Termination.String()).
		Str("winner", res.Winner.String()).
		Int("plies", res.Plies).
		Dur("elapsed", res.Duration).
		Msg("game finished")

	return res, nil
}

// RunSeries plays games independent games with at most parallel running at
// once. Results are returned in game order. The first error cancels the
// remaining games.
func RunSeries(ctx context.Context, cfg Config, games, parallel int) ([]*Result, error) {
	if games < 0 {
		return nil, errors.Errorf("invalid game count %d", games)
	}

	results := make([]*Result, games)
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			gameCfg := cfg
			gameCfg.Logger = cfg.Logger.With().Int("game", i+1).Logger()
			res, err := Play(ctx, gameCfg)
			if err != nil {
				return errors.Wrapf(err, "game %d", i+1)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Score tallies a series from White's point of view.
type Score struct {
	WhiteWins  int
	BlackWins  int
	Unfinished int
}

// Tally counts the outcomes of results.
func Tally(results []*Result) Score {
	var s Score
	for _, r := range results {
		switch r.Winner {
		case board.White:
			s.WhiteWins++
		case board.Black:
			s.BlackWins++
		default:
			s.Unfinished++
		}
	}
	return s
}

func newEngine(p Player, color board.Color, log zerolog.Logger) (*engine.Engine, error) {
	cfg := engine.DefaultConfig(p.Depth, color, p.UseQuiescence)
	if p.QuiescenceDepth > 0 {
		cfg.QuiescenceDepth = p.QuiescenceDepth
	}
	if p.TrimThreshold > 0 {
		cfg.TrimThreshold = p.TrimThreshold
	}
	cfg.Logger = log
	return engine.New(cfg)
}
