// Command minichess plays 6x5 chess against the engine, runs
// engine-versus-engine matches, or speaks a UCI-style protocol.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
	"github.com/hailam/minichess/internal/match"
	"github.com/hailam/minichess/internal/storage"
	"github.com/hailam/minichess/internal/uci"
)

var (
	mode       = flag.String("mode", "play", "play, match, uci or stats")
	difficulty = flag.String("difficulty", "", "easy, medium or hard (overrides -depth and -q)")
	depth      = flag.Int("depth", 0, "search depth in plies (0 uses the saved preference)")
	quiesce    = flag.Bool("q", true, "extend leaves with quiescence search")
	color      = flag.String("color", "", "side the engine plays in play mode: white or black")
	games      = flag.Int("games", 1, "number of games in match mode")
	parallel   = flag.Int("parallel", 2, "games played at once in match mode")
	maxMoves   = flag.Int("max-moves", match.DefaultMaxMoves, "ply limit per match game")
	blackDepth = flag.Int("black-depth", 0, "black engine depth in match mode (0 uses -depth)")
	blackQ     = flag.Bool("black-q", true, "black engine quiescence in match mode")
	dbDir      = flag.String("db", "", "database directory (default: platform data dir)")
	noDB       = flag.Bool("no-db", false, "do not open the database")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error().Err(err).Msg("minichess failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger) error {
	store, err := openStorage()
	if err != nil {
		log.Warn().Err(err).Msg("storage unavailable, preferences and results will not be saved")
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("closing storage")
			}
		}()
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		if prefs, err = store.LoadPreferences(); err != nil {
			return err
		}
	}
	if err := applyFlags(prefs); err != nil {
		return err
	}

	cfg := prefs.EngineConfig()
	cfg.Logger = log
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "engine configuration")
	}

	switch *mode {
	case "play":
		if store != nil {
			if err := store.SavePreferences(prefs); err != nil {
				log.Warn().Err(err).Msg("saving preferences")
			}
			if err := welcome(store, os.Stdout); err != nil {
				log.Warn().Err(err).Msg("first launch")
			}
		}
		return playHuman(ctx, cfg, os.Stdin, os.Stdout, log)
	case "match":
		return runMatch(ctx, cfg, store, log)
	case "uci":
		return uci.New(cfg, os.Stdout).Run(os.Stdin)
	case "stats":
		return printStats(store)
	default:
		return errors.Errorf("unknown mode %q", *mode)
	}
}

func openStorage() (*storage.Storage, error) {
	if *noDB {
		return nil, nil
	}
	if *dbDir != "" {
		return storage.Open(*dbDir)
	}
	return storage.NewStorage()
}

// applyFlags overrides saved preferences with explicitly set flags.
func applyFlags(prefs *storage.Preferences) error {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *difficulty != "" {
		d, err := engine.ParseDifficulty(*difficulty)
		if err != nil {
			return err
		}
		preset := engine.ConfigFor(d, prefs.EngineColor)
		prefs.Difficulty = d.String()
		prefs.Depth = preset.Depth
		prefs.UseQuiescence = preset.UseQuiescence
	}
	if *depth > 0 {
		prefs.Depth = *depth
	}
	if set["q"] {
		prefs.UseQuiescence = *quiesce
	}
	switch *color {
	case "":
	case "white":
		prefs.EngineColor = board.White
	case "black":
		prefs.EngineColor = board.Black
	default:
		return errors.Errorf("unknown color %q", *color)
	}
	return nil
}

// matchConfig builds both players from cfg. The black-side flags override
// depth and quiescence only.
func matchConfig(cfg engine.Config, log zerolog.Logger) match.Config {
	black := match.PlayerFor(cfg)
	black.UseQuiescence = *blackQ
	if *blackDepth > 0 {
		black.Depth = *blackDepth
	}
	return match.Config{
		White:    match.PlayerFor(cfg),
		Black:    black,
		MaxMoves: *maxMoves,
		Logger:   log,
	}
}

func runMatch(ctx context.Context, cfg engine.Config, store *storage.Storage, log zerolog.Logger) error {
	mcfg := matchConfig(cfg, log)

	log.Info().
		Int("games", *games).
		Int("white_depth", mcfg.White.Depth).
		Bool("white_q", mcfg.White.UseQuiescence).
		Int("black_depth", mcfg.Black.Depth).
		Bool("black_q", mcfg.Black.UseQuiescence).
		Int("q_depth", mcfg.White.QuiescenceDepth).
		Int("trim", mcfg.White.TrimThreshold).
		Msg("starting match")

	results, err := match.RunSeries(ctx, mcfg, *games, *parallel)
	if err != nil {
		return err
	}

	for i, res := range results {
		fmt.Printf("Game %d: %s\n", i+1, res)
		fmt.Printf("  nodes %s, %s per move\n",
			humanize.Comma(int64(res.White.Total()+res.Black.Total())),
			humanize.CommafWithDigits(res.AverageNodesPerMove(), 2))
		if store != nil {
			if _, err := store.RecordMatch(storage.NewMatchRecord(mcfg, res)); err != nil {
				return err
			}
		}
	}

	score := match.Tally(results)
	fmt.Printf("White %d, Black %d, unfinished %d\n", score.WhiteWins, score.BlackWins, score.Unfinished)
	return nil
}

func printStats(store *storage.Storage) error {
	if store == nil {
		return errors.New("stats mode needs the database")
	}
	sum, err := store.Summary()
	if err != nil {
		return err
	}

	fmt.Printf("Games played:   %d\n", sum.GamesPlayed)
	fmt.Printf("White wins:     %d\n", sum.WhiteWins)
	fmt.Printf("Black wins:     %d\n", sum.BlackWins)
	fmt.Printf("Unfinished:     %d\n", sum.Unfinished)
	fmt.Printf("White score:    %.1f%%\n", sum.WhiteScore())
	fmt.Printf("Average length: %.1f plies\n", sum.AveragePlies())
	fmt.Printf("Nodes searched: %s\n", humanize.Comma(int64(sum.TotalNodes)))
	fmt.Printf("Time searched:  %s\n", sum.TotalPlayTime.Round(time.Millisecond))
	return nil
}
