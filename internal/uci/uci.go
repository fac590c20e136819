// Package uci implements a UCI-style text protocol for the 6x5 engine.
//
// Moves use coordinate notation on files a-e and ranks 1-6 ("b2b3",
// "a5a6q"). Positions use the 6x5 FEN placement plus side to move.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
)

// Bounds advertised for the spin options.
const (
	maxDepth           = 12
	maxQuiescenceDepth = 16
)

// UCI implements the protocol loop.
type UCI struct {
	cfg      engine.Config
	engine   *engine.Engine
	position *board.Position

	out io.Writer
	log zerolog.Logger
}

// New creates a protocol handler. The engine color in cfg is ignored: every
// search is run for the side to move.
func New(cfg engine.Config, out io.Writer) *UCI {
	return &UCI{
		cfg:      cfg,
		position: board.NewPosition(),
		out:      out,
		log:      cfg.Logger,
	}
}

// Run reads commands from in until "quit" or end of input.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			if err := u.handlePosition(args); err != nil {
				u.println("info string " + err.Error())
			}
		case "go":
			u.handleGo(args)
		case "setoption":
			if err := u.handleSetOption(args); err != nil {
				u.println("info string " + err.Error())
			}
		case "quit":
			return nil
		// Debug commands
		case "d":
			u.println(u.position.String())
			u.println("Fen: " + u.position.FEN())
		case "eval":
			u.printf("info string eval %s material %d pieces %d\n",
				engine.ScoreToString(engine.Evaluate(u.position, u.position.SideToMove)),
				u.position.Material(), u.position.PieceCount())
		case "perft":
			u.handlePerft(args)
		default:
			u.log.Debug().Str("cmd", cmd).Msg("unknown command")
		}
	}

	return errors.Wrap(scanner.Err(), "read commands")
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name MiniChess")
	u.println("id author MiniChess Team")
	u.println("")
	u.printf("option name Depth type spin default %d min 1 max %d\n", u.cfg.Depth, maxDepth)
	u.printf("option name Quiescence type check default %t\n", u.cfg.UseQuiescence)
	u.printf("option name QuiescenceDepth type spin default %d min 0 max %d\n", u.cfg.QuiescenceDepth, maxQuiescenceDepth)
	u.println("uciok")
}

// handleNewGame drops the engine and its table.
func (u *UCI) handleNewGame() {
	u.engine = nil
	u.position = board.NewPosition()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves b2b3 b5b4
//   - position fen <fen>
//   - position fen <fen> moves b2b3
func (u *UCI) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: missing arguments")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			return errors.Wrap(err, "invalid FEN")
		}
	default:
		return errors.Errorf("position: unknown keyword %q", args[0])
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := u.parseMove(pos, s)
			if err != nil {
				return err
			}
			pos.MakeMove(m)
		}
	}

	u.position = pos
	return nil
}

// parseMove accepts only moves generated for the side to move.
func (u *UCI) parseMove(pos *board.Position, s string) (board.Move, error) {
	m, err := board.ParseMove(s, pos)
	if err != nil {
		return board.NoMove, errors.Wrapf(err, "invalid move %s", s)
	}
	found, ok := pos.GeneratePieceMoves(m.From).Find(m.From, m.To)
	if !ok {
		return board.NoMove, errors.Errorf("illegal move %s", s)
	}
	return found, nil
}

// handleGo searches the current position. "go depth N" overrides the
// configured depth for this search only, capped at maxDepth.
func (u *UCI) handleGo(args []string) {
	depth := u.cfg.Depth
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				depth = min(d, maxDepth)
			}
			i++
		}
	}

	eng, err := u.engineFor(u.position.SideToMove, depth)
	if err != nil {
		u.println("info string " + err.Error())
		u.println("bestmove 0000")
		return
	}

	start := time.Now()
	best, ok := eng.ChooseMove(u.position.Copy())
	elapsed := time.Since(start)
	if !ok {
		u.println("bestmove 0000")
		return
	}

	u.sendInfo(depth, eng.Stats(), elapsed)
	u.printf("bestmove %s\n", best)
}

// engineFor reuses the engine, and its table, while the color and depth
// stay the same.
func (u *UCI) engineFor(color board.Color, depth int) (*engine.Engine, error) {
	if u.engine != nil && u.engine.Color() == color && u.engine.Config().Depth == depth {
		return u.engine, nil
	}

	cfg := u.cfg
	cfg.Color = color
	cfg.Depth = depth
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	u.engine = eng
	return eng, nil
}

// handleSetOption handles "setoption name <id> value <x>".
func (u *UCI) handleSetOption(args []string) error {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return errors.New("setoption: expected name <id> value <x>")
	}
	name, value := args[1], args[3]

	cfg := u.cfg
	switch strings.ToLower(name) {
	case "depth":
		d, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrap(err, "setoption Depth")
		}
		if d > maxDepth {
			return errors.Errorf("setoption Depth: %d exceeds %d", d, maxDepth)
		}
		cfg.Depth = d
	case "quiescence":
		q, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(err, "setoption Quiescence")
		}
		cfg.UseQuiescence = q
	case "quiescencedepth":
		d, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrap(err, "setoption QuiescenceDepth")
		}
		if d < 0 || d > maxQuiescenceDepth {
			return errors.Errorf("setoption QuiescenceDepth: %d outside 0..%d", d, maxQuiescenceDepth)
		}
		cfg.QuiescenceDepth = d
	default:
		return errors.Errorf("setoption: unknown option %s", name)
	}

	cfg.Color = board.White
	if err := cfg.Validate(); err != nil {
		return err
	}
	u.cfg = cfg
	u.engine = nil
	return nil
}

// handlePerft counts leaf nodes of the move tree.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}

	start := time.Now()
	nodes := engine.Perft(u.position.Copy(), depth)
	u.printf("perft %d nodes %d time %d\n", depth, nodes, time.Since(start).Milliseconds())
}

// sendInfo reports the finished search.
func (u *UCI) sendInfo(depth int, stats engine.SearchStats, elapsed time.Duration) {
	parts := []string{fmt.Sprintf("depth %d", depth)}

	score := stats.Evaluation
	if engine.IsMateScore(score) {
		sign := ""
		if score < 0 {
			sign = "-"
			score = -score
		}
		plies := depth - (score - engine.MateScore)
		parts = append(parts, fmt.Sprintf("score mate %s%d", sign, (plies+1)/2))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", score))
	}

	parts = append(parts,
		fmt.Sprintf("nodes %d", stats.Total()),
		fmt.Sprintf("qnodes %d", stats.QNodes),
		fmt.Sprintf("time %d", elapsed.Milliseconds()),
	)
	u.println("info " + strings.Join(parts, " "))
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}
