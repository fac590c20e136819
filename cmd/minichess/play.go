package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
	"github.com/hailam/minichess/internal/game"
	"github.com/hailam/minichess/internal/storage"
)

const playHelp = `commands:
  <move>   play a move, e.g. b2b3, a5a6q, Nc3 or bxc3
  moves    list your moves ("moves b1" for one piece)
  history  show the moves played
  undo     take back your last move and the engine's reply
  board    show the board
  new      start over
  quit     leave`

// welcome prints the command list the first time the database is used.
func welcome(store *storage.Storage, out io.Writer) error {
	first, err := store.IsFirstLaunch()
	if err != nil || !first {
		return err
	}
	fmt.Fprintln(out, "Welcome to minichess, chess on a 6x5 board.")
	fmt.Fprintln(out, playHelp)
	return store.MarkFirstLaunchComplete()
}

// playHuman runs a human-versus-engine game over a line-based console.
func playHuman(ctx context.Context, cfg engine.Config, in io.Reader, out io.Writer, log zerolog.Logger) error {
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}
	g := game.New(eng, log)

	fmt.Fprintf(out, "You play %s. Type \"help\" for commands.\n", g.PlayerColor())
	showBoard(out, g)

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !g.IsOver() && !g.IsPlayerTurn() {
			m, ok, err := g.PlayEngineMove()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "%s has no moves.\n", g.Turn())
			} else {
				san := g.SANHistory()[len(g.SANHistory())-1]
				fmt.Fprintf(out, "Engine plays %s (%s, eval %s)\n", san, m.Describe(), engine.ScoreToString(eng.Stats().Evaluation))
				showBoard(out, g)
			}
		}
		if g.IsOver() {
			fmt.Fprintf(out, "%s wins by capturing the king. Type \"new\" or \"quit\".\n", g.Winner())
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		switch cmd := strings.TrimSpace(scanner.Text()); cmd {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, playHelp)
		case "board":
			showBoard(out, g)
		case "history":
			fmt.Fprintln(out, formatHistory(g.SANHistory()))
		case "moves":
			fmt.Fprintln(out, formatMoves(playerMoves(g)))
		case "undo":
			undoTurn(g)
			showBoard(out, g)
		case "new":
			g.Reset()
			showBoard(out, g)
		default:
			if sq, ok := strings.CutPrefix(cmd, "moves "); ok {
				fmt.Fprintln(out, formatMoves(pieceMoves(g, sq)))
				continue
			}
			if _, err := g.PlayMove(cmd); err != nil {
				fmt.Fprintf(out, "%v\n", err)
			}
		}
	}
}

// undoTurn takes back moves until it is the player's turn again.
func undoTurn(g *game.Game) {
	g.Undo()
	if !g.IsPlayerTurn() {
		g.Undo()
	}
}

func playerMoves(g *game.Game) board.MoveList {
	if g.IsOver() || !g.IsPlayerTurn() {
		return nil
	}
	return g.Position().GenerateMoves()
}

// pieceMoves selects the player's piece on the named square and returns
// its moves.
func pieceMoves(g *game.Game, name string) board.MoveList {
	sq, err := board.ParseSquare(strings.TrimSpace(name))
	if err != nil || g.IsOver() || !g.IsPlayerTurn() {
		return nil
	}
	if g.Position().PieceAt(sq).Color() != g.PlayerColor() || !g.Select(sq) {
		return nil
	}
	_, moves := g.Selected()
	return moves
}

func formatMoves(moves board.MoveList) string {
	if len(moves) == 0 {
		return "no moves"
	}
	s := make([]string, len(moves))
	for i, m := range moves {
		s[i] = m.String()
	}
	return strings.Join(s, " ")
}

// formatHistory numbers the moves in pairs: "1. Nc3 b4 2. Nxd5".
func formatHistory(san []string) string {
	if len(san) == 0 {
		return "no moves"
	}
	var sb strings.Builder
	for i, s := range san {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		sb.WriteByte(' ')
		sb.WriteString(s)
	}
	return sb.String()
}

func showBoard(out io.Writer, g *game.Game) {
	fmt.Fprintln(out, g.Position().String())
}
