// Package game drives a human-versus-engine game of 6x5 chess.
package game

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/engine"
)

// Errors returned by Game.
var (
	ErrNotPlayerTurn = errors.New("not the player's turn")
	ErrNotEngineTurn = errors.New("not the engine's turn")
	ErrGameOver      = errors.New("game is over")
	ErrIllegalMove   = errors.New("illegal move")
)

// Game holds the position, the engine opponent and the current selection.
type Game struct {
	position    *board.Position
	sanHistory  []string
	engine      *engine.Engine
	playerColor board.Color // Which color the human plays

	// Selection state
	selectedSquare board.Square
	validMoves     board.MoveList

	log zerolog.Logger
}

// New creates a game from the starting position. The human plays the
// opposite color of eng; eng may be nil for a game without an engine, in
// which case the human plays White.
func New(eng *engine.Engine, log zerolog.Logger) *Game {
	playerColor := board.White
	if eng != nil {
		playerColor = eng.Color().Other()
	}
	return &Game{
		position:       board.NewPosition(),
		engine:         eng,
		playerColor:    playerColor,
		selectedSquare: board.NoSquare,
		log:            log,
	}
}

// Position returns the live position. Callers must not modify it.
func (g *Game) Position() *board.Position {
	return g.position
}

// Board returns a copy of the board array.
func (g *Game) Board() [board.NumSquares]board.Piece {
	return g.position.Board
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color {
	return g.position.SideToMove
}

// PlayerColor returns the human's color.
func (g *Game) PlayerColor() board.Color {
	return g.playerColor
}

// IsPlayerTurn returns true if the human is to move.
func (g *Game) IsPlayerTurn() bool {
	return g.position.SideToMove == g.playerColor
}

// History returns the moves played so far.
func (g *Game) History() []board.Move {
	return g.position.History
}

// SANHistory returns the moves played so far in algebraic notation.
func (g *Game) SANHistory() []string {
	return g.sanHistory
}

// LastMove returns the most recent move.
func (g *Game) LastMove() (board.Move, bool) {
	return g.position.LastMove()
}

// Selected returns the selected square and its moves.
func (g *Game) Selected() (board.Square, board.MoveList) {
	return g.selectedSquare, g.validMoves
}

// Select selects the piece on sq and records its moves. It returns false,
// clearing the selection, if the piece has no moves.
func (g *Game) Select(sq board.Square) bool {
	g.selectedSquare = sq
	g.validMoves = g.position.GeneratePieceMoves(sq)
	if len(g.validMoves) == 0 {
		g.clearSelection()
		return false
	}
	return true
}

// Apply moves the selected piece to to. The move is played only if it is
// one of the selected piece's moves. The selection is cleared either way.
func (g *Game) Apply(to board.Square) bool {
	from, moves := g.selectedSquare, g.validMoves
	g.clearSelection()

	if from == board.NoSquare {
		return false
	}
	m := g.position.CreateMove(from, to)
	if !moves.Contains(m) {
		g.log.Debug().Str("move", m.String()).Msg("rejected move")
		return false
	}

	g.makeMove(m)
	return true
}

// PlayMove plays a move for the human, in coordinate notation ("b2b3") or
// algebraic notation ("b3", "Nxd5").
func (g *Game) PlayMove(s string) (board.Move, error) {
	if g.IsOver() {
		return board.NoMove, ErrGameOver
	}
	if g.engine != nil && !g.IsPlayerTurn() {
		return board.NoMove, ErrNotPlayerTurn
	}

	m, err := board.ParseMove(s, g.position)
	if err != nil {
		san, sanErr := board.ParseSAN(s, g.position)
		if sanErr != nil {
			return board.NoMove, errors.Wrapf(err, "parse %q", s)
		}
		m = san
	}
	if !g.Select(m.From) || !g.Apply(m.To) {
		return board.NoMove, errors.Wrapf(ErrIllegalMove, "%s", m)
	}
	return m, nil
}

// PlayEngineMove lets the engine search a copy of the position and plays
// its choice. It returns false if the engine has no move.
func (g *Game) PlayEngineMove() (board.Move, bool, error) {
	if g.engine == nil || g.position.SideToMove != g.engine.Color() {
		return board.NoMove, false, ErrNotEngineTurn
	}
	if g.IsOver() {
		return board.NoMove, false, ErrGameOver
	}

	m, ok := g.engine.ChooseMove(g.position.Copy())
	if !ok {
		g.log.Info().Msg("engine has no move")
		return board.NoMove, false, nil
	}

	stats := g.engine.Stats()
	g.log.Info().
		Str("move", m.String()).
		Str("eval", engine.ScoreToString(stats.Evaluation)).
		Uint64("nodes", stats.Nodes).
		Uint64("qnodes", stats.QNodes).
		Msg("engine move")

	g.makeMove(m)
	return m, true, nil
}

// Undo takes back the last move.
func (g *Game) Undo() {
	g.clearSelection()
	if len(g.position.History) == 0 {
		return
	}
	g.position.UndoMove()
	g.sanHistory = g.sanHistory[:len(g.sanHistory)-1]
}

// IsOver returns true once a king has been captured.
func (g *Game) IsOver() bool {
	return g.position.IsCheckmate()
}

// Winner returns the side that captured the king, or NoColor while the
// game is running.
func (g *Game) Winner() board.Color {
	if !g.IsOver() {
		return board.NoColor
	}
	return g.position.SideToMove.Other()
}

// Reset returns to the starting position.
func (g *Game) Reset() {
	g.position = board.NewPosition()
	g.sanHistory = nil
	g.clearSelection()
	if g.engine != nil {
		g.engine.Clear()
	}
}

func (g *Game) makeMove(m board.Move) {
	san := m.ToSAN(g.position)
	g.sanHistory = append(g.sanHistory, san)

	g.position.MakeMove(m)
	g.log.Debug().Str("move", san).Str("fen", g.position.FEN()).Msg("move made")

	if g.IsOver() {
		g.log.Info().Str("winner", g.Winner().String()).Int("plies", len(g.position.History)).Msg("checkmate")
	}
}

func (g *Game) clearSelection() {
	g.selectedSquare = board.NoSquare
	g.validMoves = nil
}
