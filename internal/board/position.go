package board

import (
	"fmt"
	"strings"
)

// TotalPieceCount is the number of pieces in the starting setup.
const TotalPieceCount = 20

// Position represents a complete game position.
//
// A Position is mutated in place by MakeMove/UndoMove pairs, which must be
// strictly nested. It is not safe for concurrent use; callers that search
// in parallel work on their own Copy.
type Position struct {
	// Board in White's orientation, indexed by Square.
	Board [NumSquares]Piece

	SideToMove Color

	// History is the stack of applied moves, used for undo and for
	// checkmate detection.
	History []Move

	// Zobrist hash, maintained incrementally.
	Hash uint64
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates a deep copy of the position, including its history.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.History = make([]Move, len(p.History), cap(p.History))
	copy(newPos.History, p.History)
	return &newPos
}

// PieceAt returns the piece at the given square, or Empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Board[sq] == Empty
}

// LastMove returns the most recently applied move.
func (p *Position) LastMove() (Move, bool) {
	if len(p.History) == 0 {
		return NoMove, false
	}
	return p.History[len(p.History)-1], true
}

// PieceCount returns the number of pieces on the board.
func (p *Position) PieceCount() int {
	n := 0
	for _, piece := range p.Board {
		if piece != Empty {
			n++
		}
	}
	return n
}

// ComputeHash computes the Zobrist hash from scratch.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for sq, piece := range p.Board {
		if piece != Empty {
			hash ^= ZobristPiece(piece, Square(sq))
		}
	}

	if p.SideToMove == White {
		hash ^= zobristWhiteToMove
	}

	return hash
}

// CreateMove builds the move record for moving the piece on from to to,
// using the current board contents.
func (p *Position) CreateMove(from, to Square) Move {
	piece := p.Board[from]
	promotion := false
	if piece.Type() == Pawn {
		promotion = (piece == WhitePawn && to.Row() == 0) ||
			(piece == BlackPawn && to.Row() == Rows-1)
	}
	return NewMove(from, to, piece, p.Board[to], promotion)
}

// MakeMove applies a move and updates the hash incrementally.
func (p *Position) MakeMove(m Move) {
	placed := m.PlacedPiece()

	p.Hash ^= ZobristPiece(m.Piece, m.From)
	if m.Captured != Empty {
		p.Hash ^= ZobristPiece(m.Captured, m.To)
	}
	p.Hash ^= ZobristPiece(placed, m.To)
	p.Hash ^= zobristWhiteToMove

	p.Board[m.To] = placed
	p.Board[m.From] = Empty

	p.History = append(p.History, m)
	p.SideToMove = p.SideToMove.Other()
}

// UndoMove takes back the last move. It is a no-op on an empty history.
func (p *Position) UndoMove() {
	if len(p.History) == 0 {
		return
	}

	m := p.History[len(p.History)-1]
	p.History = p.History[:len(p.History)-1]

	// The destination may hold a promoted queen rather than m.Piece.
	p.Hash ^= ZobristPiece(p.Board[m.To], m.To)
	p.Hash ^= ZobristPiece(m.Piece, m.From)
	if m.Captured != Empty {
		p.Hash ^= ZobristPiece(m.Captured, m.To)
	}
	p.Hash ^= zobristWhiteToMove

	p.Board[m.From] = m.Piece
	p.Board[m.To] = m.Captured

	p.SideToMove = p.SideToMove.Other()
}

// IsCheckmate reports whether the last applied move captured a king.
// There is no check-evasion filter, so a king capture is the only
// terminal signal.
func (p *Position) IsCheckmate() bool {
	last, ok := p.LastMove()
	if !ok {
		return false
	}
	return last.Captured.Type() == King
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < Rows; row++ {
		fmt.Fprintf(&sb, "%d  ", Rows-row)
		for col := 0; col < Cols; col++ {
			sb.WriteString(p.Board[NewSquare(row, col)].String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash)
	return sb.String()
}

// Validate checks that the board holds only known piece codes and that no
// pawn stands on its promotion rank.
func (p *Position) Validate() error {
	for sq, piece := range p.Board {
		if !piece.IsValid() {
			return fmt.Errorf("invalid piece code %d on %s", piece, Square(sq))
		}
		if piece == WhitePawn && Square(sq).Row() == 0 {
			return fmt.Errorf("white pawn on promotion rank at %s", Square(sq))
		}
		if piece == BlackPawn && Square(sq).Row() == Rows-1 {
			return fmt.Errorf("black pawn on promotion rank at %s", Square(sq))
		}
	}
	if p.SideToMove != White && p.SideToMove != Black {
		return fmt.Errorf("invalid side to move: %d", p.SideToMove)
	}
	return nil
}

// Material returns the material balance (positive favors White).
func (p *Position) Material() int {
	score := 0
	for _, piece := range p.Board {
		if piece != Empty {
			score += int(piece.Color()) * piece.Value()
		}
	}
	return score
}
