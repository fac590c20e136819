package board

import "fmt"

// Move describes a single ply. It is immutable once generated and carries
// enough information to be undone without consulting the board.
type Move struct {
	From      Square
	To        Square
	Piece     Piece // moved piece, before any promotion
	Captured  Piece // Empty when nothing is captured
	Promotion bool  // pawn reaches the far rank and becomes a queen
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move record.
func NewMove(from, to Square, piece, captured Piece, promotion bool) Move {
	return Move{
		From:      from,
		To:        to,
		Piece:     piece,
		Captured:  captured,
		Promotion: promotion,
	}
}

// Equal reports whether two moves connect the same squares.
// Metadata (pieces, promotion) is ignored.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// IsNone returns true for NoMove.
func (m Move) IsNone() bool {
	return m.From == NoSquare || m.To == NoSquare
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

// PlacedPiece returns the piece that stands on the destination after the move.
func (m Move) PlacedPiece() Piece {
	if m.Promotion {
		return NewPiece(Queen, m.Piece.Color())
	}
	return m.Piece
}

// String returns coordinate notation (e.g., "b2b3", "a5a6q").
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.Promotion {
		s += "q"
	}
	return s
}

// Describe returns a human readable description of the move.
func (m Move) Describe() string {
	captured := "no capture"
	if m.IsCapture() {
		captured = "captured " + m.Captured.Type().String()
	}
	promoted := ""
	if m.Promotion {
		promoted = " and promoted to Queen"
	}
	return fmt.Sprintf("%s %s from %s to %s, %s%s",
		m.Piece.Color(), m.Piece.Type(), m.From, m.To, captured, promoted)
}

// ParseMove parses coordinate notation against the current position and
// fills in the moved piece, capture and promotion flag.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 && s[4] != 'q' {
		return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
	}

	if pos.PieceAt(from) == Empty {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	return pos.CreateMove(from, to), nil
}

// MoveList is a list of moves in generation order.
type MoveList []Move

// Contains returns true if the list contains a move between the same squares.
func (ml MoveList) Contains(m Move) bool {
	for _, o := range ml {
		if o.Equal(m) {
			return true
		}
	}
	return false
}

// Find returns the listed move between from and to.
func (ml MoveList) Find(from, to Square) (Move, bool) {
	for _, m := range ml {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return NoMove, false
}
