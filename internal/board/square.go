// Package board implements the 6x5 board, moves, hashing and move generation.
package board

import "fmt"

// Board dimensions.
const (
	Rows       = 6
	Cols       = 5
	NumSquares = Rows * Cols
)

// Square represents a square on the board (0-29).
// Squares are numbered row-major in White's orientation: row 0 is Black's
// back rank, so A6=0, E6=4, A1=25, E1=29.
type Square uint8

// Square constants for all 30 squares.
const (
	A6 Square = iota
	B6
	C6
	D6
	E6
	A5
	B5
	C5
	D5
	E5
	A4
	B4
	C4
	D4
	E4
	A3
	B3
	C3
	D3
	E3
	A2
	B2
	C2
	D2
	E2
	A1
	B1
	C1
	D1
	E1
	NoSquare Square = NumSquares
)

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square(row*Cols + col)
}

// Row returns the board row (0 = Black's back rank).
func (sq Square) Row() int {
	return int(sq) / Cols
}

// Col returns the board column (0 = file a).
func (sq Square) Col() int {
	return int(sq) % Cols
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "c3").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col(), '0'+Rows-sq.Row())
}

// onBoard reports whether (row, col) lies on the board.
func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// ParseSquare parses algebraic notation (e.g., "c3") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if col < 0 || col >= Cols || rank < 0 || rank >= Rows {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(Rows-1-rank, col), nil
}
