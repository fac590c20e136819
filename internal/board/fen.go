package board

import (
	"fmt"
	"strings"
)

// StartFEN is the FEN-style string for the 6x5 starting position.
// Ranks are listed from rank 6 (Black's back rank) down to rank 1.
const StartFEN = "rnbqk/ppppp/5/5/PPPPP/RNBQK w"

// ParseFEN parses a 6x5 FEN string and returns a Position.
// The side-to-move field is optional and defaults to White. Positions that
// fail Validate are rejected.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 || len(parts) > 2 {
		return nil, fmt.Errorf("invalid FEN: need 1 or 2 fields, got %d", len(parts))
	}

	pos := &Position{SideToMove: White}

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			pos.SideToMove = White
		case "b":
			pos.SideToMove = Black
		default:
			return nil, fmt.Errorf("invalid side to move: %s", parts[1])
		}
	}

	if err := pos.Validate(); err != nil {
		return nil, err
	}
	pos.Hash = pos.ComputeHash()

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != Rows {
		return fmt.Errorf("invalid piece placement: need %d ranks, got %d", Rows, len(rows))
	}

	for row, rowStr := range rows {
		col := 0

		for _, c := range rowStr {
			if col >= Cols {
				return fmt.Errorf("too many squares in rank %d", Rows-row)
			}

			if c >= '1' && c <= '0'+Cols {
				// Skip empty squares
				col += int(c - '0')
			} else {
				// Place a piece
				piece := PieceFromChar(byte(c))
				if piece == Empty {
					return fmt.Errorf("invalid piece character: %c", c)
				}
				pos.Board[NewSquare(row, col)] = piece
				col++
			}
		}

		if col != Cols {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", Rows-row, col)
		}
	}

	return nil
}

// FEN returns the FEN-style string for the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	for row := 0; row < Rows; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Cols; col++ {
			piece := p.Board[NewSquare(row, col)]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	if p.SideToMove == Black {
		sb.WriteString(" b")
	} else {
		sb.WriteString(" w")
	}

	return sb.String()
}
