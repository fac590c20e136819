package board

import (
	"fmt"
	"strings"
)

// pieceLetters is indexed by PieceType.
const pieceLetters = " PRNBQK"

// ToSAN converts a move to algebraic notation. A move that captures the
// king is marked '#', one that leaves the king en prise is marked '+'.
func (m Move) ToSAN(pos *Position) string {
	if m.IsNone() {
		return "-"
	}

	piece := pos.PieceAt(m.From)
	if piece == Empty {
		return m.String() // Fallback to coordinates
	}

	var sb strings.Builder
	pt := piece.Type()

	// Piece letter and disambiguation (not for pawns)
	if pt != Pawn {
		sb.WriteByte(pieceLetters[pt])
		sb.WriteString(disambiguation(pos, m, piece))
	}

	if !pos.IsEmpty(m.To) {
		if pt == Pawn {
			// Pawn captures include the file of origin
			sb.WriteByte('a' + byte(m.From.Col()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.Promotion {
		sb.WriteString("=Q")
	}

	if pos.PieceAt(m.To).Type() == King {
		sb.WriteByte('#')
	} else {
		next := pos.Copy()
		next.MakeMove(m)
		if threatensKing(next, piece.Color()) {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

// threatensKing reports whether color could capture the enemy king if it
// were color's turn in pos.
func threatensKing(pos *Position, color Color) bool {
	p := *pos
	p.SideToMove = color
	for _, m := range p.GenerateCaptures() {
		if m.Captured.Type() == King {
			return true
		}
	}
	return false
}

// disambiguation returns the origin file, rank or square needed when
// another piece of the same kind can reach the destination.
func disambiguation(pos *Position, m Move, piece Piece) string {
	var candidates []Square
	for _, other := range pos.GenerateMoves() {
		if other.To == m.To && other.From != m.From && other.Piece == piece {
			candidates = append(candidates, other.From)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.Col() == m.From.Col() {
			sameFile = true
		}
		if sq.Row() == m.From.Row() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.Col()))
	}
	if !sameRank {
		return string(rune('0' + Rows - m.From.Row()))
	}
	return m.From.String()
}

// ParseSAN parses algebraic notation against pos and returns the matching
// generated move.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#")

	promotion := false
	if strings.HasSuffix(s, "=Q") {
		promotion = true
		s = strings.TrimSuffix(s, "=Q")
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		idx := strings.IndexByte(pieceLetters, s[0])
		if idx <= int(Pawn) {
			return NoMove, fmt.Errorf("invalid piece letter in %q", orig)
		}
		pt = PieceType(idx)
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("missing destination in %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	// Disambiguation: file, rank or both
	col, row := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c < 'a'+Cols:
			col = int(c - 'a')
		case c >= '1' && c < '1'+Rows:
			row = Rows - int(c-'0')
		default:
			return NoMove, fmt.Errorf("invalid disambiguation in %q", orig)
		}
	}

	var matches MoveList
	for _, m := range pos.GenerateMoves() {
		if m.To != dest || m.Piece.Type() != pt {
			continue
		}
		if col >= 0 && m.From.Col() != col {
			continue
		}
		if row >= 0 && m.From.Row() != row {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if promotion && !m.Promotion {
			continue
		}
		matches = append(matches, m)
	}

	switch len(matches) {
	case 0:
		return NoMove, fmt.Errorf("no move matches %q", orig)
	case 1:
		return matches[0], nil
	default:
		return NoMove, fmt.Errorf("ambiguous move %q", orig)
	}
}

// MovesToSAN converts a sequence of moves played from pos to algebraic
// notation. pos is not modified.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}
