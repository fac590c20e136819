package board

import "fmt"

// GenerateMoves generates all pseudo-legal moves for the side to move.
// Moves that leave the king attacked are included; a king left en prise
// is simply captured on the next ply.
func (p *Position) GenerateMoves() MoveList {
	ml := make(MoveList, 0, 32)
	for sq := Square(0); sq < NoSquare; sq++ {
		if p.Board[sq].Color() == p.SideToMove {
			ml = p.appendPieceMoves(ml, sq)
		}
	}
	return ml
}

// GenerateCaptures generates all capture moves for the side to move.
func (p *Position) GenerateCaptures() MoveList {
	all := p.GenerateMoves()
	ml := all[:0]
	for _, m := range all {
		if m.IsCapture() {
			ml = append(ml, m)
		}
	}
	return ml
}

// GeneratePieceMoves generates the moves of the piece on sq. It returns an
// empty list if sq does not hold a piece of the side to move.
func (p *Position) GeneratePieceMoves(sq Square) MoveList {
	if !sq.IsValid() || p.Board[sq].Color() != p.SideToMove {
		return nil
	}
	return p.appendPieceMoves(nil, sq)
}

// appendPieceMoves dispatches on the piece type on from.
func (p *Position) appendPieceMoves(ml MoveList, from Square) MoveList {
	piece := p.Board[from]

	switch piece.Type() {
	case Pawn:
		return p.appendPawnMoves(ml, from, piece)
	case Knight:
		return p.appendLeaperMoves(ml, from, piece, KnightTargets(from))
	case Bishop:
		return p.appendSliderMoves(ml, from, piece, diagonalDirs)
	case Rook:
		return p.appendSliderMoves(ml, from, piece, straightDirs)
	case Queen:
		return p.appendSliderMoves(ml, from, piece, queenDirs)
	case King:
		return p.appendLeaperMoves(ml, from, piece, KingTargets(from))
	case NoPieceType:
		return ml
	default:
		panic(fmt.Sprintf("board: invalid piece code %d on %s", piece, from))
	}
}

// appendPawnMoves generates single pushes and diagonal captures.
// White pawns move toward row 0, Black pawns toward the last row.
func (p *Position) appendPawnMoves(ml MoveList, from Square, piece Piece) MoveList {
	dir, lastRow := -1, 0
	if piece.Color() == Black {
		dir, lastRow = 1, Rows-1
	}

	row := from.Row() + dir
	if row < 0 || row >= Rows {
		return ml
	}
	promotion := row == lastRow

	// Forward push onto an empty square
	to := NewSquare(row, from.Col())
	if p.Board[to] == Empty {
		ml = append(ml, NewMove(from, to, piece, Empty, promotion))
	}

	// Diagonal captures
	for _, dc := range [2]int{-1, 1} {
		col := from.Col() + dc
		if !onBoard(row, col) {
			continue
		}
		to := NewSquare(row, col)
		if target := p.Board[to]; piece.IsOpponent(target) {
			ml = append(ml, NewMove(from, to, piece, target, promotion))
		}
	}

	return ml
}

// appendLeaperMoves generates knight and king moves from a target table.
func (p *Position) appendLeaperMoves(ml MoveList, from Square, piece Piece, targets []Square) MoveList {
	for _, to := range targets {
		target := p.Board[to]
		if target == Empty || piece.IsOpponent(target) {
			ml = append(ml, NewMove(from, to, piece, target, false))
		}
	}
	return ml
}

// appendSliderMoves casts rays until the edge, a friendly piece
// (exclusive) or an opponent piece (inclusive, as a capture).
func (p *Position) appendSliderMoves(ml MoveList, from Square, piece Piece, dirs []direction) MoveList {
	for _, d := range dirs {
		row, col := from.Row(), from.Col()
		for {
			row += d.dr
			col += d.dc
			if !onBoard(row, col) {
				break
			}

			to := NewSquare(row, col)
			target := p.Board[to]

			if target == Empty {
				ml = append(ml, NewMove(from, to, piece, Empty, false))
				continue
			}
			if piece.IsOpponent(target) {
				ml = append(ml, NewMove(from, to, piece, target, false))
			}
			break
		}
	}
	return ml
}
