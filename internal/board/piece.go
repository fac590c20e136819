package board

// Color represents the color of a piece or player.
// The value is the sign carried by that side's pieces.
type Color int8

const (
	Black   Color = -1
	NoColor Color = 0
	White   Color = 1
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return -c
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a piece.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// PieceValue returns the material value of each piece type in centipawns,
// indexed by PieceType.
var PieceValue = [7]int{0, 100, 500, 320, 330, 900, 20000}

// Piece is a signed piece code: the sign is the color and the magnitude
// is the PieceType. Zero is an empty square.
type Piece int8

const (
	Empty Piece = 0

	WhitePawn   Piece = Piece(Pawn)
	WhiteRook   Piece = Piece(Rook)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = -Piece(Pawn)
	BlackRook   Piece = -Piece(Rook)
	BlackKnight Piece = -Piece(Knight)
	BlackBishop Piece = -Piece(Bishop)
	BlackQueen  Piece = -Piece(Queen)
	BlackKing   Piece = -Piece(King)
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt <= NoPieceType || pt > King || c == NoColor {
		return Empty
	}
	return Piece(pt) * Piece(c)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	switch {
	case p > 0:
		return White
	case p < 0:
		return Black
	default:
		return NoColor
	}
}

// IsEmpty reports whether p is the empty code.
func (p Piece) IsEmpty() bool {
	return p == Empty
}

// IsValid reports whether p is empty or one of the twelve piece codes.
func (p Piece) IsValid() bool {
	return p >= BlackKing && p <= WhiteKing
}

// IsOpponent reports whether target is a piece of the other color.
func (p Piece) IsOpponent(target Piece) bool {
	return p != Empty && target != Empty && (p > 0) != (target > 0)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if !p.IsValid() || p == Empty {
		return "."
	}
	chars := " prnbqk"
	c := chars[p.Type()]
	if p > 0 {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return Empty
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	if !p.IsValid() {
		return 0
	}
	return PieceValue[p.Type()]
}
