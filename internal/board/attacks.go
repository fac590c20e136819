package board

// direction is a (row, col) step.
type direction struct {
	dr, dc int
}

// Pre-computed destination tables for non-sliding pieces
var (
	knightTargets [NumSquares][]Square
	kingTargets   [NumSquares][]Square
)

var knightDeltas = [8]direction{
	{-2, -1}, {-2, +1},
	{-1, -2}, {-1, +2},
	{+1, -2}, {+1, +2},
	{+2, -1}, {+2, +1},
}

// Ray directions for sliding pieces.
var (
	diagonalDirs = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs    = append(append([]direction{}, diagonalDirs...), straightDirs...)
)

func init() {
	initKnightTargets()
	initKingTargets()
}

func initKnightTargets() {
	for sq := Square(0); sq < NoSquare; sq++ {
		for _, d := range knightDeltas {
			row, col := sq.Row()+d.dr, sq.Col()+d.dc
			if onBoard(row, col) {
				knightTargets[sq] = append(knightTargets[sq], NewSquare(row, col))
			}
		}
	}
}

func initKingTargets() {
	for sq := Square(0); sq < NoSquare; sq++ {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				row, col := sq.Row()+dr, sq.Col()+dc
				if onBoard(row, col) {
					kingTargets[sq] = append(kingTargets[sq], NewSquare(row, col))
				}
			}
		}
	}
}

// KnightTargets returns the squares a knight on sq can reach on an empty board.
func KnightTargets(sq Square) []Square {
	return knightTargets[sq]
}

// KingTargets returns the squares a king on sq can reach on an empty board.
func KingTargets(sq Square) []Square {
	return kingTargets[sq]
}
