package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece       [13][NumSquares]uint64 // [Piece+6][Square]
	zobristWhiteToMove uint64                 // XOR when white to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x6A09E667F3BCC909)

	// The empty row (index 6) is filled too, it is never XORed in.
	for i := range zobristPiece {
		for sq := range zobristPiece[i] {
			zobristPiece[i][sq] = rng.next()
		}
	}

	zobristWhiteToMove = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(p Piece, sq Square) uint64 {
	return zobristPiece[int(p)+6][sq]
}
