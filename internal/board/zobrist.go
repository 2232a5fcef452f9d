package board

import "math/rand/v2"

// Zobrist keys. Generated from a fixed-seed PRNG so hashes are stable
// across runs, which keeps transposition-table behavior reproducible.
var (
	zobristPieces    [16][64]uint64 // indexed by Piece, rows for Empty stay zero
	zobristCastling  [16]uint64     // indexed by CastleRights
	zobristEnPassant [8]uint64      // indexed by file
	zobristBlackMove uint64
)

func init() {
	rng := rand.New(rand.NewPCG(0x9e3779b97f4a7c15, 0x736f6d6570736575))
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			p := NewPiece(c, k)
			for sq := 0; sq < 64; sq++ {
				zobristPieces[p][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristBlackMove = rng.Uint64()
}

// computeHash returns the Zobrist key for the position. Apply and
// ParseFEN call it after assembling the board; a full recomputation is
// cheap at this board representation's scale and avoids incremental
// update edge cases around castling rights and en-passant.
func computeHash(p *Position) uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if pc := p.squares[sq]; !pc.IsEmpty() {
			h ^= zobristPieces[pc][sq]
		}
	}
	h ^= zobristCastling[p.rights]
	if p.enPassant != NoSquare {
		h ^= zobristEnPassant[p.enPassant.File()]
	}
	if p.stm == Black {
		h ^= zobristBlackMove
	}
	return h
}
