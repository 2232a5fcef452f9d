// Package eval scores chess positions in centipawns from White's
// perspective. The score is material plus piece-square terms; it is
// fully deterministic, so search results are reproducible. Strength
// degradation happens in the search layer, never here.
package eval

import "github.com/discochess/woodpusher/internal/board"

// Material values in centipawns. The king carries no material value;
// king safety is a positional concern, not a material one.
var kindValues = [7]int{0, 100, 300, 300, 500, 900, 0}

// PieceValue returns the material value of a piece kind in centipawns.
func PieceValue(k board.Kind) int { return kindValues[k] }

// Evaluate returns the position's score in centipawns from White's
// perspective: positive favors White.
func Evaluate(p *board.Position) int {
	var score int
	for sq := board.Square(0); sq < 64; sq++ {
		pc := p.PieceAt(sq)
		if pc.IsEmpty() {
			continue
		}
		v := kindValues[pc.Kind()] + squareBonus(pc, sq)
		if pc.Color() == board.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// squareBonus returns the piece-square term for a piece on a square.
// Tables are stored from White's point of view with rank 8 first, so a
// white piece looks up its vertically mirrored square.
func squareBonus(pc board.Piece, sq board.Square) int {
	idx := sq
	if pc.Color() == board.White {
		idx ^= 56
	}
	return int(pieceSquare[pc.Kind()][idx])
}

// InsufficientMaterial reports whether neither side can possibly deliver
// mate: bare kings, a lone minor piece, or same-colored lone bishops.
func InsufficientMaterial(p *board.Position) bool {
	var minors int
	var bishopSquares []board.Square
	for sq := board.Square(0); sq < 64; sq++ {
		switch p.PieceAt(sq).Kind() {
		case board.NoKind, board.King:
		case board.Knight:
			minors++
		case board.Bishop:
			minors++
			bishopSquares = append(bishopSquares, sq)
		default:
			// Any pawn, rook or queen is mating material.
			return false
		}
	}
	if minors <= 1 {
		return true
	}
	if minors == 2 && len(bishopSquares) == 2 {
		a, b := bishopSquares[0], bishopSquares[1]
		sameColorSquares := (a.File()+a.Rank())%2 == (b.File()+b.Rank())%2
		differentSides := p.PieceAt(a).Color() != p.PieceAt(b).Color()
		return sameColorSquares && differentSides
	}
	return false
}
