package board

// Delta is a movement step in (file, rank) space.
type Delta struct{ File, Rank int }

// Movement tables. Order matters: the move generator relies on these to
// emit moves in a fixed order.
var (
	knightDeltas = [8]Delta{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingDeltas = [8]Delta{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
	bishopDeltas = [4]Delta{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDeltas   = [4]Delta{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	queenDeltas  = [8]Delta{
		{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
		{-1, 0}, {0, -1}, {0, 1}, {1, 0},
	}
)

// KnightDeltas returns the knight movement offsets in generation order.
func KnightDeltas() []Delta { return knightDeltas[:] }

// KingDeltas returns the king movement offsets in generation order.
func KingDeltas() []Delta { return kingDeltas[:] }

// SliderDeltas returns the movement directions for a sliding piece kind,
// or nil for non-sliders.
func SliderDeltas(k Kind) []Delta {
	switch k {
	case Bishop:
		return bishopDeltas[:]
	case Rook:
		return rookDeltas[:]
	case Queen:
		return queenDeltas[:]
	}
	return nil
}

// Step returns the square displaced from s by d, reporting false when it
// falls off the board.
func Step(s Square, d Delta) (Square, bool) {
	return offset(s, d.File, d.Rank)
}

// Attacked reports whether the square is attacked by any piece of the
// given color. The square itself may be empty or occupied by either side.
func (p *Position) Attacked(sq Square, by Color) bool {
	// Pawns. A white pawn attacks diagonally up-board, so a white
	// attacker of sq sits one rank below it.
	dr := -1
	if by == Black {
		dr = 1
	}
	pawn := NewPiece(by, Pawn)
	for _, df := range [2]int{-1, 1} {
		if t, ok := offset(sq, df, dr); ok && p.squares[t] == pawn {
			return true
		}
	}

	knight := NewPiece(by, Knight)
	for _, d := range knightDeltas {
		if t, ok := offset(sq, d.File, d.Rank); ok && p.squares[t] == knight {
			return true
		}
	}

	king := NewPiece(by, King)
	for _, d := range kingDeltas {
		if t, ok := offset(sq, d.File, d.Rank); ok && p.squares[t] == king {
			return true
		}
	}

	if p.slidingAttack(sq, by, bishopDeltas[:], Bishop) {
		return true
	}
	return p.slidingAttack(sq, by, rookDeltas[:], Rook)
}

// slidingAttack reports whether a slider of the given kind (or a queen)
// of color by reaches sq along any of the directions.
func (p *Position) slidingAttack(sq Square, by Color, dirs []Delta, kind Kind) bool {
	for _, d := range dirs {
		t, ok := offset(sq, d.File, d.Rank)
		for ok {
			pc := p.squares[t]
			if !pc.IsEmpty() {
				if pc.Color() == by && (pc.Kind() == kind || pc.Kind() == Queen) {
					return true
				}
				break
			}
			t, ok = offset(t, d.File, d.Rank)
		}
	}
	return false
}
