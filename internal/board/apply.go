package board

// rightsLost maps a square to the castling rights that disappear when a
// piece moves from or is captured on it.
var rightsLost = func() [64]CastleRights {
	var t [64]CastleRights
	t[SquareAt(0, 0)] = WhiteQueenside                 // a1
	t[SquareAt(7, 0)] = WhiteKingside                  // h1
	t[SquareAt(4, 0)] = WhiteKingside | WhiteQueenside // e1
	t[SquareAt(0, 7)] = BlackQueenside                 // a8
	t[SquareAt(7, 7)] = BlackKingside                  // h8
	t[SquareAt(4, 7)] = BlackKingside | BlackQueenside // e8
	return t
}()

// Apply plays the move and returns the resulting position. The receiver
// is left untouched.
//
// Apply is total for any move produced by the generator for this exact
// position. Behavior for any other move is undefined; it does not
// re-validate.
func (p Position) Apply(m Move) Position {
	next := p
	moved := next.squares[m.From]
	captured := next.squares[m.To]

	if moved.Kind() == Pawn || !captured.IsEmpty() || m.Flags&FlagEnPassant != 0 {
		next.halfmove = 0
	} else {
		next.halfmove++
	}

	next.squares[m.From] = Empty
	placed := moved
	if m.Promotion != NoKind {
		placed = NewPiece(moved.Color(), m.Promotion)
	}
	next.squares[m.To] = placed

	next.enPassant = NoSquare
	switch {
	case m.Flags&FlagEnPassant != 0:
		// The captured pawn sits beside the origin on the destination file.
		next.squares[SquareAt(m.To.File(), m.From.Rank())] = Empty
	case m.Flags&FlagCastleKingside != 0:
		rank := m.From.Rank()
		next.squares[SquareAt(5, rank)] = next.squares[SquareAt(7, rank)]
		next.squares[SquareAt(7, rank)] = Empty
	case m.Flags&FlagCastleQueenside != 0:
		rank := m.From.Rank()
		next.squares[SquareAt(3, rank)] = next.squares[SquareAt(0, rank)]
		next.squares[SquareAt(0, rank)] = Empty
	case m.Flags&FlagDoublePush != 0:
		next.enPassant = SquareAt(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if moved.Kind() == King {
		next.kings[moved.Color()] = m.To
	}
	next.rights &^= rightsLost[m.From] | rightsLost[m.To]

	if next.stm == Black {
		next.fullmove++
	}
	next.stm = next.stm.Other()
	next.hash = computeHash(&next)
	return next
}
