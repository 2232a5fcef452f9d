package board

// MoveFlags annotate how a move changes the board beyond sliding a piece
// from one square to another.
type MoveFlags uint8

const (
	FlagCapture MoveFlags = 1 << iota
	FlagEnPassant
	FlagCastleKingside
	FlagCastleQueenside
	FlagDoublePush
)

// Move is a move relative to the Position it was generated from.
// Comparable with ==.
type Move struct {
	From      Square
	To        Square
	Promotion Kind // NoKind unless the move promotes
	Flags     MoveFlags
}

// IsCapture reports whether the move captures a piece, including
// en-passant captures.
func (m Move) IsCapture() bool { return m.Flags&(FlagCapture|FlagEnPassant) != 0 }

// String returns the move in coordinate notation: origin square,
// destination square, and a lowercase promotion letter when promoting.
// Castling renders as the king move, e.g. "e1g1".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(m.Promotion.Letter())
	}
	return s
}
