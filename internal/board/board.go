// Package board implements the chess position value type: FEN parsing and
// serialization, move application, and attack detection. A Position is a
// plain value; Apply returns a new Position and never mutates the receiver,
// so positions can be copied freely across searches.
package board

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

// String returns "w" or "b".
func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Kind is a piece type without color.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [7]byte{0, 'p', 'n', 'b', 'r', 'q', 'k'}

// Letter returns the lowercase piece letter, e.g. 'q' for Queen.
func (k Kind) Letter() byte { return kindLetters[k] }

// Piece is an optional (color, kind) pair packed into one byte.
// The zero value is an empty square.
type Piece uint8

// Empty is the absence of a piece.
const Empty Piece = 0

// NewPiece packs a color and kind into a Piece.
func NewPiece(c Color, k Kind) Piece {
	return Piece(k) | Piece(c)<<3
}

// Kind returns the piece type.
func (p Piece) Kind() Kind { return Kind(p & 7) }

// Color returns the piece color. Meaningless for Empty.
func (p Piece) Color() Color { return Color(p >> 3) }

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool { return p == Empty }

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black, 0 for Empty.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return 0
	}
	b := kindLetters[p.Kind()]
	if p.Color() == White {
		return b - 'a' + 'A'
	}
	return b
}

// pieceFromLetter maps a FEN piece letter to a Piece, returning Empty for
// anything that is not one of pnbrqkPNBRQK.
func pieceFromLetter(b byte) Piece {
	color := Black
	if b >= 'A' && b <= 'Z' {
		color = White
		b += 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if kindLetters[k] == b {
			return NewPiece(color, k)
		}
	}
	return Empty
}

// CastleRights is the set of the four castling permissions.
type CastleRights uint8

const (
	WhiteKingside CastleRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

// Has reports whether every right in r2 is present in r.
func (r CastleRights) Has(r2 CastleRights) bool { return r&r2 == r2 }

// String returns the FEN castling field, "-" when no rights remain.
func (r CastleRights) String() string {
	if r == 0 {
		return "-"
	}
	var b []byte
	if r.Has(WhiteKingside) {
		b = append(b, 'K')
	}
	if r.Has(WhiteQueenside) {
		b = append(b, 'Q')
	}
	if r.Has(BlackKingside) {
		b = append(b, 'k')
	}
	if r.Has(BlackQueenside) {
		b = append(b, 'q')
	}
	return string(b)
}

// Position is a complete board state. It is an immutable value type:
// all methods are read-only and Apply returns a fresh Position.
//
// Positions produced by ParseFEN and Apply are internally consistent.
// The package does not re-validate positions assembled by other means;
// feeding it a board with, say, two same-colored kings is caller misuse.
type Position struct {
	squares   [64]Piece
	stm       Color
	rights    CastleRights
	enPassant Square // NoSquare when absent
	halfmove  int
	fullmove  int
	kings     [2]Square // king square per color, NoSquare if missing
	hash      uint64
}

// PieceAt returns the piece on the given square.
func (p *Position) PieceAt(s Square) Piece { return p.squares[s] }

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.stm }

// CastlingRights returns the remaining castling permissions.
func (p *Position) CastlingRights() CastleRights { return p.rights }

// EnPassantTarget returns the en-passant target square, if any.
func (p *Position) EnPassantTarget() (Square, bool) {
	return p.enPassant, p.enPassant != NoSquare
}

// HalfmoveClock returns the number of half-moves since the last capture
// or pawn move.
func (p *Position) HalfmoveClock() int { return p.halfmove }

// FullmoveNumber returns the full-move counter, starting at 1.
func (p *Position) FullmoveNumber() int { return p.fullmove }

// KingSquare returns the square of c's king, or NoSquare when the
// position has no such king.
func (p *Position) KingSquare(c Color) Square { return p.kings[c] }

// Hash returns the position's Zobrist key.
func (p *Position) Hash() uint64 { return p.hash }

// InCheck reports whether c's king is attacked by the opposing side.
// A position without a c king is never in check.
func (p *Position) InCheck(c Color) bool {
	ks := p.kings[c]
	if ks == NoSquare {
		return false
	}
	return p.Attacked(ks, c.Other())
}
