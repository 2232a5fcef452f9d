package board

import (
	"errors"
	"fmt"
)

// Square identifies one of the 64 board squares.
// A1 is 0, B1 is 1, and H8 is 63, so rank*8+file.
type Square uint8

// NoSquare is the sentinel for "no square", used for an absent
// en-passant target.
const NoSquare Square = 64

// SquareAt returns the square at the given file and rank, both 0-7.
func SquareAt(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the square's file, 0 (a-file) through 7 (h-file).
func (s Square) File() int { return int(s & 7) }

// Rank returns the square's rank, 0 (rank 1) through 7 (rank 8).
func (s Square) Rank() int { return int(s >> 3) }

// String returns the square in algebraic notation, e.g. "e4".
// NoSquare renders as "-".
func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ErrInvalidSquare indicates a malformed algebraic square name.
var ErrInvalidSquare = errors.New("board: invalid square")

// ParseSquare parses algebraic notation like "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), nil
}

// offset returns the square displaced by df files and dr ranks,
// reporting false when the result falls off the board.
func offset(s Square, df, dr int) (Square, bool) {
	f := s.File() + df
	r := s.Rank() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return SquareAt(f, r), true
}
