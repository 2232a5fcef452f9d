package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN indicates a malformed FEN string.
var ErrInvalidFEN = errors.New("board: invalid FEN")

// ParseFEN parses a FEN string into a Position.
//
// The first four fields (placement, side to move, castling, en passant)
// are required; the halfmove clock and fullmove number may be omitted,
// as is common in database and GUI output, and default to 0 and 1.
//
// Board geometry and field syntax are validated. Piece counts are not:
// legal-shaped but unreachable positions parse fine, since an engine has
// to tolerate arbitrary caller-supplied boards.
func ParseFEN(fen string) (Position, error) {
	var p Position
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return p, fmt.Errorf("%w: want at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}

	p.kings = [2]Square{NoSquare, NoSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return p, fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for r, rankStr := range ranks {
		rank := 7 - r // FEN lists rank 8 first
		file := 0
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := pieceFromLetter(ch)
			if pc.IsEmpty() {
				return p, fmt.Errorf("%w: bad piece letter %q", ErrInvalidFEN, ch)
			}
			if file > 7 {
				return p, fmt.Errorf("%w: rank %d overflows 8 files", ErrInvalidFEN, rank+1)
			}
			sq := SquareAt(file, rank)
			p.squares[sq] = pc
			if pc.Kind() == King {
				p.kings[pc.Color()] = sq
			}
			file++
		}
		if file != 8 {
			return p, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		p.stm = White
	case "b":
		p.stm = Black
	default:
		return p, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	rights, err := parseCastling(fields[2])
	if err != nil {
		return p, err
	}
	p.rights = rights

	p.enPassant = NoSquare
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil || (sq.Rank() != 2 && sq.Rank() != 5) {
			return p, fmt.Errorf("%w: bad en-passant square %q", ErrInvalidFEN, fields[3])
		}
		p.enPassant = sq
	}

	p.fullmove = 1
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return p, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		p.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return p, fmt.Errorf("%w: bad fullmove number %q", ErrInvalidFEN, fields[5])
		}
		p.fullmove = n
	}

	p.hash = computeHash(&p)
	return p, nil
}

func parseCastling(s string) (CastleRights, error) {
	if s == "-" {
		return 0, nil
	}
	var rights CastleRights
	for i := 0; i < len(s); i++ {
		var flag CastleRights
		switch s[i] {
		case 'K':
			flag = WhiteKingside
		case 'Q':
			flag = WhiteQueenside
		case 'k':
			flag = BlackKingside
		case 'q':
			flag = BlackQueenside
		default:
			return 0, fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, s)
		}
		if rights.Has(flag) {
			return 0, fmt.Errorf("%w: duplicate castling flag in %q", ErrInvalidFEN, s)
		}
		rights |= flag
	}
	return rights, nil
}

// FEN serializes the position as a full six-field FEN string.
func (p *Position) FEN() string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.squares[SquareAt(file, rank)]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(pc.Letter())
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	fmt.Fprintf(&b, " %s %s %s %d %d",
		p.stm, p.rights, p.enPassant, p.halfmove, p.fullmove)
	return b.String()
}
