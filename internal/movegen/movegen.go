// Package movegen enumerates legal chess moves for a position.
//
// Generation is deterministic: pseudo-legal moves come out in ascending
// origin-square order with fixed per-piece direction tables and a fixed
// promotion order, then a simulate-and-test filter drops every move that
// would leave the mover's own king attacked. Identical positions always
// produce identical move sequences, which search and tests rely on.
package movegen

import "github.com/discochess/woodpusher/internal/board"

// promotionKinds is the fixed order promotions are generated in.
var promotionKinds = [4]board.Kind{board.Queen, board.Rook, board.Bishop, board.Knight}

// Legal returns every legal move for the side to move. An empty slice
// means checkmate when the side to move is in check, stalemate otherwise.
func Legal(p *board.Position) []board.Move {
	pseudo := pseudoLegal(p)
	stm := p.SideToMove()
	legal := pseudo[:0]
	for _, m := range pseudo {
		next := p.Apply(m)
		if !next.InCheck(stm) {
			legal = append(legal, m)
		}
	}
	return legal
}

// pseudoLegal generates moves obeying piece movement rules without the
// king-safety filter.
func pseudoLegal(p *board.Position) []board.Move {
	stm := p.SideToMove()
	moves := make([]board.Move, 0, 48)
	for sq := board.Square(0); sq < 64; sq++ {
		pc := p.PieceAt(sq)
		if pc.IsEmpty() || pc.Color() != stm {
			continue
		}
		switch pc.Kind() {
		case board.Pawn:
			moves = pawnMoves(p, sq, moves)
		case board.Knight:
			moves = leaperMoves(p, sq, board.KnightDeltas(), moves)
		case board.Bishop, board.Rook, board.Queen:
			moves = sliderMoves(p, sq, board.SliderDeltas(pc.Kind()), moves)
		case board.King:
			moves = leaperMoves(p, sq, board.KingDeltas(), moves)
			moves = castleMoves(p, sq, moves)
		}
	}
	return moves
}

func pawnMoves(p *board.Position, from board.Square, moves []board.Move) []board.Move {
	stm := p.SideToMove()
	dir, startRank, promoRank := 1, 1, 7
	if stm == board.Black {
		dir, startRank, promoRank = -1, 6, 0
	}

	if to, ok := board.Step(from, board.Delta{File: 0, Rank: dir}); ok && p.PieceAt(to).IsEmpty() {
		moves = appendPawnMove(moves, from, to, 0, promoRank)
		if from.Rank() == startRank {
			if to2, ok := board.Step(to, board.Delta{File: 0, Rank: dir}); ok && p.PieceAt(to2).IsEmpty() {
				moves = append(moves, board.Move{From: from, To: to2, Flags: board.FlagDoublePush})
			}
		}
	}

	ep, hasEP := p.EnPassantTarget()
	for _, df := range [2]int{-1, 1} {
		to, ok := board.Step(from, board.Delta{File: df, Rank: dir})
		if !ok {
			continue
		}
		target := p.PieceAt(to)
		switch {
		case !target.IsEmpty() && target.Color() != stm:
			moves = appendPawnMove(moves, from, to, board.FlagCapture, promoRank)
		case hasEP && to == ep:
			moves = append(moves, board.Move{From: from, To: to, Flags: board.FlagEnPassant})
		}
	}
	return moves
}

// appendPawnMove appends a pawn push or capture, fanning out into the
// four promotion moves when the destination is the last rank.
func appendPawnMove(moves []board.Move, from, to board.Square, flags board.MoveFlags, promoRank int) []board.Move {
	if to.Rank() != promoRank {
		return append(moves, board.Move{From: from, To: to, Flags: flags})
	}
	for _, k := range promotionKinds {
		moves = append(moves, board.Move{From: from, To: to, Promotion: k, Flags: flags})
	}
	return moves
}

func leaperMoves(p *board.Position, from board.Square, deltas []board.Delta, moves []board.Move) []board.Move {
	stm := p.SideToMove()
	for _, d := range deltas {
		to, ok := board.Step(from, d)
		if !ok {
			continue
		}
		target := p.PieceAt(to)
		if target.IsEmpty() {
			moves = append(moves, board.Move{From: from, To: to})
		} else if target.Color() != stm {
			moves = append(moves, board.Move{From: from, To: to, Flags: board.FlagCapture})
		}
	}
	return moves
}

func sliderMoves(p *board.Position, from board.Square, dirs []board.Delta, moves []board.Move) []board.Move {
	stm := p.SideToMove()
	for _, d := range dirs {
		to, ok := board.Step(from, d)
		for ok {
			target := p.PieceAt(to)
			if target.IsEmpty() {
				moves = append(moves, board.Move{From: from, To: to})
				to, ok = board.Step(to, d)
				continue
			}
			if target.Color() != stm {
				moves = append(moves, board.Move{From: from, To: to, Flags: board.FlagCapture})
			}
			break
		}
	}
	return moves
}

// castleMoves appends castling moves whose full legality conditions hold:
// the right is retained, the rook is home, the between squares are empty,
// and the king neither is in, passes through, nor lands on check.
func castleMoves(p *board.Position, from board.Square, moves []board.Move) []board.Move {
	stm := p.SideToMove()
	rank := 0
	kingside, queenside := board.WhiteKingside, board.WhiteQueenside
	if stm == board.Black {
		rank = 7
		kingside, queenside = board.BlackKingside, board.BlackQueenside
	}
	if from != board.SquareAt(4, rank) || p.InCheck(stm) {
		return moves
	}
	enemy := stm.Other()
	rook := board.NewPiece(stm, board.Rook)

	if p.CastlingRights().Has(kingside) &&
		p.PieceAt(board.SquareAt(7, rank)) == rook &&
		p.PieceAt(board.SquareAt(5, rank)).IsEmpty() &&
		p.PieceAt(board.SquareAt(6, rank)).IsEmpty() &&
		!p.Attacked(board.SquareAt(5, rank), enemy) &&
		!p.Attacked(board.SquareAt(6, rank), enemy) {
		moves = append(moves, board.Move{From: from, To: board.SquareAt(6, rank), Flags: board.FlagCastleKingside})
	}
	if p.CastlingRights().Has(queenside) &&
		p.PieceAt(board.SquareAt(0, rank)) == rook &&
		p.PieceAt(board.SquareAt(1, rank)).IsEmpty() &&
		p.PieceAt(board.SquareAt(2, rank)).IsEmpty() &&
		p.PieceAt(board.SquareAt(3, rank)).IsEmpty() &&
		!p.Attacked(board.SquareAt(2, rank), enemy) &&
		!p.Attacked(board.SquareAt(3, rank), enemy) {
		moves = append(moves, board.Move{From: from, To: board.SquareAt(2, rank), Flags: board.FlagCastleQueenside})
	}
	return moves
}
