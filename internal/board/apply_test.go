package board

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		from  string
		to    string
		promo Kind
		flags MoveFlags
		want  string
	}{
		{
			name:  "double pawn push sets en passant",
			fen:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			from:  "e2",
			to:    "e4",
			flags: FlagDoublePush,
			want:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name: "quiet knight move bumps halfmove clock",
			fen:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			from: "g1",
			to:   "f3",
			want: "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
		},
		{
			name:  "pawn capture resets halfmove clock and clears en passant",
			fen:   "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
			from:  "e4",
			to:    "d5",
			flags: FlagCapture,
			want:  "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
		},
		{
			name:  "white kingside castle moves the rook",
			fen:   "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
			from:  "e1",
			to:    "g1",
			flags: FlagCastleKingside,
			want:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1 b kq - 1 1",
		},
		{
			name:  "black queenside castle increments fullmove",
			fen:   "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1",
			from:  "e8",
			to:    "c8",
			flags: FlagCastleQueenside,
			want:  "2kr3r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQ - 1 2",
		},
		{
			name:  "en passant removes the passed pawn",
			fen:   "k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
			from:  "e5",
			to:    "d6",
			flags: FlagCapture | FlagEnPassant,
			want:  "k7/8/3P4/8/8/8/8/7K b - - 0 2",
		},
		{
			name:  "promotion with capture",
			fen:   "1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			from:  "a7",
			to:    "b8",
			promo: Queen,
			flags: FlagCapture,
			want:  "1Q5k/8/8/8/8/8/8/7K b - - 0 1",
		},
		{
			name:  "underpromotion",
			fen:   "1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			from:  "a7",
			to:    "a8",
			promo: Knight,
			want:  "Nn5k/8/8/8/8/8/8/7K b - - 0 1",
		},
		{
			name: "rook move drops its castling right",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
			from: "h1",
			to:   "g1",
			want: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K1R1 b Qkq - 1 1",
		},
		{
			name:  "capturing a rook drops the opponent right",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			from:  "a1",
			to:    "a8",
			flags: FlagCapture,
			want:  "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustParseFEN(t, tt.fen)
			m := Move{
				From:      mustSquare(t, tt.from),
				To:        mustSquare(t, tt.to),
				Promotion: tt.promo,
				Flags:     tt.flags,
			}

			next := pos.Apply(m)
			if got := next.FEN(); got != tt.want {
				t.Errorf("Apply(%s) = %q, want %q", m, got, tt.want)
			}

			// The original position is untouched.
			if got := pos.FEN(); got != tt.fen {
				t.Errorf("Apply(%s) mutated the receiver: %q", m, got)
			}

			// The incremental position hashes like a fresh parse.
			reparsed := mustParseFEN(t, tt.want)
			if next.Hash() != reparsed.Hash() {
				t.Errorf("Hash() = %#x after Apply, %#x after reparse", next.Hash(), reparsed.Hash())
			}
		})
	}
}

func TestApply_KingSquareTracking(t *testing.T) {
	pos := mustParseFEN(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	next := pos.Apply(Move{
		From:  mustSquare(t, "e1"),
		To:    mustSquare(t, "g1"),
		Flags: FlagCastleKingside,
	})
	if got := next.KingSquare(White); got.String() != "g1" {
		t.Errorf("KingSquare(White) = %v, want g1", got)
	}
	if got := next.KingSquare(Black); got.String() != "e8" {
		t.Errorf("KingSquare(Black) = %v, want e8", got)
	}
}
