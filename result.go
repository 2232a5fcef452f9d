package woodpusher

import "strconv"

// Move is a chess move in coordinate notation.
type Move struct {
	// From and To are algebraic squares, e.g. "e2" and "e4".
	From string
	To   string

	// Promotion is the lowercase promotion letter ("q", "r", "b", "n"),
	// or empty when the move does not promote.
	Promotion string
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	return m.From + m.To + m.Promotion
}

// Result is the outcome of a BestMove call.
type Result struct {
	// Best is the chosen move, or nil when the side to move has no
	// legal move. With a nil Best, InCheck distinguishes checkmate
	// (true) from stalemate (false).
	Best *Move

	// Score is the search score from the side to move's perspective.
	Score Score

	// Depth is the deepest fully completed search iteration.
	Depth int

	// Nodes is the number of search tree nodes visited.
	Nodes uint64

	// InCheck reports whether the side to move is in check.
	InCheck bool
}

// Score is a search or evaluation score.
type Score struct {
	// Centipawns is the score in centipawns; positive favors the side
	// the score is relative to. Nil when the score is a forced mate.
	Centipawns *int

	// Mate is the number of full moves until checkmate: positive when
	// the scored side mates, negative when it gets mated. Nil when
	// there is no forced mate.
	Mate *int
}

// IsMate returns true if the score is a forced checkmate.
func (s Score) IsMate() bool {
	return s.Mate != nil
}

// Pawns returns the score in pawn units; mate scores saturate to ±1000.
func (s Score) Pawns() float64 {
	if s.Mate != nil {
		if *s.Mate < 0 {
			return -1000
		}
		return 1000
	}
	if s.Centipawns == nil {
		return 0
	}
	return float64(*s.Centipawns) / 100
}

// String returns a human-readable score string.
// Examples: "+1.25", "-0.50", "#3", "#-5"
func (s Score) String() string {
	if s.Mate != nil {
		return "#" + strconv.Itoa(*s.Mate)
	}
	if s.Centipawns == nil {
		return "?"
	}
	cp := *s.Centipawns
	sign := "+"
	if cp < 0 {
		sign = "-"
		cp = -cp
	}
	whole := cp / 100
	frac := cp % 100
	if frac < 10 {
		return sign + strconv.Itoa(whole) + ".0" + strconv.Itoa(frac)
	}
	return sign + strconv.Itoa(whole) + "." + strconv.Itoa(frac)
}
