package movegen

import "github.com/discochess/woodpusher/internal/board"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Standard validation tool: the counts for well-known positions are
// published, so any generation bug shows up as a count mismatch.
func Perft(p *board.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := Legal(p)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := p.Apply(m)
		nodes += Perft(&next, depth-1)
	}
	return nodes
}

// Divide returns the perft count per root move, keyed by the move's
// coordinate notation. Useful when chasing down a count mismatch.
func Divide(p *board.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range Legal(p) {
		next := p.Apply(m)
		out[m.String()] = Perft(&next, depth-1)
	}
	return out
}
