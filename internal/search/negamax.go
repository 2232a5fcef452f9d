package search

import (
	"github.com/discochess/woodpusher/internal/board"
	"github.com/discochess/woodpusher/internal/eval"
	"github.com/discochess/woodpusher/internal/movegen"
	"github.com/discochess/woodpusher/internal/tt"
)

// negamax searches the position to the given remaining depth and returns
// its score from the side to move's perspective. alpha/beta bounds prune
// branches that cannot affect the root choice.
func (e *Engine) negamax(pos *board.Position, depth, ply int, alpha, beta int) int {
	if e.checkStop() {
		return 0
	}

	// Draws by rule score exactly zero.
	if pos.HalfmoveClock() >= 100 || eval.InsufficientMaterial(pos) {
		return 0
	}

	hash := pos.Hash()
	var ttMove board.Move
	if entry, ok := e.table.Probe(hash); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			score := scoreFromTT(int(entry.Score), ply)
			usable := false
			switch entry.Bound {
			case tt.BoundExact:
				usable = true
			case tt.BoundLower:
				usable = score >= beta
			case tt.BoundUpper:
				usable = score <= alpha
			}
			if usable {
				e.ttHits++
				return score
			}
		}
	}

	if depth <= 0 || ply >= maxPly {
		return e.quiesce(pos, ply, alpha, beta)
	}
	e.nodes++

	moves := movegen.Legal(pos)
	if len(moves) == 0 {
		if pos.InCheck(pos.SideToMove()) {
			return -(mateScore - ply)
		}
		return 0
	}
	e.orderMoves(pos, moves, ttMove, ply)

	origAlpha := alpha
	bestScore := -infinity
	var bestMove board.Move
	for _, m := range moves {
		child := pos.Apply(m)
		score := -e.negamax(&child, depth-1, ply+1, -beta, -alpha)
		if e.stopped {
			return 0
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !m.IsCapture() && m.Promotion == board.NoKind {
				e.storeKiller(ply, m)
			}
			break
		}
	}

	bound := tt.BoundExact
	switch {
	case bestScore <= origAlpha:
		bound = tt.BoundUpper
	case bestScore >= beta:
		bound = tt.BoundLower
	}
	e.table.Store(hash, depth, bestMove, int32(scoreToTT(bestScore, ply)), bound)
	return bestScore
}

// quiesce resolves captures and promotions until the position is quiet,
// so the horizon evaluation isn't taken in the middle of an exchange.
func (e *Engine) quiesce(pos *board.Position, ply int, alpha, beta int) int {
	if e.checkStop() {
		return 0
	}
	e.nodes++

	stand := sideEval(pos)
	if ply >= maxPly {
		return stand
	}
	if stand >= beta {
		return stand
	}
	if stand > alpha {
		alpha = stand
	}

	moves := movegen.Legal(pos)
	e.orderMoves(pos, moves, board.Move{}, ply)
	for _, m := range moves {
		if !m.IsCapture() && m.Promotion == board.NoKind {
			continue
		}
		child := pos.Apply(m)
		score := -e.quiesce(&child, ply+1, -beta, -alpha)
		if e.stopped {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// sideEval is the static evaluation from the side to move's perspective.
func sideEval(pos *board.Position) int {
	score := eval.Evaluate(pos)
	if pos.SideToMove() == board.Black {
		return -score
	}
	return score
}

// Mate scores are stored in the table relative to the current node, not
// the root, so they stay correct when the entry is reused at a
// different ply.
func scoreToTT(score, ply int) int {
	if score > mateBound {
		return score + ply
	}
	if score < -mateBound {
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	if score > mateBound {
		return score - ply
	}
	if score < -mateBound {
		return score + ply
	}
	return score
}
