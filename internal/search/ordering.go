package search

import (
	"sort"

	"github.com/discochess/woodpusher/internal/board"
	"github.com/discochess/woodpusher/internal/eval"
)

// Ordering weights. Correctness never depends on these; good ordering
// just tightens alpha-beta pruning.
const (
	orderTTMove    = 1 << 20
	orderCapture   = 1 << 16
	orderPromotion = 1 << 15
	orderKiller    = 1 << 14
)

// orderMoves sorts moves in place: transposition-table move first, then
// captures by most-valuable-victim/least-valuable-attacker, promotions,
// killer moves, and finally quiet moves in generation order. The sort is
// stable, so equal-weight moves keep the generator's deterministic order.
func (e *Engine) orderMoves(pos *board.Position, moves []board.Move, ttMove board.Move, ply int) {
	if len(moves) < 2 {
		return
	}
	weighted := make([]weightedMove, len(moves))
	for i, m := range moves {
		weighted[i] = weightedMove{move: m, weight: e.moveWeight(pos, m, ttMove, ply)}
	}
	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].weight > weighted[j].weight
	})
	for i, wm := range weighted {
		moves[i] = wm.move
	}
}

type weightedMove struct {
	move   board.Move
	weight int
}

func (e *Engine) moveWeight(pos *board.Position, m, ttMove board.Move, ply int) int {
	if m == ttMove && ttMove != (board.Move{}) {
		return orderTTMove
	}
	w := 0
	if m.IsCapture() {
		victim := board.Pawn // en passant captures a pawn off-square
		if target := pos.PieceAt(m.To); !target.IsEmpty() {
			victim = target.Kind()
		}
		attacker := pos.PieceAt(m.From).Kind()
		w += orderCapture + 10*eval.PieceValue(victim) - eval.PieceValue(attacker)
	}
	if m.Promotion != board.NoKind {
		w += orderPromotion + eval.PieceValue(m.Promotion)
	}
	if w == 0 && ply < maxPly {
		if m == e.killers[ply][0] {
			w = orderKiller + 1
		} else if m == e.killers[ply][1] {
			w = orderKiller
		}
	}
	return w
}

// storeKiller remembers a quiet move that caused a beta cutoff, keeping
// the two most recent per ply.
func (e *Engine) storeKiller(ply int, m board.Move) {
	if ply >= maxPly || e.killers[ply][0] == m {
		return
	}
	e.killers[ply][1] = e.killers[ply][0]
	e.killers[ply][0] = m
}

// sortRoots moves higher-scoring root moves to the front for the next
// iteration, keeping generation order among equals.
func sortRoots(roots []rootMove) {
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].score > roots[j].score
	})
}
