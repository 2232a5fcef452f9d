package search

// Strength degradation policy. Below MaxSkill the engine weakens in two
// documented, reproducible ways:
//
//  1. The iterative-deepening depth is capped on a fixed ladder, so a
//     skill-5 engine simply cannot see as far as a skill-20 one.
//  2. At the root, instead of always playing the best move, the engine
//     picks uniformly at random among the moves whose exact score at the
//     final completed depth lies within a margin of the best score. The
//     margin widens as skill drops. The pick uses the engine's seeded
//     PRNG, so a fixed seed reproduces the same games.
//
// At MaxSkill both mechanisms are inert and the search is fully
// deterministic. Evaluation itself is never randomized.

// skillDepthLadder caps search depth for skill levels 0 through 19.
var skillDepthLadder = [MaxSkill]int{
	1, 1, 2, 2, 3, 3, 4, 4, 5, 5,
	6, 6, 7, 7, 8, 9, 10, 12, 14, 16,
}

// depthCap returns the deepest iteration allowed at the skill level.
func depthCap(skill int) int {
	if skill >= MaxSkill {
		return MaxDepth
	}
	if skill < 0 {
		skill = 0
	}
	return skillDepthLadder[skill]
}

// selectionMargin is the centipawn window below the best root score from
// which a degraded engine may pick its move.
func selectionMargin(skill int) int {
	return (MaxSkill - skill) * 25
}

// pickDegraded applies the margin-based random pick to the root scores
// of the last completed iteration.
func (e *Engine) pickDegraded(roots []rootMove, best Result) Result {
	margin := selectionMargin(e.cfg.SkillLevel)
	candidates := roots[:0:0]
	for _, r := range roots {
		if r.score >= best.Score-margin {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return best
	}
	pick := candidates[e.rng.IntN(len(candidates))]
	return Result{
		Move:    pick.move,
		HasMove: true,
		Score:   pick.score,
		Depth:   best.Depth,
	}
}
