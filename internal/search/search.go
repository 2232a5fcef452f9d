// Package search implements the engine's best-move search: iterative
// deepening over a negamax alpha-beta tree with quiescence at the
// horizon, a transposition table, and deterministic move ordering.
//
// Deadlines are cooperative. The search checks the clock and the context
// every fixed batch of nodes and between depth iterations; when time runs
// out, the iteration in flight is discarded and the last fully completed
// depth's result stands, so a timed-out search still returns a usable
// move.
package search

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/woodpusher/internal/board"
	"github.com/discochess/woodpusher/internal/movegen"
	"github.com/discochess/woodpusher/internal/stats"
	"github.com/discochess/woodpusher/internal/tt"
)

const (
	// MaxSkill is full playing strength.
	MaxSkill = 20

	// MaxDepth is the deepest supported search.
	MaxDepth = 64

	maxPly = MaxDepth + 32

	// mateScore is the magnitude of a mate at the root; a mate found
	// ply moves down the tree scores mateScore-ply, so faster mates
	// score higher.
	mateScore = 30000
	mateBound = mateScore - maxPly
	infinity  = mateScore + 1

	// stopCheckInterval is how many nodes pass between clock checks.
	stopCheckInterval = 1024
)

// Limits bounds a single search. A zero Depth means MaxDepth; a zero
// MoveTime means no time budget (the context may still impose one).
type Limits struct {
	Depth    int
	MoveTime time.Duration
}

// Result is the outcome of one search.
type Result struct {
	// Move is the chosen move; only meaningful when HasMove is true.
	// HasMove is false when the side to move has no legal moves.
	Move    board.Move
	HasMove bool

	// Score is in centipawns from the side to move's perspective.
	// Scores beyond ±(mateScore-maxPly) encode forced mates.
	Score int

	// Depth is the deepest fully completed iteration.
	Depth int

	// Nodes is the number of nodes visited, quiescence included.
	Nodes uint64
}

// MateIn converts the result score into full moves until mate, from the
// side to move's perspective: positive when the mover mates, negative
// when the mover is mated. ok is false for non-mate scores.
func (r Result) MateIn() (moves int, ok bool) {
	switch {
	case r.Score > mateBound:
		return (mateScore - r.Score + 1) / 2, true
	case r.Score < -mateBound:
		return -(mateScore + r.Score + 1) / 2, true
	}
	return 0, false
}

// Config carries the per-engine knobs.
type Config struct {
	// SkillLevel is 0 (weakest) through MaxSkill.
	SkillLevel int

	// HashSizeMB is the transposition table budget.
	HashSizeMB int

	// Seed feeds the PRNG behind reduced-skill move selection, so
	// degraded play is reproducible under a fixed seed.
	Seed uint64
}

// Engine runs searches. It is stateful (transposition table, killer
// moves, PRNG) and serves one search at a time; concurrent use is the
// caller's bug. Each session owns its own Engine.
type Engine struct {
	cfg    Config
	table  *tt.Table
	stats  stats.Collector
	logger *zap.Logger
	rng    *rand.Rand

	killers [maxPly][2]board.Move

	ctx         context.Context
	deadline    time.Time
	hasDeadline bool
	stopped     bool
	tick        uint64
	nodes       uint64
	ttHits      uint64
}

// New creates an Engine. Collector and logger may be nil.
func New(cfg Config, collector stats.Collector, logger *zap.Logger) *Engine {
	if cfg.SkillLevel < 0 {
		cfg.SkillLevel = 0
	}
	if cfg.SkillLevel > MaxSkill {
		cfg.SkillLevel = MaxSkill
	}
	if cfg.HashSizeMB < 1 {
		cfg.HashSizeMB = 1
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		table:  tt.New(cfg.HashSizeMB),
		stats:  collector,
		logger: logger,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// SetSkillLevel changes the playing strength, clamped to 0 through
// MaxSkill. Must not be called while a search is running.
func (e *Engine) SetSkillLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxSkill {
		level = MaxSkill
	}
	e.cfg.SkillLevel = level
}

// SkillLevel returns the current playing strength.
func (e *Engine) SkillLevel() int { return e.cfg.SkillLevel }

// ClearState drops the transposition table and killer moves, as after a
// session reset.
func (e *Engine) ClearState() {
	e.table.Clear()
	e.killers = [maxPly][2]board.Move{}
}

// rootMove is a root move with its score from the latest completed
// iteration. index is the move's position in the generator's order and
// breaks score ties for reproducibility.
type rootMove struct {
	move  board.Move
	score int
	index int
}

// Search finds the best move within the limits. A position with no
// legal moves returns HasMove false and a mate or stalemate score.
func (e *Engine) Search(ctx context.Context, pos *board.Position, limits Limits) Result {
	start := time.Now()
	e.ctx = ctx
	e.stopped = false
	e.tick = 0
	e.nodes = 0
	e.ttHits = 0

	e.hasDeadline = false
	if limits.MoveTime > 0 {
		e.deadline = start.Add(limits.MoveTime)
		e.hasDeadline = true
	}
	if d, ok := ctx.Deadline(); ok && (!e.hasDeadline || d.Before(e.deadline)) {
		e.deadline = d
		e.hasDeadline = true
	}

	legal := movegen.Legal(pos)
	if len(legal) == 0 {
		score := 0
		if pos.InCheck(pos.SideToMove()) {
			score = -mateScore
		}
		return Result{Score: score}
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	if cap := depthCap(e.cfg.SkillLevel); cap < maxDepth {
		maxDepth = cap
	}

	roots := make([]rootMove, len(legal))
	for i, m := range legal {
		roots[i] = rootMove{move: m, index: i}
	}

	// Below full skill every root move is searched with a full window,
	// so the recorded scores are exact and usable for the margin-based
	// random pick; alpha-beta at the root would leave the non-best
	// moves with fail-low bounds only.
	fullWindow := e.cfg.SkillLevel < MaxSkill

	// The clock can expire before even depth 1 completes; until an
	// iteration finishes, the reported score is the root static eval.
	best := Result{Move: roots[0].move, HasMove: true, Score: sideEval(pos)}
	var lastCompleted []rootMove

	for depth := 1; depth <= maxDepth; depth++ {
		if !e.searchRoot(pos, roots, depth, fullWindow) {
			break
		}
		top := bestRoot(roots)
		best = Result{Move: top.move, HasMove: true, Score: top.score, Depth: depth}
		lastCompleted = append(lastCompleted[:0], roots...)

		e.logger.Debug("search depth complete",
			zap.Int("depth", depth),
			zap.Stringer("move", top.move),
			zap.Int("score", top.score),
			zap.Uint64("nodes", e.nodes),
			zap.Duration("elapsed", time.Since(start)),
		)

		if e.outOfTime() || top.score > mateBound {
			break
		}
		sortRoots(roots)
	}

	if e.cfg.SkillLevel < MaxSkill && len(lastCompleted) > 1 {
		best = e.pickDegraded(lastCompleted, best)
	}
	best.Nodes = e.nodes

	e.stats.IncCounter(stats.MetricNodes, int64(e.nodes))
	e.stats.IncCounter(stats.MetricTTHits, int64(e.ttHits))
	e.stats.ObserveHistogram(stats.MetricSearchSeconds, time.Since(start).Seconds())
	e.stats.SetGauge(stats.MetricSearchDepth, int64(best.Depth))
	return best
}

// searchRoot scores every root move at the given depth, reporting false
// when the iteration was cut off by the deadline.
func (e *Engine) searchRoot(pos *board.Position, roots []rootMove, depth int, fullWindow bool) bool {
	alpha, beta := -infinity, infinity
	for i := range roots {
		child := pos.Apply(roots[i].move)
		var score int
		if fullWindow {
			score = -e.negamax(&child, depth-1, 1, -infinity, infinity)
		} else {
			score = -e.negamax(&child, depth-1, 1, -beta, -alpha)
		}
		if e.stopped {
			return false
		}
		roots[i].score = score
		if score > alpha {
			alpha = score
		}
	}
	return true
}

// bestRoot picks the highest score, breaking ties by generation order.
func bestRoot(roots []rootMove) rootMove {
	best := roots[0]
	for _, r := range roots[1:] {
		if r.score > best.score || (r.score == best.score && r.index < best.index) {
			best = r
		}
	}
	return best
}

// outOfTime reports whether the deadline or context has expired.
func (e *Engine) outOfTime() bool {
	if e.ctx != nil && e.ctx.Err() != nil {
		return true
	}
	return e.hasDeadline && !time.Now().Before(e.deadline)
}

// checkStop trips the stop flag once the deadline passes. Called on
// every node, it only consults the clock every stopCheckInterval calls.
func (e *Engine) checkStop() bool {
	if e.stopped {
		return true
	}
	e.tick++
	if e.tick%stopCheckInterval == 0 && e.outOfTime() {
		e.stopped = true
	}
	return e.stopped
}
