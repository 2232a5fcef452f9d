// Package woodpusher is an embeddable chess engine: FEN in, best move
// and evaluation out. It implements a full legal-move generator and an
// iterative-deepening alpha-beta search with a configurable strength
// level, intended as the engine core behind a GUI or bot.
//
// Example usage:
//
//	session, err := woodpusher.New(
//	    woodpusher.WithSkillLevel(12),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	result, err := session.BestMove(ctx,
//	    "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
//	    woodpusher.Limits{Depth: 6},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("best move %s (%s)\n", result.Best, result.Score)
package woodpusher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/discochess/woodpusher/internal/board"
	"github.com/discochess/woodpusher/internal/eval"
	"github.com/discochess/woodpusher/internal/movegen"
	"github.com/discochess/woodpusher/internal/search"
	"github.com/discochess/woodpusher/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrInvalidFEN indicates the supplied FEN string is malformed.
	ErrInvalidFEN = errors.New("woodpusher: invalid FEN")

	// ErrIllegalMove indicates a move that is not legal in the given
	// position.
	ErrIllegalMove = errors.New("woodpusher: illegal move")

	// ErrBusy indicates a search is already running on this session.
	ErrBusy = errors.New("woodpusher: search in progress")

	// ErrClosed indicates the session has been closed.
	ErrClosed = errors.New("woodpusher: session closed")
)

// Limits bounds a single search. A zero value means "no bound" for that
// field; when both are zero, BestMove searches to DefaultDepth.
type Limits struct {
	// Depth caps the iterative-deepening depth.
	Depth int

	// MoveTime is the time budget. The search observes it
	// cooperatively and returns the best result of the last fully
	// completed depth.
	MoveTime time.Duration
}

// Session is one engine instance: configuration, transposition table,
// result cache, and strength PRNG. Sessions are independent; any number
// may run concurrently, but each session serves one search at a time and
// reports ErrBusy for overlapping BestMove calls.
type Session struct {
	id     string
	logger *zap.Logger
	stats  stats.Collector

	mu     sync.Mutex // guards cfg, engine, cache, and searching transitions
	cfg    options
	engine *search.Engine
	cache  *lru.Cache[string, *Result]

	// searching is set under mu and cleared lock-free when the search
	// returns, so SetOption and Reset serialize against search starts.
	searching atomic.Bool
	closed    atomic.Bool
}

// New creates a Session with the given options.
// If no options are provided, sensible defaults are used.
func New(opts ...Option) (*Session, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	cache, err := lru.New[string, *Result](cfg.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}

	s := &Session{
		id:     uuid.NewString(),
		logger: cfg.logger,
		stats:  cfg.stats,
		cfg:    cfg,
		cache:  cache,
	}
	s.engine = s.newEngine()

	s.logger.Debug("session initialized",
		zap.String("session", s.id),
		zap.Int("skillLevel", cfg.skillLevel),
		zap.Int("threads", cfg.threads),
		zap.Int("hashSizeMB", cfg.hashSizeMB),
	)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// SkillLevel returns the configured strength level.
func (s *Session) SkillLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.skillLevel
}

// Threads returns the configured thread count.
func (s *Session) Threads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.threads
}

// HashSizeMB returns the configured transposition table budget.
func (s *Session) HashSizeMB() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.hashSizeMB
}

// BestMove searches the position for the best move within the limits.
//
// A position where the side to move has no legal move returns a Result
// with a nil Best; InCheck distinguishes checkmate from stalemate. The
// returned score is from the side to move's perspective.
//
// One search runs at a time; a call that overlaps a running search
// returns ErrBusy.
func (s *Session) BestMove(ctx context.Context, fen string, limits Limits) (*Result, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	if limits.Depth <= 0 && limits.MoveTime <= 0 {
		limits.Depth = DefaultDepth
	}

	s.mu.Lock()
	if !s.searching.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	engine := s.engine
	cache := s.cache
	s.mu.Unlock()
	defer s.searching.Store(false)

	key := resultKey(&pos, limits)
	if cached, ok := cache.Get(key); ok {
		s.stats.IncCounter(stats.MetricCacheHits, 1)
		return cached, nil
	}
	s.stats.IncCounter(stats.MetricCacheMisses, 1)
	s.stats.IncCounter(stats.MetricSearches, 1)

	res := engine.Search(ctx, &pos, search.Limits{
		Depth:    limits.Depth,
		MoveTime: limits.MoveTime,
	})
	result := toResult(&pos, res)
	cache.Add(key, result)

	s.logger.Debug("search finished",
		zap.String("session", s.id),
		zap.String("fen", fen),
		zap.Stringer("score", result.Score),
		zap.Int("depth", result.Depth),
		zap.Uint64("nodes", result.Nodes),
	)
	return result, nil
}

// Evaluate returns the static evaluation of the position in pawn units,
// positive favoring White. No search is performed.
func (s *Session) Evaluate(fen string) (float64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	s.stats.IncCounter(stats.MetricEvaluations, 1)
	return float64(eval.Evaluate(&pos)) / 100, nil
}

// LegalMoves returns every legal move of the position in coordinate
// notation, in the generator's deterministic order. An empty slice means
// checkmate or stalemate.
func (s *Session) LegalMoves(fen string) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	moves := movegen.Legal(&pos)
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out, nil
}

// ApplyMove plays a move, given in coordinate notation such as "e2e4"
// or "e7e8q", on the position and returns the resulting FEN. The move
// must be legal; ErrIllegalMove is returned otherwise.
func (s *Session) ApplyMove(fen, move string) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	for _, m := range movegen.Legal(&pos) {
		if m.String() == move {
			next := pos.Apply(m)
			return next.FEN(), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrIllegalMove, move)
}

// InCheck reports whether the side to move is in check.
func (s *Session) InCheck(fen string) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return pos.InCheck(pos.SideToMove()), nil
}

// SetOption updates a named engine option. Recognized options are
// "SkillLevel" (0-20), "Threads" (>=1), and "HashSizeMB" (>=1); names
// are case-insensitive. Unrecognized names, unparsable or out-of-range
// values, and calls made while a search is running are silently ignored
// and the prior value is retained, matching how engine GUIs expect
// option handling to behave.
func (s *Session) SetOption(name, value string) {
	if s.closed.Load() {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		s.logger.Debug("option value ignored", zap.String("name", name), zap.String("value", value))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Checked under mu: a search starts by flipping searching under the
	// same lock, so the flag cannot flip between this check and the
	// engine mutation below.
	if s.searching.Load() {
		s.logger.Debug("option ignored during search", zap.String("name", name))
		return
	}
	switch {
	case strings.EqualFold(name, "SkillLevel"):
		if n < 0 || n > search.MaxSkill {
			return
		}
		s.cfg.skillLevel = n
		s.engine.SetSkillLevel(n)
	case strings.EqualFold(name, "Threads"):
		if n < 1 {
			return
		}
		s.cfg.threads = n
	case strings.EqualFold(name, "HashSizeMB"):
		if n < 1 {
			return
		}
		s.cfg.hashSizeMB = n
		s.engine = s.newEngine()
	default:
		s.logger.Debug("unrecognized option ignored", zap.String("name", name))
		return
	}
	s.cache.Purge()
}

// Reset restores the default SkillLevel, Threads and HashSizeMB, drops
// the transposition table and the result cache, and keeps the session's
// logger, stats collector and seed. Ignored while a search is running.
func (s *Session) Reset() {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searching.Load() {
		return
	}
	s.cfg.skillLevel = DefaultSkillLevel
	s.cfg.threads = DefaultThreads
	s.cfg.hashSizeMB = DefaultHashSizeMB
	s.engine = s.newEngine()
	s.cache.Purge()
	s.logger.Debug("session reset", zap.String("session", s.id))
}

// Close releases the session's resources. The first call returns nil;
// later calls return ErrClosed. A closed session rejects all operations.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	s.engine = nil
	s.logger.Debug("session closed", zap.String("session", s.id))
	return nil
}

// newEngine builds a search engine from the current config.
// Callers hold s.mu or are the constructor.
func (s *Session) newEngine() *search.Engine {
	return search.New(search.Config{
		SkillLevel: s.cfg.skillLevel,
		HashSizeMB: s.cfg.hashSizeMB,
		Seed:       s.cfg.seed,
	}, s.stats, s.logger.Named("search"))
}

// resultKey builds the cache key for a search. The canonical FEN makes
// equivalent inputs share an entry; options changes purge the cache, so
// they need not appear in the key.
func resultKey(pos *board.Position, limits Limits) string {
	return fmt.Sprintf("%s|%d|%d", pos.FEN(), limits.Depth, limits.MoveTime)
}

// toResult converts an internal search result to the public type.
func toResult(pos *board.Position, r search.Result) *Result {
	result := &Result{
		Depth:   r.Depth,
		Nodes:   r.Nodes,
		InCheck: pos.InCheck(pos.SideToMove()),
	}
	if r.HasMove {
		result.Best = publicMove(r.Move)
	}
	if mate, ok := r.MateIn(); ok {
		result.Score.Mate = &mate
	} else {
		cp := r.Score
		result.Score.Centipawns = &cp
	}
	return result
}

func publicMove(m board.Move) *Move {
	mv := &Move{
		From: m.From.String(),
		To:   m.To.String(),
	}
	if m.Promotion != board.NoKind {
		mv.Promotion = string(m.Promotion.Letter())
	}
	return mv
}
