package woodpusher

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
)

const (
	startposFEN  = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	mateInOneFEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	checkmateFEN = "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"
	stalemateFEN = "7k/5Q2/8/8/8/8/8/K7 b - - 0 1"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithSeed(1)}, opts...)
	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_Defaults(t *testing.T) {
	s := newTestSession(t)

	if s.ID() == "" {
		t.Error("ID() = empty, want a unique identifier")
	}
	if got := s.SkillLevel(); got != DefaultSkillLevel {
		t.Errorf("SkillLevel() = %d, want %d", got, DefaultSkillLevel)
	}
	if got := s.Threads(); got != DefaultThreads {
		t.Errorf("Threads() = %d, want %d", got, DefaultThreads)
	}
	if got := s.HashSizeMB(); got != DefaultHashSizeMB {
		t.Errorf("HashSizeMB() = %d, want %d", got, DefaultHashSizeMB)
	}

	other := newTestSession(t)
	if other.ID() == s.ID() {
		t.Error("two sessions share an ID, want unique IDs")
	}
}

func TestBestMove_InvalidFEN(t *testing.T) {
	s := newTestSession(t)

	if _, err := s.BestMove(context.Background(), "not a position", Limits{Depth: 2}); !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("BestMove() error = %v, want ErrInvalidFEN", err)
	}
}

func TestBestMove_DefaultDepth(t *testing.T) {
	s := newTestSession(t)

	result, err := s.BestMove(context.Background(), startposFEN, Limits{})
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if result.Best == nil {
		t.Fatal("Best = nil, want a move")
	}
	if result.Depth != DefaultDepth {
		t.Errorf("Depth = %d, want %d when no limits are given", result.Depth, DefaultDepth)
	}
}

func TestBestMove_MateInOne(t *testing.T) {
	s := newTestSession(t)

	result, err := s.BestMove(context.Background(), mateInOneFEN, Limits{Depth: 4})
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if result.Best == nil {
		t.Fatal("Best = nil, want a move")
	}
	if got := result.Best.String(); got != "a1a8" {
		t.Errorf("Best = %s, want a1a8", got)
	}
	if !result.Score.IsMate() {
		t.Fatalf("Score = %s, want a mate score", result.Score)
	}
	if *result.Score.Mate != 1 {
		t.Errorf("Mate = %d, want 1", *result.Score.Mate)
	}
}

func TestBestMove_Checkmate(t *testing.T) {
	s := newTestSession(t)

	result, err := s.BestMove(context.Background(), checkmateFEN, Limits{Depth: 4})
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if result.Best != nil {
		t.Errorf("Best = %s for a checkmate position, want nil", result.Best)
	}
	if !result.InCheck {
		t.Error("InCheck = false, want true for checkmate")
	}
}

func TestBestMove_Stalemate(t *testing.T) {
	s := newTestSession(t)

	result, err := s.BestMove(context.Background(), stalemateFEN, Limits{Depth: 4})
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if result.Best != nil {
		t.Errorf("Best = %s for a stalemate position, want nil", result.Best)
	}
	if result.InCheck {
		t.Error("InCheck = true, want false for stalemate")
	}
	if got := result.Score.Pawns(); got != 0 {
		t.Errorf("Score = %v pawns, want 0 for stalemate", got)
	}
}

func TestBestMove_ResultCached(t *testing.T) {
	s := newTestSession(t)

	first, err := s.BestMove(context.Background(), startposFEN, Limits{Depth: 3})
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	second, err := s.BestMove(context.Background(), startposFEN, Limits{Depth: 3})
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if first != second {
		t.Error("repeated identical search built a new result, want the cached one")
	}

	// A different limit is a different search.
	deeper, err := s.BestMove(context.Background(), startposFEN, Limits{Depth: 4})
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	if deeper == first {
		t.Error("different depth returned the cached result, want a fresh search")
	}
}

func TestBestMove_BusyDuringSearch(t *testing.T) {
	s := newTestSession(t)
	s.searching.Store(true)
	defer s.searching.Store(false)

	if _, err := s.BestMove(context.Background(), startposFEN, Limits{Depth: 2}); !errors.Is(err, ErrBusy) {
		t.Errorf("BestMove() error = %v, want ErrBusy", err)
	}
}

func TestBestMove_Deterministic(t *testing.T) {
	const fen = "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"

	run := func() string {
		s := newTestSession(t, WithSkillLevel(8), WithSeed(99))
		result, err := s.BestMove(context.Background(), fen, Limits{Depth: 4})
		if err != nil {
			t.Fatalf("BestMove() error = %v", err)
		}
		if result.Best == nil {
			t.Fatal("Best = nil, want a move")
		}
		return result.Best.String()
	}

	first := run()
	for i := 0; i < 3; i++ {
		if again := run(); again != first {
			t.Fatalf("run %d = %s, want %s under identical seed and options", i, again, first)
		}
	}
}

func TestEvaluate(t *testing.T) {
	s := newTestSession(t)

	balanced, err := s.Evaluate(startposFEN)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if balanced != 0 {
		t.Errorf("Evaluate(startpos) = %v, want 0", balanced)
	}

	up, err := s.Evaluate("rnbqkbnr/pppppppp/8/8/3Q4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if up < 8 {
		t.Errorf("Evaluate(extra queen) = %v, want at least 8 pawns", up)
	}

	if _, err := s.Evaluate("garbage"); !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("Evaluate() error = %v, want ErrInvalidFEN", err)
	}
}

func TestLegalMoves(t *testing.T) {
	s := newTestSession(t)

	moves, err := s.LegalMoves(startposFEN)
	if err != nil {
		t.Fatalf("LegalMoves() error = %v", err)
	}
	if len(moves) != 20 {
		t.Errorf("len(LegalMoves()) = %d, want 20", len(moves))
	}

	none, err := s.LegalMoves(checkmateFEN)
	if err != nil {
		t.Fatalf("LegalMoves() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len(LegalMoves()) = %d for checkmate, want 0", len(none))
	}
}

func TestApplyMove(t *testing.T) {
	s := newTestSession(t)

	next, err := s.ApplyMove(startposFEN, "e2e4")
	if err != nil {
		t.Fatalf("ApplyMove() error = %v", err)
	}
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"; next != want {
		t.Errorf("ApplyMove() = %q, want %q", next, want)
	}

	promoted, err := s.ApplyMove("1n5k/P7/8/8/8/8/8/7K w - - 0 1", "a7b8q")
	if err != nil {
		t.Fatalf("ApplyMove() error = %v", err)
	}
	if want := "1Q5k/8/8/8/8/8/8/7K b - - 0 1"; promoted != want {
		t.Errorf("ApplyMove() = %q, want %q", promoted, want)
	}

	if _, err := s.ApplyMove(startposFEN, "e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("ApplyMove(illegal) error = %v, want ErrIllegalMove", err)
	}
	if _, err := s.ApplyMove("garbage", "e2e4"); !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("ApplyMove(bad FEN) error = %v, want ErrInvalidFEN", err)
	}
}

func TestInCheck(t *testing.T) {
	s := newTestSession(t)

	inCheck, err := s.InCheck(checkmateFEN)
	if err != nil {
		t.Fatalf("InCheck() error = %v", err)
	}
	if !inCheck {
		t.Error("InCheck(checkmate) = false, want true")
	}

	quiet, err := s.InCheck(startposFEN)
	if err != nil {
		t.Fatalf("InCheck() error = %v", err)
	}
	if quiet {
		t.Error("InCheck(startpos) = true, want false")
	}
}

func TestSetOption(t *testing.T) {
	tests := []struct {
		name      string
		option    string
		value     string
		wantSkill int
		wantHash  int
		wantThr   int
	}{
		{
			name:      "skill level",
			option:    "SkillLevel",
			value:     "5",
			wantSkill: 5, wantHash: DefaultHashSizeMB, wantThr: DefaultThreads,
		},
		{
			name:      "case insensitive name",
			option:    "skilllevel",
			value:     "3",
			wantSkill: 3, wantHash: DefaultHashSizeMB, wantThr: DefaultThreads,
		},
		{
			name:      "skill out of range ignored",
			option:    "SkillLevel",
			value:     "42",
			wantSkill: DefaultSkillLevel, wantHash: DefaultHashSizeMB, wantThr: DefaultThreads,
		},
		{
			name:      "threads",
			option:    "Threads",
			value:     "4",
			wantSkill: DefaultSkillLevel, wantHash: DefaultHashSizeMB, wantThr: 4,
		},
		{
			name:      "threads below one ignored",
			option:    "Threads",
			value:     "0",
			wantSkill: DefaultSkillLevel, wantHash: DefaultHashSizeMB, wantThr: DefaultThreads,
		},
		{
			name:      "hash size",
			option:    "HashSizeMB",
			value:     "16",
			wantSkill: DefaultSkillLevel, wantHash: 16, wantThr: DefaultThreads,
		},
		{
			name:      "unparsable value ignored",
			option:    "SkillLevel",
			value:     "lots",
			wantSkill: DefaultSkillLevel, wantHash: DefaultHashSizeMB, wantThr: DefaultThreads,
		},
		{
			name:      "unknown option ignored",
			option:    "Ponder",
			value:     "1",
			wantSkill: DefaultSkillLevel, wantHash: DefaultHashSizeMB, wantThr: DefaultThreads,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			s.SetOption(tt.option, tt.value)

			if got := s.SkillLevel(); got != tt.wantSkill {
				t.Errorf("SkillLevel() = %d, want %d", got, tt.wantSkill)
			}
			if got := s.HashSizeMB(); got != tt.wantHash {
				t.Errorf("HashSizeMB() = %d, want %d", got, tt.wantHash)
			}
			if got := s.Threads(); got != tt.wantThr {
				t.Errorf("Threads() = %d, want %d", got, tt.wantThr)
			}
		})
	}
}

func TestSetOption_IgnoredWhileSearching(t *testing.T) {
	s := newTestSession(t)
	s.searching.Store(true)
	defer s.searching.Store(false)

	s.SetOption("SkillLevel", "5")
	if got := s.SkillLevel(); got != DefaultSkillLevel {
		t.Errorf("SkillLevel() = %d, want %d (option applied mid-search)", got, DefaultSkillLevel)
	}
}

func TestSetOption_ConcurrentWithSearch(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	// Hammer searches and option changes from separate goroutines. Every
	// option change must land strictly before or after a search, never
	// inside one; the race detector flags any overlap.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if _, err := s.BestMove(ctx, startposFEN, Limits{Depth: 2}); err != nil && !errors.Is(err, ErrBusy) {
				t.Errorf("BestMove() error = %v", err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.SetOption("SkillLevel", strconv.Itoa(i%21))
		}
	}()
	wg.Wait()

	if got := s.SkillLevel(); got < 0 || got > 20 {
		t.Errorf("SkillLevel() = %d, want within 0..20", got)
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(t)

	s.SetOption("SkillLevel", "3")
	s.SetOption("Threads", "4")
	s.SetOption("HashSizeMB", "16")

	s.Reset()

	if got := s.SkillLevel(); got != DefaultSkillLevel {
		t.Errorf("SkillLevel() = %d after Reset, want %d", got, DefaultSkillLevel)
	}
	if got := s.Threads(); got != DefaultThreads {
		t.Errorf("Threads() = %d after Reset, want %d", got, DefaultThreads)
	}
	if got := s.HashSizeMB(); got != DefaultHashSizeMB {
		t.Errorf("HashSizeMB() = %d after Reset, want %d", got, DefaultHashSizeMB)
	}
}

func TestClose(t *testing.T) {
	s, err := New(WithSeed(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
	if err := s.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() = %v, want ErrClosed", err)
	}

	if _, err := s.BestMove(context.Background(), startposFEN, Limits{Depth: 2}); !errors.Is(err, ErrClosed) {
		t.Errorf("BestMove() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.Evaluate(startposFEN); !errors.Is(err, ErrClosed) {
		t.Errorf("Evaluate() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.LegalMoves(startposFEN); !errors.Is(err, ErrClosed) {
		t.Errorf("LegalMoves() after Close error = %v, want ErrClosed", err)
	}
}

func TestWithSkillLevel_Clamps(t *testing.T) {
	s := newTestSession(t, WithSkillLevel(99))
	if got := s.SkillLevel(); got != DefaultSkillLevel {
		t.Errorf("SkillLevel() = %d, want clamped to %d", got, DefaultSkillLevel)
	}

	weak := newTestSession(t, WithSkillLevel(-5))
	if got := weak.SkillLevel(); got != 0 {
		t.Errorf("SkillLevel() = %d, want clamped to 0", got)
	}
}
