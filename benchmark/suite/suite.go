// Package suite loads test-position suites for strength benchmarking.
//
// Suites use EPD (Extended Position Description): one position per
// line, the four FEN board fields followed by optional opcodes such as
// `bm Nf3;` or `id "WAC.001";`. Files ending in .zst are decompressed
// transparently.
package suite

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrEmptySuite is returned when a suite file contains no positions.
var ErrEmptySuite = errors.New("suite: no positions")

// Position is one test position from a suite.
type Position struct {
	ID  string // From the `id` opcode, or "" when absent.
	FEN string // Full six-field FEN.
}

// Load reads a suite from an EPD file. Files with a .zst suffix are
// decompressed with zstd before parsing.
func Load(path string) ([]Position, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening suite: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer decoder.Close()
		reader = decoder
	}

	positions, err := Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return positions, nil
}

// Parse reads EPD records from r, one per line. Blank lines and lines
// starting with '#' are skipped.
func Parse(r io.Reader) ([]Position, error) {
	var positions []Position

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		pos, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		positions = append(positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}
	if len(positions) == 0 {
		return nil, ErrEmptySuite
	}
	return positions, nil
}

// parseLine splits one EPD record into the four board fields and the
// opcode tail. EPD has no move clocks, so default ones are appended to
// form a full FEN.
func parseLine(text string) (Position, error) {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("expected at least 4 FEN fields, got %d", len(fields))
	}

	fen := strings.Join(fields[:4], " ") + " 0 1"
	return Position{
		ID:  opcodeID(strings.Join(fields[4:], " ")),
		FEN: fen,
	}, nil
}

// opcodeID extracts the quoted operand of the `id` opcode, if present.
func opcodeID(tail string) string {
	for _, op := range strings.Split(tail, ";") {
		op = strings.TrimSpace(op)
		rest, ok := strings.CutPrefix(op, "id ")
		if !ok {
			continue
		}
		return strings.Trim(strings.TrimSpace(rest), `"`)
	}
	return ""
}

// Default returns a small built-in suite covering the opening, middle
// game, endgame, and tactical motifs. It keeps the bench CLI usable
// without an external EPD file.
func Default() []Position {
	return []Position{
		{ID: "startpos", FEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{ID: "italian", FEN: "r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"},
		{ID: "sicilian-najdorf", FEN: "rnbqkb1r/1p2pppp/p2p1n2/8/3NP3/2N5/PPP2PPP/R1BQKB1R w KQkq - 0 6"},
		{ID: "kiwipete", FEN: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
		{ID: "middlegame-iqp", FEN: "r2q1rk1/pp2bppp/2n1bn2/8/3p4/1B3N2/PPPN1PPP/R1BQR1K1 w - - 0 12"},
		{ID: "fork-e5", FEN: "r1bqkb1r/pppp1ppp/2n2n2/4p3/4P3/2N2N2/PPPP1PPP/R1BQKB1R w KQkq - 4 4"},
		{ID: "rook-endgame", FEN: "8/5pk1/6p1/8/3R4/6P1/5PK1/3r4 w - - 0 40"},
		{ID: "kp-endgame", FEN: "8/8/4k3/8/4P3/4K3/8/8 w - - 0 50"},
		{ID: "queen-vs-rook", FEN: "8/8/3k4/8/3Q4/8/3K4/5r2 w - - 0 60"},
		{ID: "back-rank", FEN: "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 30"},
	}
}
