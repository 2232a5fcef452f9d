package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/woodpusher"
)

var (
	// Global flags.
	skillLevel int
	hashSizeMB int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "woodpusher",
	Short: "Chess engine: best moves and evaluations from FEN positions",
	Long: `Woodpusher is a CLI front end for the woodpusher chess engine.

It takes positions in FEN notation and produces best moves, static
evaluations, legal move lists, and perft counts.

Examples:
  # Best move from the starting position, 6 plies deep
  woodpusher analyze "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" --depth 6

  # Static evaluation
  woodpusher eval "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

  # Legal moves
  woodpusher moves "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"`,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&skillLevel, "skill", "s", woodpusher.DefaultSkillLevel, "skill level, 0-20")
	rootCmd.PersistentFlags().IntVar(&hashSizeMB, "hash-mb", woodpusher.DefaultHashSizeMB, "transposition table size in MiB")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newSession builds a session from the global flags.
func newSession() (*woodpusher.Session, error) {
	opts := []woodpusher.Option{
		woodpusher.WithSkillLevel(skillLevel),
		woodpusher.WithHashSizeMB(hashSizeMB),
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
		opts = append(opts, woodpusher.WithLogger(logger))
	}
	return woodpusher.New(opts...)
}
