package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/woodpusher/internal/board"
	"github.com/discochess/woodpusher/internal/movegen"
)

var perftCmd = &cobra.Command{
	Use:   "perft [FEN]",
	Short: "Count legal move tree leaves to a fixed depth",
	Long: `Count the leaf nodes of the legal move tree to the given depth.

Perft counts for standard positions are published, so this command is
the quickest way to validate move generation against a known total.`,
	Args: cobra.ExactArgs(1),
	RunE: runPerft,
}

var (
	perftDepth  int
	perftDivide bool
)

func init() {
	perftCmd.Flags().IntVarP(&perftDepth, "depth", "d", 4, "perft depth in plies")
	perftCmd.Flags().BoolVar(&perftDivide, "divide", false, "show per-root-move counts")
	rootCmd.AddCommand(perftCmd)
}

func runPerft(cmd *cobra.Command, args []string) error {
	pos, err := board.ParseFEN(args[0])
	if err != nil {
		return fmt.Errorf("parsing FEN: %w", err)
	}

	start := time.Now()
	if perftDivide {
		counts := movegen.Divide(&pos, perftDepth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		var total uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			total += counts[m]
		}
		fmt.Printf("total: %d (%v)\n", total, time.Since(start))
		return nil
	}

	nodes := movegen.Perft(&pos, perftDepth)
	fmt.Printf("perft(%d) = %d (%v)\n", perftDepth, nodes, time.Since(start))
	return nil
}
