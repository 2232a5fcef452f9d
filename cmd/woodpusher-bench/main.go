// Package main provides the woodpusher-bench CLI tool for measuring
// engine strength across skill levels.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/woodpusher/benchmark/analysis"
	"github.com/discochess/woodpusher/benchmark/strength"
	"github.com/discochess/woodpusher/benchmark/suite"
)

var (
	suiteFile      string
	skillLevels    []int
	referenceDepth int
	seed           uint64
	outputFile     string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "woodpusher-bench",
	Short: "Benchmark woodpusher strength across skill levels",
	Long: `woodpusher-bench measures how move quality degrades as the skill
level drops.

Every suite position is searched at full strength to establish the
best achievable score, then each skill level picks its move and the
centipawn loss of that move is recorded. Skill levels are compared
with non-parametric statistics.

Examples:
  # Built-in suite, a few skill levels
  woodpusher-bench run --skills 5,10,20

  # External EPD suite (supports .zst)
  woodpusher-bench run --suite wac.epd.zst --skills 0,10,20 --depth 6`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the strength benchmark",
	RunE:  runBenchmark,
}

func init() {
	runCmd.Flags().StringVarP(&suiteFile, "suite", "f", "", "EPD suite file (supports .zst; default: built-in suite)")
	runCmd.Flags().IntSliceVarP(&skillLevels, "skills", "s", []int{5, 10, 20}, "skill levels to measure")
	runCmd.Flags().IntVarP(&referenceDepth, "depth", "d", 5, "reference search depth in plies")
	runCmd.Flags().Uint64Var(&seed, "seed", 1, "seed for reproducible runs")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	positions := suite.Default()
	if suiteFile != "" {
		var err error
		positions, err = suite.Load(suiteFile)
		if err != nil {
			return err
		}
	}

	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Measuring %d skill levels over %d positions...\n",
			len(skillLevels), len(positions))
	}

	samples, err := strength.Run(context.Background(), positions, strength.Options{
		Skills:         skillLevels,
		ReferenceDepth: referenceDepth,
		Seed:           seed,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("running benchmark: %w", err)
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	return writeReport(output, positions, samples)
}

func writeReport(w io.Writer, positions []suite.Position, samples []strength.SkillSample) error {
	fmt.Fprintf(w, "Woodpusher Strength Benchmark\n")
	fmt.Fprintf(w, "=============================\n\n")
	fmt.Fprintf(w, "Positions: %d\n", len(positions))
	fmt.Fprintf(w, "Reference depth: %d\n\n", referenceDepth)

	fmt.Fprintf(w, "Centipawn loss by skill level:\n")
	fmt.Fprintf(w, "------------------------------\n\n")

	for _, sample := range samples {
		stats := analysis.Describe(sample.Losses)
		fmt.Fprintf(w, "skill %d:\n", sample.Skill)
		fmt.Fprintf(w, "  Moves measured: %d\n", stats.N)
		fmt.Fprintf(w, "  Mean loss:      %.1f cp\n", stats.Mean)
		fmt.Fprintf(w, "  Median loss:    %.1f cp\n", stats.Median)
		fmt.Fprintf(w, "  P75 loss:       %.1f cp\n", stats.P75)
		fmt.Fprintf(w, "  Max loss:       %.1f cp\n\n", stats.Max)
	}

	ladder := analysis.CompareLadder(samples, 10000, 0.95)
	if ladder == nil || len(ladder.Comparisons) == 0 {
		return nil
	}

	fmt.Fprintf(w, "Statistical Analysis (baseline: skill %d):\n", ladder.Baseline)
	fmt.Fprintf(w, "------------------------------------------\n\n")
	for _, comp := range ladder.Comparisons {
		fmt.Fprintln(w, comp.Summary())
		fmt.Fprintln(w)
	}
	return nil
}
