package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/woodpusher"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FEN]",
	Short: "Search a position for the best move",
	Long: `Search a chess position, given in FEN notation, for the best move.

The search runs to the requested depth, the time budget, or both,
whichever bound is hit first.

Examples:
  # Fixed depth
  woodpusher analyze "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" --depth 8

  # Time budget
  woodpusher analyze "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3" --movetime 2s`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeDepth    int
	analyzeMoveTime time.Duration
	analyzeJSON     bool
)

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeDepth, "depth", "d", woodpusher.DefaultDepth, "search depth in plies")
	analyzeCmd.Flags().DurationVarP(&analyzeMoveTime, "movetime", "t", 0, "search time budget (e.g. 500ms, 2s)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	defer session.Close()

	start := time.Now()
	result, err := session.BestMove(context.Background(), args[0], woodpusher.Limits{
		Depth:    analyzeDepth,
		MoveTime: analyzeMoveTime,
	})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	elapsed := time.Since(start)

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analyzeOutput(result, elapsed))
	}

	if result.Best == nil {
		if result.InCheck {
			fmt.Println("no legal moves: checkmate")
		} else {
			fmt.Println("no legal moves: stalemate")
		}
		return nil
	}
	fmt.Printf("bestmove %s\n", result.Best)
	fmt.Printf("score    %s\n", result.Score)
	fmt.Printf("depth    %d\n", result.Depth)
	fmt.Printf("nodes    %d (%.0f nodes/s)\n",
		result.Nodes, float64(result.Nodes)/elapsed.Seconds())
	return nil
}

func analyzeOutput(r *woodpusher.Result, elapsed time.Duration) map[string]any {
	out := map[string]any{
		"score":     r.Score.String(),
		"depth":     r.Depth,
		"nodes":     r.Nodes,
		"elapsedMs": elapsed.Milliseconds(),
		"inCheck":   r.InCheck,
	}
	if r.Best != nil {
		out["bestMove"] = r.Best.String()
	}
	return out
}
