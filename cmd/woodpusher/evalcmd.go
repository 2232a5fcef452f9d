package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [FEN]",
	Short: "Print the static evaluation of a position",
	Long: `Print the static evaluation of a position in pawn units,
positive favoring White. No search is performed.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	defer session.Close()

	score, err := session.Evaluate(args[0])
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}
	fmt.Printf("%+.2f\n", score)
	return nil
}
