package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var movesCmd = &cobra.Command{
	Use:   "moves [FEN]",
	Short: "List the legal moves of a position",
	Long: `List every legal move of a position in coordinate notation.

An empty list means the game is over in that position: checkmate when
the side to move is in check, stalemate otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runMoves,
}

func init() {
	rootCmd.AddCommand(movesCmd)
}

func runMoves(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	defer session.Close()

	moves, err := session.LegalMoves(args[0])
	if err != nil {
		return fmt.Errorf("generating moves: %w", err)
	}
	if len(moves) == 0 {
		inCheck, err := session.InCheck(args[0])
		if err != nil {
			return err
		}
		if inCheck {
			fmt.Println("no legal moves: checkmate")
		} else {
			fmt.Println("no legal moves: stalemate")
		}
		return nil
	}
	fmt.Printf("%d legal moves: %s\n", len(moves), strings.Join(moves, " "))
	return nil
}
