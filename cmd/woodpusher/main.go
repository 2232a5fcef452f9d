// Package main provides the woodpusher CLI tool for analyzing chess
// positions with the woodpusher engine.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
