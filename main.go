// pgquill – natural language to PostgreSQL queries, powered by AI.
//
// Entry point: initializes the Cobra root command and launches the
// Bubble Tea session by default (no subcommand required).
package main

import (
	"fmt"
	"os"

	"github.com/pgquill/pgquill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
