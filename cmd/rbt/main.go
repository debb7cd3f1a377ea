// Package main provides the entry point for the rbt CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/speckJ8/graph-algorithms/cmd/rbt/commands"
)

const exitInvariantViolation = 2

func main() {
	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if errors.Is(err, commands.ErrInvariantViolation) {
			os.Exit(exitInvariantViolation)
		}

		os.Exit(1)
	}
}
