// Package main provides the CLI for the leapui design compiler.
package main

import (
	"os"

	"github.com/leapstack-labs/leapui/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
