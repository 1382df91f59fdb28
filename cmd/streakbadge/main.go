// Package main is the entry point for the streakbadge CLI.
package main

import (
	"os"

	"github.com/streakbadge-io/streakbadge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
