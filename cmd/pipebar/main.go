// Package main is the entry point for the pipebar CLI.
package main

import (
	"os"

	"github.com/pipebar-io/pipebar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
