// Package main is the entry point for the pipebard daemon.
package main

import (
	"os"

	"github.com/pipebar-io/pipebar/internal/daemon/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
