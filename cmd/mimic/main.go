// Package main is the entry point for the mimic CLI tool.
package main

import (
	"os"

	"github.com/roach88/mimic/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
