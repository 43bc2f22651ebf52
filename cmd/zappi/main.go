// Package main is the entry point for the zappi CLI.
package main

import (
	"os"

	"github.com/thoreinstein/zappi/cmd/zappi/commands"
	"github.com/thoreinstein/zappi/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(errors.CodeOf(err))
	}
}
