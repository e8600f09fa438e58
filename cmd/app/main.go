// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/budgets/cmd/app/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "app",
		Usage:    "Encrypted budget manager",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
