package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/budgets/cmd/app/commands"
	"github.com/allisson/budgets/internal/app"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getBudgetCommands()...)
	cmds = append(cmds, getItemCommands()...)
	return cmds
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Output format: 'text' or 'json'",
	}
}

func idFlag(usage string) *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    usage,
	}
}

// requireKey loads (or creates) the key file so a corrupt key stops the command
// before the store is touched.
func requireKey(ctx context.Context, container *app.Container) error {
	_, err := container.Key(ctx)
	return err
}
