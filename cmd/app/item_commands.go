package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/budgets/cmd/app/commands"
	"github.com/allisson/budgets/internal/app"
	"github.com/allisson/budgets/internal/config"
)

func budgetIDFlag() *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:     "budget-id",
		Aliases:  []string{"b"},
		Required: true,
		Usage:    "Budget ID",
	}
}

func getItemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "item",
			Usage: "Manage the encrypted items of a budget",
			Commands: []*cli.Command{
				{
					Name:  "add",
					Usage: "Add an item to a budget",
					Flags: []cli.Flag{
						budgetIDFlag(),
						&cli.StringFlag{
							Name:     "description",
							Aliases:  []string{"d"},
							Required: true,
							Usage:    "Item description",
						},
						&cli.StringFlag{
							Name:     "amount",
							Aliases:  []string{"a"},
							Required: true,
							Usage:    "Item amount as a decimal number (e.g., 3.50)",
						},
						formatFlag(),
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						itemUseCase, err := container.ItemUseCase(ctx)
						if err != nil {
							return err
						}

						return commands.RunAddItem(
							ctx,
							itemUseCase,
							container.Logger(),
							commands.DefaultIO().Writer,
							cmd.Int64("budget-id"),
							cmd.String("description"),
							cmd.String("amount"),
							cmd.String("format"),
						)
					},
				},
				{
					Name:  "list",
					Usage: "List the decrypted items of a budget with their total",
					Flags: []cli.Flag{budgetIDFlag(), formatFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						itemUseCase, err := container.ItemUseCase(ctx)
						if err != nil {
							return err
						}

						return commands.RunListItems(
							ctx,
							itemUseCase,
							container.Logger(),
							commands.DefaultIO().Writer,
							cmd.Int64("budget-id"),
							cmd.String("format"),
						)
					},
				},
				{
					Name:  "update",
					Usage: "Change the description and/or amount of an item",
					Flags: []cli.Flag{
						idFlag("Item ID"),
						&cli.StringFlag{
							Name:    "description",
							Aliases: []string{"d"},
							Usage:   "New description (unchanged when omitted)",
						},
						&cli.StringFlag{
							Name:    "amount",
							Aliases: []string{"a"},
							Usage:   "New amount (unchanged when omitted)",
						},
						formatFlag(),
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						itemUseCase, err := container.ItemUseCase(ctx)
						if err != nil {
							return err
						}

						return commands.RunUpdateItem(
							ctx,
							itemUseCase,
							container.Logger(),
							commands.DefaultIO().Writer,
							cmd.Int64("id"),
							optionalString(cmd, "description"),
							optionalString(cmd, "amount"),
							cmd.String("format"),
						)
					},
				},
				{
					Name:  "delete",
					Usage: "Delete a single item",
					Flags: []cli.Flag{idFlag("Item ID"), formatFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						itemUseCase, err := container.ItemUseCase(ctx)
						if err != nil {
							return err
						}

						return commands.RunDeleteItem(
							ctx,
							itemUseCase,
							container.Logger(),
							commands.DefaultIO().Writer,
							cmd.Int64("id"),
							cmd.String("format"),
						)
					},
				},
			},
		},
	}
}

// optionalString returns nil for a flag that was not given on the command line,
// so an explicit empty value can be told apart from an omitted one.
func optionalString(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	value := cmd.String(name)
	return &value
}
