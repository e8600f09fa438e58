package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/budgets/cmd/app/commands"
	"github.com/allisson/budgets/internal/app"
	"github.com/allisson/budgets/internal/config"
)

func getBudgetCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "budget",
			Usage: "Manage budgets",
			Commands: []*cli.Command{
				{
					Name:  "create",
					Usage: "Create a new budget with a unique name",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "name",
							Aliases:  []string{"n"},
							Required: true,
							Usage:    "Unique budget name",
						},
						formatFlag(),
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						if err := requireKey(ctx, container); err != nil {
							return err
						}

						budgetUseCase, err := container.BudgetUseCase()
						if err != nil {
							return err
						}

						return commands.RunCreateBudget(
							ctx,
							budgetUseCase,
							container.Logger(),
							commands.DefaultIO().Writer,
							cmd.String("name"),
							cmd.String("format"),
						)
					},
				},
				{
					Name:  "list",
					Usage: "List all budgets",
					Flags: []cli.Flag{formatFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						if err := requireKey(ctx, container); err != nil {
							return err
						}

						budgetUseCase, err := container.BudgetUseCase()
						if err != nil {
							return err
						}

						return commands.RunListBudgets(
							ctx,
							budgetUseCase,
							container.Logger(),
							commands.DefaultIO().Writer,
							cmd.String("format"),
						)
					},
				},
				{
					Name:  "rename",
					Usage: "Rename an existing budget",
					Flags: []cli.Flag{
						idFlag("Budget ID"),
						&cli.StringFlag{
							Name:     "name",
							Aliases:  []string{"n"},
							Required: true,
							Usage:    "New unique budget name",
						},
						formatFlag(),
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						if err := requireKey(ctx, container); err != nil {
							return err
						}

						budgetUseCase, err := container.BudgetUseCase()
						if err != nil {
							return err
						}

						return commands.RunRenameBudget(
							ctx,
							budgetUseCase,
							container.Logger(),
							commands.DefaultIO().Writer,
							cmd.Int64("id"),
							cmd.String("name"),
							cmd.String("format"),
						)
					},
				},
				{
					Name:  "delete",
					Usage: "Delete a budget and all of its items",
					Flags: []cli.Flag{
						idFlag("Budget ID"),
						&cli.BoolFlag{
							Name:    "yes",
							Aliases: []string{"y"},
							Value:   false,
							Usage:   "Skip the confirmation prompt",
						},
						formatFlag(),
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Shutdown(ctx) }()

						if err := requireKey(ctx, container); err != nil {
							return err
						}

						budgetUseCase, err := container.BudgetUseCase()
						if err != nil {
							return err
						}

						return commands.RunDeleteBudget(
							ctx,
							budgetUseCase,
							container.Logger(),
							commands.DefaultIO(),
							cmd.Int64("id"),
							cmd.Bool("yes"),
							cmd.String("format"),
						)
					},
				},
			},
		},
	}
}
