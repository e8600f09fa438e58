package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/budgets/cmd/app/commands"
	"github.com/allisson/budgets/internal/app"
	"github.com/allisson/budgets/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Load or generate the encryption key and prepare the database",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				container.Logger().Debug("starting init", slog.String("version", version))

				keyManager, err := container.KeyManager(ctx)
				if err != nil {
					return err
				}

				return commands.RunInit(
					ctx,
					keyManager,
					func() error {
						_, err := container.DB()
						return err
					},
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.KeyFile,
					cfg.DBPath,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(
					container.Logger(),
					commands.DefaultIO().Writer,
					container.DatabaseConfig(),
					cmd.String("format"),
				)
			},
		},
	}
}
