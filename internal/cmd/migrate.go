package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"fanpulse/internal/cmd/flags"
	"fanpulse/internal/persistence"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the database schema",
	Flags: []cli.Flag{
		flags.DatabaseURL,
	},
	Commands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply all pending migrations",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c,
					pal.Provide(&persistence.DB{}),
					pal.Provide(&persistence.Migrator{}),
					pal.Provide(&migrateRunner{direction: "up"}),
				)
			},
		},
		{
			Name:  "down",
			Usage: "Roll back the latest migration",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c,
					pal.Provide(&persistence.DB{}),
					pal.Provide(&persistence.Migrator{}),
					pal.Provide(&migrateRunner{direction: "down"}),
				)
			},
		},
	},
}

type migrateRunner struct {
	Migrator *persistence.Migrator

	direction string
}

func (m *migrateRunner) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (m *migrateRunner) Run(ctx context.Context) error {
	if m.direction == "down" {
		return m.Migrator.Down(ctx)
	}
	return m.Migrator.Up(ctx)
}
