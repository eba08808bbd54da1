package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"fanpulse/internal/cmd/flags"
	"fanpulse/internal/metrics"
	"fanpulse/internal/nats"
	"fanpulse/internal/persistence"
	"fanpulse/internal/persistence/events"
	"fanpulse/internal/tracker"
)

var trackerCmd = &cli.Command{
	Name:  "tracker",
	Usage: "Consume tracked interactions from NATS JetStream and persist them",
	Flags: []cli.Flag{
		flags.DatabaseURL,
		flags.MetricsListen,
		flags.NATSUrl,
		flags.InitNATS,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			nats.Provide(),
			pal.Provide(&events.Repository{}),
			pal.Provide(&tracker.Tracker{}),
			pal.Provide(&metrics.Server{}),
		)
	},
}
