package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"fanpulse/internal/api"
	"fanpulse/internal/cmd/flags"
	"fanpulse/internal/engagement"
	"fanpulse/internal/fans"
	"fanpulse/internal/feed"
	"fanpulse/internal/metrics"
	"fanpulse/internal/nats"
	"fanpulse/internal/notify"
	"fanpulse/internal/persistence"
	"fanpulse/internal/persistence/comments"
	"fanpulse/internal/persistence/fanstatus"
	"fanpulse/internal/persistence/posts"
	"fanpulse/internal/persistence/reactions"
	"fanpulse/internal/persistence/subscriptions"
	"fanpulse/internal/persistence/users"
)

var serverCmd = &cli.Command{
	Name:  "server",
	Usage: "Run the REST API, the scoring engines and the metrics server",
	Flags: []cli.Flag{
		flags.DatabaseURL,
		flags.Listen,
		flags.MetricsListen,
		flags.NATSUrl,
		flags.InitNATS,
		flags.NotifyURL,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			nats.Provide(),
			pal.Provide(&notify.Webhook{}),

			pal.Provide(&users.Repository{}),
			pal.Provide(&posts.Repository{}),
			pal.Provide(&reactions.Repository{}),
			pal.Provide(&comments.Repository{}),
			pal.Provide(&fanstatus.Repository{}),
			pal.Provide(&subscriptions.Repository{}),

			pal.Provide(&feed.Builder{}),
			pal.Provide(&fans.Engine{}),
			pal.Provide(&engagement.Reactions{}),
			pal.Provide(&engagement.Comments{}),

			pal.Provide(&api.Handlers{}),
			pal.Provide(&api.Server{}),
			pal.Provide(&metrics.Collector{}),
			pal.Provide(&metrics.Server{}),
		)
	},
}
