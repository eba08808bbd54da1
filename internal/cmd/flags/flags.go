package flags

import (
	"fmt"
	"slices"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var DatabaseURL = &cli.StringFlag{
	Name:    "database-url",
	Aliases: []string{"d"},
	Usage:   "The postgres connection string",
	Value:   "postgres://localhost:5432/fanpulse?sslmode=disable",
	Sources: cli.EnvVars("DATABASE_URL"),
}

var Listen = &cli.StringFlag{
	Name:    "listen",
	Usage:   "The address the API server listens on",
	Value:   ":8888",
	Sources: cli.EnvVars("LISTEN"),
}

var MetricsListen = &cli.StringFlag{
	Name:    "metrics-listen",
	Usage:   "The address the metrics server listens on",
	Value:   ":8080",
	Sources: cli.EnvVars("METRICS_LISTEN"),
}

var NATSUrl = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var InitNATS = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize the NATS server: create streams, consumers, etc.",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var NotifyURL = &cli.StringFlag{
	Name:    "notify-url",
	Usage:   "Webhook URL for outbound notifications, empty disables delivery",
	Sources: cli.EnvVars("NOTIFY_URL"),
}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}
