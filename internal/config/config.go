package config

// Config carries the runtime settings shared by all commands. Fields are
// bound from cli flags (and their env-var sources) via pkg/clicfg.
type Config struct {
	DatabaseURL string `flag:"database-url"`

	Listen        string `flag:"listen"`
	MetricsListen string `flag:"metrics-listen"`

	NATSURL  string `flag:"nats-url"`
	NATSInit bool   `flag:"nats-init"`

	NotifyURL string `flag:"notify-url"`

	LogLevel string `flag:"log-level"`
}
