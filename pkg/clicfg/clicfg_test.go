package clicfg_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"fanpulse/pkg/clicfg"
)

type testConfig struct {
	URL     string `flag:"url"`
	Verbose bool   `flag:"verbose"`
	Port    int    `flag:"port"`

	Ignored string
	hidden  string
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	var cfg testConfig

	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url"},
			&cli.BoolFlag{Name: "verbose"},
			&cli.IntFlag{Name: "port", Value: 8080},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, &cfg)
		},
	}

	err := cmd.Run(t.Context(), []string{"test", "--url", "postgres://x", "--verbose"})
	require.NoError(t, err)

	require.Equal(t, "postgres://x", cfg.URL)
	require.True(t, cfg.Verbose)
	require.Equal(t, 8080, cfg.Port)
	require.Empty(t, cfg.Ignored)
	require.Empty(t, cfg.hidden)
}

func TestParseFlagsRejectsNonPointer(t *testing.T) {
	t.Parallel()

	err := clicfg.ParseFlags(&cli.Command{}, testConfig{})
	require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)

	v := 42
	err = clicfg.ParseFlags(&cli.Command{}, &v)
	require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)
}
