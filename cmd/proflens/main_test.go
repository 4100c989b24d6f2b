package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	run := func(level string) error {
		app := &cli.App{
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
		return app.Run([]string{"proflens", "--log-level", level})
	}

	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		t.Run(level, func(t *testing.T) {
			assert.NoError(t, run(level))
		})
	}

	t.Run("invalid level", func(t *testing.T) {
		err := run("loud")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
