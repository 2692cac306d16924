package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/doppel/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Synthetic test corpus generator for duplicate detectors",
		Version: version.Version() + " " + version.Commit(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML settings file (DOPPEL_* environment variables also apply)",
				Sources: cli.EnvVars("DOPPEL_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error (overrides log.level)",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			generateCommand(),
			inspectCommand(),
			planCommand(),
			verifyCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
