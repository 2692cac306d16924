//nolint:wrapcheck
package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/doppel/internal/inspect"
)

var errNoFiles = errors.New("expected at least one file")

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Describe what corpus files actually contain",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return errNoFiles
			}

			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			summaries := make([]*inspect.Summary, 0, cmd.NArg())

			for _, filePath := range cmd.Args().Slice() {
				summary, err := inspect.File(ctx, filePath, cfg.FFmpeg.Timeout)
				if err != nil {
					return err
				}

				summaries = append(summaries, summary)
			}

			return outputSummaries(summaries, cmd.String("format"))
		},
	}
}
