//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/doppel"
	"github.com/farcloser/doppel/internal/plan"
)

var errRecordsFailed = errors.New("some records failed")

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a corpus and its equivalence report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "plan",
				Aliases: []string{"p"},
				Usage:   "Plan file (JSON with comments); the built-in corpus when omitted",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (overrides output.dir)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers (overrides run.workers)",
			},
			&cli.StringFlag{
				Name:  "encoder",
				Usage: "Force the encoder of every content record: standin, ffmpeg",
			},
			&cli.BoolFlag{
				Name:  "fallback",
				Usage: "Write the stand-in when the real encoder is unavailable",
			},
			&cli.DurationFlag{
				Name:  "ffmpeg-timeout",
				Usage: "Bound on a single ffmpeg encode",
			},
			&cli.BoolFlag{
				Name:  "no-sidecars",
				Usage: "Do not write metadata and playlist files",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit with an error if any record failed",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Summary format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 0 {
				return fmt.Errorf("%w: got %d", errUnexpectedArgs, cmd.NArg())
			}

			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			corpus := plan.Default()
			if cmd.IsSet("plan") {
				if corpus, err = plan.Load(cmd.String("plan")); err != nil {
					return err
				}
			}

			store, location, err := openSink(ctx, cfg)
			if err != nil {
				return err
			}

			return runGenerate(ctx, cmd, corpus, store, location, options(cfg))
		},
	}
}

func runGenerate(
	ctx context.Context,
	cmd *cli.Command,
	corpus *plan.Plan,
	store doppel.Sink,
	location string,
	opts doppel.Options,
) error {
	fmt.Fprintf(os.Stderr, "Generating %d files from plan %q (%d workers)\n", len(corpus.Records), corpus.Name, opts.Workers)

	startTime := time.Now()
	total := len(corpus.Records)

	var progress atomic.Int64

	report, err := doppel.Run(ctx, corpus, store, opts, func(result doppel.FileResult) {
		done := progress.Add(1)

		if result.Status == doppel.StatusCreated {
			fmt.Fprintf(os.Stderr, "[%d/%d] created %s\n", done, total, result.Output)
		} else {
			fmt.Fprintf(os.Stderr, "[%d/%d] failed %s: %s\n", done, total, result.Output, result.Error)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d of %d files created in %s (%d failed)\n",
		report.Created, total, time.Since(startTime).Truncate(time.Millisecond), report.Failed)
	fmt.Fprintf(os.Stderr, "Report written to %s/%s\n", location, doppel.ReportFile)

	if err = outputReport(report, cmd.String("format")); err != nil {
		return err
	}

	if cmd.Bool("strict") && report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errRecordsFailed, report.Failed, total)
	}

	return nil
}
