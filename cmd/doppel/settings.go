//nolint:wrapcheck
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/doppel"
	"github.com/farcloser/doppel/internal/config"
	"github.com/farcloser/doppel/internal/sink"
	"github.com/farcloser/doppel/internal/types"
)

// corpusSink is what the commands need from a sink: writing for generate, reading for verify.
type corpusSink interface {
	doppel.Sink
	Get(ctx context.Context, name string) ([]byte, error)
}

// setupLogging installs charmbracelet/log as the slog handler, before any command runs.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	levelName := cfg.Log.Level
	if cmd.IsSet("log-level") {
		levelName = cmd.String("log-level")
	}

	level, err := log.ParseLevel(levelName)
	if err != nil {
		return ctx, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
	})

	slog.SetDefault(slog.New(logger))

	return ctx, nil
}

// loadSettings reads the configuration, then applies the flags the user actually set.
func loadSettings(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("output") {
		cfg.Output.Dir = cmd.String("output")
	}

	if cmd.IsSet("workers") {
		cfg.Run.Workers = cmd.Int("workers")
	}

	if cmd.IsSet("encoder") {
		cfg.Run.Encoder = types.EncoderKind(cmd.String("encoder"))
	}

	if cmd.IsSet("fallback") {
		cfg.Run.Fallback = cmd.Bool("fallback")
	}

	if cmd.IsSet("no-sidecars") {
		cfg.Output.Sidecars = !cmd.Bool("no-sidecars")
	}

	if cmd.IsSet("ffmpeg-timeout") {
		cfg.FFmpeg.Timeout = cmd.Duration("ffmpeg-timeout")
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func openSink(ctx context.Context, cfg *config.Config) (corpusSink, string, error) {
	if cfg.S3.Enabled() {
		bucket, err := sink.NewBucket(ctx, sink.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, "", err
		}

		return bucket, "s3://" + cfg.S3.Bucket + "/" + cfg.S3.Prefix, nil
	}

	dir, err := sink.NewDir(cfg.Output.Dir)
	if err != nil {
		return nil, "", err
	}

	return dir, dir.Root(), nil
}

func options(cfg *config.Config) doppel.Options {
	return doppel.Options{
		Workers:       cfg.Run.Workers,
		FFmpegTimeout: cfg.FFmpeg.Timeout,
		Encoder:       cfg.Run.Encoder,
		Fallback:      cfg.Run.Fallback,
		Sidecars:      cfg.Output.Sidecars,
	}
}
