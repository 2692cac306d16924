//nolint:wrapcheck
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/doppel"
)

var errVerifyFailed = errors.New("corpus does not match its report")

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Re-hash a generated corpus against its equivalence report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Corpus directory (overrides output.dir)",
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

			store, location, err := openSink(ctx, cfg)
			if err != nil {
				return err
			}

			return runVerify(ctx, store, location)
		},
	}
}

func runVerify(ctx context.Context, store corpusSink, location string) error {
	raw, err := store.Get(ctx, doppel.ReportFile)
	if err != nil {
		return err
	}

	var report doppel.Report
	if err = json.Unmarshal(raw, &report); err != nil {
		return fmt.Errorf("parsing report: %w", err)
	}

	var checked, missing, modified int

	for _, file := range report.Files {
		if file.Status != doppel.StatusCreated {
			continue
		}

		checked++

		data, err := store.Get(ctx, file.Output)
		if err != nil {
			missing++

			fmt.Fprintf(os.Stdout, "MISSING  %s\n", file.Output)

			continue
		}

		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != file.SHA256 {
			modified++

			fmt.Fprintf(os.Stdout, "MODIFIED %s\n", file.Output)
		}
	}

	fmt.Fprintf(os.Stdout, "Plan:     %s (%s)\n", report.Plan, location)
	fmt.Fprintf(os.Stdout, "Groups:   %d\n", len(report.Groups))
	fmt.Fprintf(os.Stdout, "Checked:  %d\n", checked)
	fmt.Fprintf(os.Stdout, "Missing:  %d\n", missing)
	fmt.Fprintf(os.Stdout, "Modified: %d\n", modified)

	if missing+modified > 0 {
		return fmt.Errorf("%w: %d missing, %d modified", errVerifyFailed, missing, modified)
	}

	return nil
}
