//nolint:wrapcheck
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/doppel/internal/plan"
)

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Print the built-in plan, or validate a plan file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "check",
				Usage: "Validate this plan file instead of printing the built-in one",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 0 {
				return fmt.Errorf("%w: got %d", errUnexpectedArgs, cmd.NArg())
			}

			if cmd.IsSet("check") {
				corpus, err := plan.Load(cmd.String("check"))
				if err != nil {
					return err
				}

				if err = corpus.Validate(); err != nil {
					return err
				}

				fmt.Fprintf(os.Stdout, "Plan %q is valid: %d records in %d groups\n",
					corpus.Name, len(corpus.Records), len(corpus.Groups()))

				return nil
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			return encoder.Encode(plan.Default())
		},
	}
}
