//nolint:wrapcheck
package main

import (
	"errors"
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/doppel"
	"github.com/farcloser/doppel/internal/inspect"
	"github.com/farcloser/doppel/internal/output"
)

var errUnexpectedArgs = errors.New("unexpected arguments")

// outputReport prints the groups of a run; the per-file detail is in the report file itself.
func outputReport(report *doppel.Report, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	meta := output.ReportToMap(report)
	delete(meta, "files")

	return formatter.PrintAll([]*format.Data{{Object: report.Plan, Meta: meta}}, os.Stdout)
}

func outputSummaries(summaries []*inspect.Summary, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := make([]*format.Data, 0, len(summaries))
	for _, summary := range summaries {
		data = append(data, &format.Data{Object: summary.Path, Meta: output.SummaryToMap(summary)})
	}

	return formatter.PrintAll(data, os.Stdout)
}
