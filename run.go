package doppel

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/farcloser/doppel/internal/plan"
	"github.com/farcloser/doppel/internal/sidecar"
	"github.com/farcloser/doppel/internal/synth"
	"github.com/farcloser/doppel/internal/types"
)

//nolint:gochecknoglobals // fixed namespace, effectively const
var artifactNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/farcloser/doppel/artifact"))

// Progress is called once per record, after the record is stored or has failed.
// It is called from worker goroutines and must be safe for concurrent use.
type Progress func(result FileResult)

// Run generates every record of a plan into the sink, then writes the equivalence report and optional side files.
//
// A record that fails is reported and the run continues. Structural problems (invalid plan, a path written twice,
// a report that cannot be stored) abort the run.
func Run(ctx context.Context, corpus *plan.Plan, sink Sink, opts Options, progress Progress) (*Report, error) {
	applyDefaults(&opts)

	if err := corpus.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("doppel.Run", "stage", "start", "plan", corpus.Name, "records", len(corpus.Records), "workers", opts.Workers)

	results := make([]FileResult, len(corpus.Records))
	artifacts := make([]*Artifact, len(corpus.Records))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Workers)

	for idx, record := range corpus.Records {
		group.Go(func() error {
			artifact, result, err := runRecord(groupCtx, corpus.Name, record, sink, opts)
			if err != nil {
				return err
			}

			results[idx] = result
			artifacts[idx] = artifact

			if progress != nil {
				progress(result)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	report := buildReport(corpus, results)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	if err = sink.Put(ctx, ReportFile, append(data, '\n')); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	if opts.Sidecars {
		if err = writeSidecars(ctx, corpus, artifacts, results, sink); err != nil {
			return nil, err
		}
	}

	slog.Debug("doppel.Run", "stage", "done", "created", report.Created, "failed", report.Failed)

	return report, nil
}

// runRecord only returns an error for conditions that must abort the whole run.
func runRecord(
	ctx context.Context,
	planName string,
	record plan.Record,
	sink Sink,
	opts Options,
) (*Artifact, FileResult, error) {
	result := FileResult{Output: record.Output, Group: record.Group, Status: StatusFailed}

	if err := ctx.Err(); err != nil {
		return nil, result, err
	}

	req := record.Request
	if req.Content != nil && opts.Encoder != "" {
		req.Encoder = opts.Encoder
	}

	if req.Content != nil && opts.Fallback {
		req.Fallback = true
	}

	artifact, err := Generate(ctx, req, opts)
	if err != nil {
		slog.Debug("doppel.Run", "stage", "generate", "output", record.Output, "error", err)

		result.Error = err.Error()

		return nil, result, nil
	}

	if err = sink.Put(ctx, record.Output, artifact.Data); err != nil {
		if errors.Is(err, types.ErrPathReuse) {
			return nil, result, err
		}

		slog.Debug("doppel.Run", "stage", "store", "output", record.Output, "error", err)

		result.Error = err.Error()

		return nil, result, nil
	}

	sum := sha256.Sum256(artifact.Data)

	result.Status = StatusCreated
	result.Size = len(artifact.Data)
	result.SHA256 = hex.EncodeToString(sum[:])
	result.ID = uuid.NewSHA1(artifactNamespace, []byte(planName+"/"+record.Output+"/"+result.SHA256)).String()
	result.Format = artifact.Format
	result.Encoder = string(artifact.Encoder)
	result.StandIn = artifact.StandIn
	result.Fallback = artifact.FallbackReason
	result.Duration = artifact.Duration

	return artifact, result, nil
}

func buildReport(corpus *plan.Plan, results []FileResult) *Report {
	report := &Report{Plan: corpus.Name, Files: results}

	index := map[string]int{}

	for _, label := range corpus.Groups() {
		index[label] = len(report.Groups)
		report.Groups = append(report.Groups, EquivalenceGroup{Label: label, Files: []string{}})
	}

	for idx, result := range results {
		if result.Status != StatusCreated {
			report.Failed++

			continue
		}

		report.Created++

		grp := &report.Groups[index[result.Group]]
		grp.Files = append(grp.Files, result.Output)

		if content := corpus.Records[idx].Request.Content; content != nil && grp.ContentKey == "" {
			grp.ContentKey = synth.Resolve(*content).Key()
		}
	}

	return report
}

func writeSidecars(
	ctx context.Context,
	corpus *plan.Plan,
	artifacts []*Artifact,
	results []FileResult,
	sink Sink,
) error {
	var tracks []sidecar.Track

	for idx, artifact := range artifacts {
		if artifact == nil || artifact.Medium == types.MediumNone {
			continue
		}

		record := corpus.Records[idx]

		tracks = append(tracks, sidecar.Track{
			Path:     record.Output,
			Group:    record.Group,
			Title:    record.DisplayTitle(),
			Format:   artifact.Format,
			Duration: artifact.Duration,
			Width:    artifact.Width,
			Height:   artifact.Height,
			Rate:     artifact.Rate,
			Size:     results[idx].Size,
		})
	}

	files := sidecar.Files(tracks)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		if err := sink.Put(ctx, name, files[name]); err != nil {
			return fmt.Errorf("writing side file: %w", err)
		}
	}

	return nil
}
