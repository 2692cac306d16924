//nolint:tagliatelle
package doppel

import (
	"context"
	"runtime"
	"time"

	"github.com/farcloser/doppel/internal/integration/ffmpeg"
	"github.com/farcloser/doppel/internal/types"
)

// ReportFile is the corpus-relative path of the equivalence report.
const ReportFile = "equivalence.json"

// Sink stores generated files. Paths are corpus-relative and slash separated.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Options configures generation.
type Options struct {
	// Workers bounds concurrent record generation (default: number of CPUs).
	Workers int
	// FFmpegTimeout bounds a single external encode (default: 60s).
	FFmpegTimeout time.Duration
	// Encoder, when set, overrides the encoder of every content record.
	Encoder types.EncoderKind
	// Fallback, when set, allows the stand-in on every content record whose real encoder fails.
	Fallback bool
	// Sidecars enables metadata and playlist files.
	Sidecars bool
}

// DefaultOptions returns the options used by the CLI when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Workers:       runtime.NumCPU(),
		FFmpegTimeout: ffmpeg.DefaultTimeout,
		Sidecars:      true,
	}
}

func applyDefaults(opts *Options) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	if opts.FFmpegTimeout <= 0 {
		opts.FFmpegTimeout = ffmpeg.DefaultTimeout
	}
}

// Artifact is the encoded output of a single request.
type Artifact struct {
	Data []byte
	// Format is the label the file carries (its extension).
	Format  string
	Encoder types.EncoderKind
	// StandIn is set when the bytes are not a real encoding of Format (eg: WAV bytes labeled mp3).
	StandIn bool
	// FallbackReason is the real encoder failure that led to the stand-in, if any.
	FallbackReason string
	// Signal properties, zero for synthetic binaries.
	Medium   types.Medium
	Units    int
	Rate     int
	Width    int
	Height   int
	Duration float64
}

// Status of one output.
type Status string

const (
	StatusCreated Status = "created"
	StatusFailed  Status = "failed"
)

// FileResult records what happened to one plan record.
type FileResult struct {
	Output   string  `json:"output"`
	Group    string  `json:"group"`
	Status   Status  `json:"status"`
	ID       string  `json:"id,omitempty"`
	Size     int     `json:"size,omitempty"`
	SHA256   string  `json:"sha256,omitempty"`
	Format   string  `json:"format,omitempty"`
	Encoder  string  `json:"encoder,omitempty"`
	StandIn  bool    `json:"stand_in,omitempty"`
	Fallback string  `json:"fallback,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// EquivalenceGroup lists the files a correct detector must group together.
type EquivalenceGroup struct {
	Label string `json:"label"`
	// ContentKey is the identity of the unperturbed content, empty for synthetic binaries.
	ContentKey string   `json:"content_key,omitempty"`
	Files      []string `json:"files"`
}

// Report is the oracle written as ReportFile.
type Report struct {
	Plan    string             `json:"plan"`
	Groups  []EquivalenceGroup `json:"groups"`
	Files   []FileResult       `json:"files"`
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
}
