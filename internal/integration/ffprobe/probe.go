//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/doppel/internal/integration/binary"
)

// Result contains the marshalled output of ffprobe.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream holds the per-stream fields we report for both audio and video.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"` // h264, flac, mp3
	CodecType  string `json:"codec_type"` // audio, video
	SampleRate string `json:"sample_rate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
	Duration   string `json:"duration,omitempty"`
	BitRate    string `json:"bit_rate,omitempty"`
	NbFrames   string `json:"nb_frames,omitempty"`

	// Video only. RFrameRate is "0/0" for audio streams.
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	PixFmt     string `json:"pix_fmt,omitempty"`
	RFrameRate string `json:"r_frame_rate,omitempty"`
}

// FrameRate evaluates RFrameRate ("10/1") and returns 0 when it is absent or degenerate.
func (s Stream) FrameRate() float64 {
	num, den, found := strings.Cut(s.RFrameRate, "/")
	if !found {
		return 0
	}

	n, errN := strconv.ParseFloat(num, 64)
	d, errD := strconv.ParseFloat(den, 64)

	if errN != nil || errD != nil || d == 0 {
		return 0
	}

	return n / d
}

// Format represents container-level information.
type Format struct {
	Filename   string `json:"filename"`
	NbStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"` // e.g. "mov,mp4,m4a,3gp,3g2,mj2"
	Duration   string `json:"duration,omitempty"`
	Size       string `json:"size,omitempty"`
	ProbeScore int    `json:"probe_score"`
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string, timeout time.Duration) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, err := binary.Require(name)
	if err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	var result Result
	if err = json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}
