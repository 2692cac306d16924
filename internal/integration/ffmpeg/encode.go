// Package ffmpeg delegates real encoding to an external ffmpeg binary.
//
// Every call is a scoped subprocess: a private temp directory, a bounded timeout, cleanup on all paths, and no retry.
// Success means exit code 0 and a non-empty output file. Any other outcome is returned wrapped in
// types.ErrEncoderUnavailable so the caller can explicitly choose the stand-in encoding.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/doppel/internal/integration/binary"
	"github.com/farcloser/doppel/internal/types"
)

var (
	errEmptyOutput   = errors.New("ffmpeg produced no output")
	errInvalidFormat = errors.New("format is not a plain extension")
)

// EncodeFrames encodes video frames as H.264 into the container implied by format (mp4, mkv, mov, avi...).
func EncodeFrames(ctx context.Context, buf *types.SignalBuffer, format string, timeout time.Duration) ([]byte, error) {
	if buf.Medium != types.MediumVideo || buf.Len() == 0 {
		return nil, fmt.Errorf("%w: no video frames to encode", types.ErrDegenerateBuffer)
	}

	readers := make([]io.Reader, len(buf.Frames))
	for i, frame := range buf.Frames {
		readers[i] = bytes.NewReader(frame)
	}

	args := []string{
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", strconv.Itoa(buf.Width) + "x" + strconv.Itoa(buf.Height),
		"-r", strconv.Itoa(buf.Rate),
		"-i", "-",
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-pix_fmt", outputPixFmt,
	}

	return run(ctx, "EncodeFrames", args, io.MultiReader(readers...), format, timeout)
}

// EncodeColor encodes a solid color clip from ffmpeg's own lavfi color source.
func EncodeColor(
	ctx context.Context,
	color types.Color,
	duration float64,
	width, height, rate int,
	format string,
	timeout time.Duration,
) ([]byte, error) {
	seconds := strconv.FormatFloat(duration, 'f', -1, 64)
	source := fmt.Sprintf("color=c=0x%02x%02x%02x:size=%dx%d:rate=%d:duration=%s",
		color[0], color[1], color[2], width, height, rate, seconds)

	args := []string{
		"-f", "lavfi",
		"-i", source,
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-pix_fmt", outputPixFmt,
		"-t", seconds,
	}

	return run(ctx, "EncodeColor", args, nil, format, timeout)
}

// Transcode converts a WAV into the codec implied by format (mp3, flac...).
func Transcode(ctx context.Context, wavData []byte, format string, timeout time.Duration) ([]byte, error) {
	args := []string{
		"-f", "wav",
		"-i", "-",
	}

	return run(ctx, "Transcode", args, bytes.NewReader(wavData), format, timeout)
}

func run(
	ctx context.Context,
	operation string,
	args []string,
	stdin io.Reader,
	format string,
	timeout time.Duration,
) ([]byte, error) {
	slog.Debug("ffmpeg."+operation, "format", format, "stage", "start")

	// The format names the output file inside the work directory.
	if !types.ValidFormat(format) {
		return nil, fmt.Errorf("%w: %w: %q", types.ErrUnsupportedContent, errInvalidFormat, format)
	}

	ffmpegPath, err := binary.Require(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrEncoderUnavailable, err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	workDir, err := os.MkdirTemp("", "doppel-ffmpeg-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrEncoderUnavailable, err)
	}
	defer os.RemoveAll(workDir)

	output := filepath.Join(workDir, "out."+format)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	full := append([]string{"-y", "-v", "error"}, args...)
	full = append(full, output)

	cmd := exec.CommandContext(ctx, ffmpegPath, full...) //nolint:gosec // arguments are built from validated values

	cmd.Stdin = stdin

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Debug("ffmpeg."+operation, "format", format, "stage", "timeout")

			return nil, fmt.Errorf("%w: %w: after %v", types.ErrEncoderUnavailable, fault.ErrTimeout, timeout)
		}

		slog.Debug("ffmpeg."+operation, "format", format, "stage", "error")

		return nil, fmt.Errorf("%w: %w: %s: %w", types.ErrEncoderUnavailable, fault.ErrCommandFailure, stderr.String(), err)
	}

	data, err := os.ReadFile(output) //nolint:gosec // path inside our own temp directory
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", types.ErrEncoderUnavailable, fault.ErrReadFailure, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", types.ErrEncoderUnavailable, errEmptyOutput)
	}

	slog.Debug("ffmpeg."+operation, "format", format, "stage", "done", "bytes", len(data))

	return data, nil
}
