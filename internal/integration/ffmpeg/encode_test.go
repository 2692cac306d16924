package ffmpeg_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/farcloser/primordium/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/doppel/internal/integration/binary"
	"github.com/farcloser/doppel/internal/integration/ffmpeg"
	"github.com/farcloser/doppel/internal/types"
)

func TestMissingBinary(t *testing.T) {
	t.Setenv("PATH", "")

	_, err := ffmpeg.EncodeColor(context.Background(), types.Color{0, 0, 0}, 1, 16, 16, 5, "mp4", time.Second)
	require.ErrorIs(t, err, types.ErrEncoderUnavailable)
	require.ErrorIs(t, err, fault.ErrMissingRequirements)

	_, err = ffmpeg.Transcode(context.Background(), []byte("RIFF"), "mp3", time.Second)
	require.ErrorIs(t, err, types.ErrEncoderUnavailable)
}

func TestEncodeFramesRejectsAudio(t *testing.T) {
	t.Parallel()

	_, err := ffmpeg.EncodeFrames(context.Background(), &types.SignalBuffer{Medium: types.MediumAudio}, "mp4", time.Second)
	require.ErrorIs(t, err, types.ErrDegenerateBuffer)
}

func TestEncodeColor(t *testing.T) {
	t.Parallel()

	if _, found := binary.Available("ffmpeg"); !found {
		t.Skip("ffmpeg not installed")
	}

	data, err := ffmpeg.EncodeColor(context.Background(), types.Color{0, 255, 0}, 1, 32, 32, 5, "mkv", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

// fakeFFmpeg puts a shell script named ffmpeg first on PATH. It drains stdin and writes to its last argument.
func fakeFFmpeg(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\ncat >/dev/null\nfor last; do :; done\nprintf encoded > \"$last\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte(script), 0o755)) //nolint:gosec // executable

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestFormatStaysInsideWorkDir(t *testing.T) {
	fakeFFmpeg(t)

	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	for _, format := range []string{"x/../../escape.mp3", "../escape", "mp3/x", "", "MP3", "m p3"} {
		_, err := ffmpeg.Transcode(context.Background(), []byte("RIFF"), format, time.Second)
		require.ErrorIs(t, err, types.ErrUnsupportedContent, "format %q", format)
	}

	assert.NoFileExists(t, filepath.Join(scratch, "escape.mp3"))
	assert.NoFileExists(t, filepath.Join(scratch, "escape"))

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunCleansWorkDir(t *testing.T) {
	fakeFFmpeg(t)

	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	data, err := ffmpeg.Transcode(context.Background(), []byte("RIFF"), "mp3", time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("encoded"), data)

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
