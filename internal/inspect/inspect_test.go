package inspect_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/doppel/internal/container/archive"
	"github.com/farcloser/doppel/internal/container/pestub"
	"github.com/farcloser/doppel/internal/container/riff"
	"github.com/farcloser/doppel/internal/container/wav"
	"github.com/farcloser/doppel/internal/inspect"
	"github.com/farcloser/doppel/internal/synth"
	"github.com/farcloser/doppel/internal/types"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want inspect.Kind
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), inspect.KindWAV},
		{"avi", []byte("RIFF\x00\x00\x00\x00AVI avih"), inspect.KindRIFFAVI},
		{"zip", []byte("PK\x03\x04rest"), inspect.KindZIP},
		{"empty zip", []byte("PK\x05\x06rest"), inspect.KindZIP},
		{"pe", []byte("MZ\x00\x00"), inspect.KindPE},
		{"short riff", []byte("RIFF"), inspect.KindUnknown},
		{"text", []byte("hello"), inspect.KindUnknown},
		{"empty", nil, inspect.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, inspect.Sniff(tt.data))
		})
	}
}

func TestAudioSummary(t *testing.T) {
	t.Parallel()

	buf, err := synth.Synthesize(types.ClassSpec{
		Class:  types.ClassTone,
		Params: types.Params{Duration: 1, Frequencies: []float64{440}},
	})
	require.NoError(t, err)

	data, err := wav.Encode(buf)
	require.NoError(t, err)

	summary, err := inspect.Bytes(data)
	require.NoError(t, err)

	require.Equal(t, inspect.KindWAV, summary.Kind)
	require.NotNil(t, summary.Audio)
	assert.Len(t, summary.SHA256, 64)
	assert.Equal(t, len(data), summary.Size)

	audio := summary.Audio
	assert.Equal(t, 44100, audio.SampleRate)
	assert.Equal(t, 1, audio.Channels)
	assert.Equal(t, 16, audio.BitDepth)
	assert.Equal(t, 44100, audio.Samples)
	assert.InDelta(t, 1.0, audio.Duration, 1e-9)
	assert.InDelta(t, 440, audio.DominantHz, 6)
	assert.InDelta(t, synth.DefaultAmplitude, audio.Peak, 0.01)
	assert.InDelta(t, 0, audio.DCOffset, 0.01)
	assert.Less(t, audio.RMS, audio.Peak)
	assert.Zero(t, audio.ClipEvents)
	assert.Zero(t, audio.LeadingSilence)
	assert.Zero(t, audio.TrailingSilence)
}

func TestVideoSummary(t *testing.T) {
	t.Parallel()

	buf, err := synth.Synthesize(types.ClassSpec{
		Class:  types.ClassGradient,
		Params: types.Params{Duration: 1, Width: 32, Height: 24, FrameRate: 5},
	})
	require.NoError(t, err)

	data, err := riff.Encode(buf, "gradient")
	require.NoError(t, err)

	summary, err := inspect.Bytes(data)
	require.NoError(t, err)

	require.Equal(t, inspect.KindRIFFAVI, summary.Kind)
	require.NotNil(t, summary.Video)
	assert.Equal(t, inspect.Video{
		Width: 32, Height: 24, Frames: 5, FrameRate: 5, Chunks: 5, Duration: 1, Label: "gradient",
	}, *summary.Video)
}

func TestArchiveRefinement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind types.ContainerKind
		want inspect.Kind
	}{
		{types.ContainerJAR, inspect.KindJAR},
		{types.ContainerAPK, inspect.KindAPK},
		{types.ContainerZIP, inspect.KindZIP},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()

			entries, err := archive.Entries(types.ContainerSpec{Kind: tt.kind})
			require.NoError(t, err)

			data, err := archive.Encode(entries)
			require.NoError(t, err)

			summary, err := inspect.Bytes(data)
			require.NoError(t, err)

			assert.Equal(t, tt.want, summary.Kind)
			require.NotNil(t, summary.Archive)
			assert.Len(t, summary.Archive.Entries, len(entries))
			assert.Equal(t, entries[0].Name, summary.Archive.Entries[0].Name)
		})
	}
}

func TestExecutableMarker(t *testing.T) {
	t.Parallel()

	plain, err := pestub.Encode(0, false)
	require.NoError(t, err)

	marked, err := pestub.Encode(0, true)
	require.NoError(t, err)

	plainSummary, err := inspect.Bytes(plain)
	require.NoError(t, err)

	markedSummary, err := inspect.Bytes(marked)
	require.NoError(t, err)

	assert.Equal(t, inspect.Executable{PayloadSize: pestub.DefaultPayloadSize}, *plainSummary.Executable)
	assert.Equal(t, inspect.Executable{PayloadSize: pestub.DefaultPayloadSize, Marker: true}, *markedSummary.Executable)
	assert.NotEqual(t, plainSummary.SHA256, markedSummary.SHA256)
}

// listAVI mimics the start of an encoder-written AVI: the main header sits inside a LIST/hdrl chunk.
func listAVI() []byte {
	data := []byte("RIFF\x00\x00\x00\x00AVI LIST\x44\x00\x00\x00hdrlavih\x38\x00\x00\x00")

	return append(data, make([]byte, 64)...)
}

func TestEncodedAVIIsReportedUnknown(t *testing.T) {
	t.Parallel()

	summary, err := inspect.Bytes(listAVI())
	require.NoError(t, err)

	assert.Equal(t, inspect.KindUnknown, summary.Kind)
	assert.Nil(t, summary.Video)

	target := filepath.Join(t.TempDir(), "encoded.avi")
	require.NoError(t, os.WriteFile(target, listAVI(), 0o600))

	fromFile, err := inspect.File(context.Background(), target, time.Second)
	require.NoError(t, err)
	assert.Equal(t, inspect.KindUnknown, fromFile.Kind)
}

func TestCorruptWAV(t *testing.T) {
	t.Parallel()

	_, err := inspect.Bytes([]byte("RIFF\x04\x00\x00\x00WAVEjunkjunk"))
	require.Error(t, err)
}

func TestFileUnknown(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("not media"), 0o600))

	summary, err := inspect.File(context.Background(), target, time.Second)
	require.NoError(t, err)

	assert.Equal(t, target, summary.Path)
	assert.Equal(t, inspect.KindUnknown, summary.Kind)
	assert.Nil(t, summary.Audio)
	assert.Nil(t, summary.Probe)
}

func TestFileMissing(t *testing.T) {
	t.Parallel()

	_, err := inspect.File(context.Background(), filepath.Join(t.TempDir(), "absent.wav"), time.Second)
	require.Error(t, err)
}
