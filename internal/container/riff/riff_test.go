package riff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/doppel/internal/container/riff"
	"github.com/farcloser/doppel/internal/synth"
	"github.com/farcloser/doppel/internal/types"
)

func TestEncodeParse(t *testing.T) {
	t.Parallel()

	buf, err := synth.Synthesize(types.ClassSpec{Class: types.ClassGradient})
	require.NoError(t, err)

	label := buf.Source.Key()

	data, err := riff.Encode(buf, label)
	require.NoError(t, err)

	header, err := riff.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, &riff.Header{
		Width:     320,
		Height:    240,
		Frames:    30,
		FrameRate: 10,
		Chunks:    30,
		Label:     label,
	}, header)
}

func TestEncodeSizeDependsOnFrames(t *testing.T) {
	t.Parallel()

	short, err := synth.Synthesize(types.ClassSpec{Class: types.ClassWave, Params: types.Params{Duration: 1}})
	require.NoError(t, err)

	long, err := synth.Synthesize(types.ClassSpec{Class: types.ClassWave, Params: types.Params{Duration: 2}})
	require.NoError(t, err)

	// Odd label length exercises chunk padding.
	const label = "abc"

	shortData, err := riff.Encode(short, label)
	require.NoError(t, err)

	longData, err := riff.Encode(long, label)
	require.NoError(t, err)

	chunk := 8 + len(label) + 100 + 1
	assert.Len(t, shortData, 12+8+16+10*chunk)
	assert.Len(t, longData, len(shortData)+10*chunk)

	again, err := riff.Encode(short, label)
	require.NoError(t, err)
	assert.Equal(t, shortData, again)
}

func TestEncodeRejectsAudio(t *testing.T) {
	t.Parallel()

	_, err := riff.Encode(&types.SignalBuffer{Medium: types.MediumAudio, Rate: 8000, Samples: []float64{0}}, "x")
	require.ErrorIs(t, err, types.ErrUnsupportedContent)

	_, err = riff.Parse([]byte("RIFF\x00\x00\x00\x00WAVE"))
	require.ErrorIs(t, err, types.ErrUnsupportedContent)
}
