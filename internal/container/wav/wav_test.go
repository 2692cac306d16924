package wav_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/doppel/internal/container/wav"
	"github.com/farcloser/doppel/internal/synth"
	"github.com/farcloser/doppel/internal/types"
)

func TestEncodeHeader(t *testing.T) {
	t.Parallel()

	buf := &types.SignalBuffer{Medium: types.MediumAudio, Rate: 22050, Samples: []float64{0, 0.5, -0.5, 1}}

	data, err := wav.Encode(buf)
	require.NoError(t, err)
	require.Len(t, data, wav.HeaderSize+8)

	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(36+8), binary.LittleEndian.Uint32(data[4:]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(data[16:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[20:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[22:]))
	assert.Equal(t, uint32(22050), binary.LittleEndian.Uint32(data[24:]))
	assert.Equal(t, uint32(44100), binary.LittleEndian.Uint32(data[28:]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(data[32:]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(data[34:]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(8), binary.LittleEndian.Uint32(data[40:]))

	assert.Equal(t, int16(16383), int16(binary.LittleEndian.Uint16(data[46:])))  //nolint:gosec // test decode
	assert.Equal(t, int16(-16383), int16(binary.LittleEndian.Uint16(data[48:]))) //nolint:gosec // test decode
	assert.Equal(t, int16(32767), int16(binary.LittleEndian.Uint16(data[50:])))  //nolint:gosec // test decode
}

func TestRoundTripThroughDecoder(t *testing.T) {
	t.Parallel()

	buf, err := synth.Synthesize(types.ClassSpec{Class: types.ClassMelody})
	require.NoError(t, err)

	data, err := wav.Encode(buf)
	require.NoError(t, err)

	decoder := gowav.NewDecoder(bytes.NewReader(data))

	pcm, err := decoder.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 44100, pcm.Format.SampleRate)
	assert.Equal(t, 1, pcm.Format.NumChannels)
	assert.Equal(t, uint16(16), decoder.BitDepth)
	require.Len(t, pcm.Data, buf.Len())

	for i, sample := range buf.Samples {
		if int(wav.Quantize(sample)) != pcm.Data[i] {
			t.Fatalf("sample %d: wrote %d, decoded %d", i, wav.Quantize(sample), pcm.Data[i])
		}
	}
}

func TestQuantize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int16(0), wav.Quantize(0))
	assert.Equal(t, int16(32767), wav.Quantize(1))
	assert.Equal(t, int16(32767), wav.Quantize(4))
	assert.Equal(t, int16(-32767), wav.Quantize(-1))
	assert.Equal(t, int16(-32767), wav.Quantize(-4))
	assert.Equal(t, int16(0), wav.Quantize(math.NaN()))
	// Truncation toward zero.
	assert.Equal(t, int16(9830), wav.Quantize(0.3))
}

func TestAmplitudeRatio(t *testing.T) {
	t.Parallel()

	for _, sample := range []float64{0.3, -0.3, 0.123, -0.29} {
		full := wav.Quantize(sample)
		quiet := wav.Quantize(sample * 0.95)

		assert.InDelta(t, float64(full)*0.95, float64(quiet), 1, "sample %g", sample)
	}
}

func TestEncodeRejects(t *testing.T) {
	t.Parallel()

	_, err := wav.Encode(&types.SignalBuffer{Medium: types.MediumVideo, Rate: 10, Frames: []types.Frame{{0, 0, 0}}})
	require.ErrorIs(t, err, types.ErrUnsupportedContent)

	_, err = wav.Encode(&types.SignalBuffer{Medium: types.MediumAudio, Rate: 44100})
	require.ErrorIs(t, err, types.ErrDegenerateBuffer)
}

func TestMatchesReferenceEncoder(t *testing.T) {
	t.Parallel()

	buf, err := synth.Synthesize(types.ClassSpec{Class: types.ClassTone, Params: types.Params{Duration: 0.05}})
	require.NoError(t, err)

	data, err := wav.Encode(buf)
	require.NoError(t, err)

	ints := make([]int, len(buf.Samples))
	for i, sample := range buf.Samples {
		ints[i] = int(wav.Quantize(sample))
	}

	target := filepath.Join(t.TempDir(), "reference.wav")

	file, err := os.Create(target)
	require.NoError(t, err)

	encoder := gowav.NewEncoder(file, buf.Rate, 16, 1, 1)
	require.NoError(t, encoder.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: buf.Rate},
		Data:           ints,
		SourceBitDepth: 16,
	}))
	require.NoError(t, encoder.Close())
	require.NoError(t, file.Close())

	reference, err := os.ReadFile(target)
	require.NoError(t, err)

	assert.Equal(t, reference, data)
}
