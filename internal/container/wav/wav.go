// Package wav writes canonical uncompressed PCM WAV containers.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/farcloser/doppel/internal/types"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE header with a single fmt and data chunk.
	HeaderSize = 44

	fmtChunkSize = 16
	formatPCM    = 1
	maxInt16     = 32767
)

var errNotAudio = errors.New("buffer is not audio")

// Encode returns a mono 16-bit PCM WAV holding the buffer samples.
// Each sample is clamped to [-1, 1] and scaled by 32767, truncating toward zero.
func Encode(buf *types.SignalBuffer) ([]byte, error) {
	if buf.Medium != types.MediumAudio {
		return nil, fmt.Errorf("%w: %w: %s", types.ErrUnsupportedContent, errNotAudio, buf.Medium)
	}

	if buf.Len() == 0 || buf.Rate <= 0 {
		return nil, fmt.Errorf("%w: %d samples at %dHz", types.ErrDegenerateBuffer, buf.Len(), buf.Rate)
	}

	format := types.MonoCD16(buf.Rate)
	dataSize := len(buf.Samples) * format.BlockAlign()

	out := make([]byte, HeaderSize+dataSize)
	PutHeader(out[:HeaderSize], format, uint32(dataSize)) //nolint:gosec // bounded by memory

	payload := out[HeaderSize:]
	for i, sample := range buf.Samples {
		binary.LittleEndian.PutUint16(payload[i*2:], uint16(Quantize(sample))) //nolint:gosec // two's complement
	}

	return out, nil
}

// Quantize converts a float sample to signed 16-bit.
func Quantize(sample float64) int16 {
	if math.IsNaN(sample) {
		return 0
	}

	return int16(max(-1, min(1, sample)) * maxInt16)
}

// PutHeader writes the 44-byte header for dataSize bytes of PCM payload into dst.
func PutHeader(dst []byte, format types.PCMFormat, dataSize uint32) {
	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], 36+dataSize)
	copy(dst[8:12], "WAVE")
	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(dst[20:22], formatPCM)
	binary.LittleEndian.PutUint16(dst[22:24], uint16(format.Channels))     //nolint:gosec // small constant
	binary.LittleEndian.PutUint32(dst[24:28], uint32(format.SampleRate))   //nolint:gosec // validated positive
	binary.LittleEndian.PutUint32(dst[28:32], uint32(format.ByteRate()))   //nolint:gosec // validated positive
	binary.LittleEndian.PutUint16(dst[32:34], uint16(format.BlockAlign())) //nolint:gosec // small constant
	binary.LittleEndian.PutUint16(dst[34:36], uint16(format.BitDepth))     //nolint:gosec // small constant
	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], dataSize)
}
