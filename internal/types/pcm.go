package types

type BitDepth uint

const (
	Depth16 BitDepth = 16
	Depth24 BitDepth = 24
	Depth32 BitDepth = 32
)

// PCMFormat describes interleaved little-endian signed PCM.
type PCMFormat struct {
	SampleRate int
	BitDepth   BitDepth
	Channels   uint
}

// BlockAlign returns the byte size of one frame (one sample for every channel).
func (f PCMFormat) BlockAlign() int {
	return int(f.BitDepth/8) * int(f.Channels) //nolint:gosec // bit depth and channel count are small constants
}

// ByteRate returns the number of bytes per second of audio.
func (f PCMFormat) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

// MonoCD16 returns the format every stand-in audio output is written in, at the given rate.
func MonoCD16(sampleRate int) PCMFormat {
	return PCMFormat{SampleRate: sampleRate, BitDepth: Depth16, Channels: 1}
}
