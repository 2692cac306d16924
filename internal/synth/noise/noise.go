// Package noise synthesizes the negative-control content: pseudo-random frames and samples.
//
// A nil seed draws from an unseeded source. A seeded source is derived per unit (seed, frame index), so any frame can
// be regenerated on its own and two runs with the same seed are bit-identical.
package noise

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/farcloser/doppel/internal/types"
)

// Frames returns count frames of uniformly distributed RGB bytes.
func Frames(seed *uint64, count, width, height int) []types.Frame {
	frames := make([]types.Frame, count)

	for i := range count {
		rng := rand.New(source(seed, uint64(i))) //nolint:gosec // test content, not security sensitive
		frame := types.NewFrame(width, height)

		for off := 0; off < len(frame); off += 4 {
			word := rng.Uint32()

			for b := 0; b < 4 && off+b < len(frame); b++ {
				frame[off+b] = uint8(word >> (8 * b)) //nolint:gosec // byte extraction
			}
		}

		frames[i] = frame
	}

	return frames
}

// Samples returns count samples uniformly distributed in [-amplitude, amplitude].
func Samples(seed *uint64, count int, amplitude float64) []float64 {
	dist := distuv.Uniform{Min: -amplitude, Max: amplitude, Src: source(seed, 0)}

	samples := make([]float64, count)
	for i := range samples {
		samples[i] = dist.Rand()
	}

	return samples
}

func source(seed *uint64, stream uint64) rand.Source {
	if seed == nil {
		return rand.NewPCG(rand.Uint64(), rand.Uint64()) //nolint:gosec // deliberately unseeded
	}

	return rand.NewPCG(*seed, stream)
}
