// Package gradient synthesizes frames whose uniform color moves linearly from a start to an end color.
package gradient

import (
	"math"

	"github.com/farcloser/doppel/internal/types"
)

// Generate returns count frames. Frame i is filled with start*(1-i/count) + end*(i/count), per channel, rounded.
// A start equal to end yields a solid color clip.
func Generate(start, end types.Color, count, width, height int) []types.Frame {
	frames := make([]types.Frame, count)

	for i := range count {
		frame := types.NewFrame(width, height)
		frame.Fill(At(start, end, i, count))
		frames[i] = frame
	}

	return frames
}

// At returns the interpolated color of frame i out of count.
func At(start, end types.Color, i, count int) types.Color {
	var color types.Color

	progress := float64(i) / float64(count)

	for channel := range color {
		value := float64(start[channel])*(1-progress) + float64(end[channel])*progress
		color[channel] = uint8(math.Round(value)) //nolint:gosec // interpolation of two uint8 stays in range
	}

	return color
}
