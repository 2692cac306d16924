// Package wave synthesizes a moving interference pattern.
package wave

import (
	"math"

	"github.com/farcloser/doppel/internal/types"
)

// Generate returns count frames where pixel (x, y) of frame i has intensity
// v = 128 + 127*sin(0.1x + 0.2i)*cos(0.1y + 0.3i), painted as (v, v/2, v/4).
func Generate(count, width, height int) []types.Frame {
	frames := make([]types.Frame, count)

	for i := range count {
		frame := types.NewFrame(width, height)
		phaseX := 0.2 * float64(i)
		phaseY := 0.3 * float64(i)

		for y := range height {
			column := math.Cos(0.1*float64(y) + phaseY)

			for x := range width {
				value := uint8(128 + 127*math.Sin(0.1*float64(x)+phaseX)*column) //nolint:gosec // bounded to [1, 255]
				frame.Set(width, x, y, types.Color{value, value / 2, value / 4})
			}
		}

		frames[i] = frame
	}

	return frames
}
