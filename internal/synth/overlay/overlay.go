// Package overlay synthesizes a white text box sweeping across a black background.
package overlay

import (
	"unicode/utf8"

	"github.com/farcloser/doppel/internal/types"
)

const (
	glyphWidth = 10
	boxHeight  = 30
	step       = 5
	margin     = 100
)

//nolint:gochecknoglobals // palette, effectively const
var white = types.Color{255, 255, 255}

// Generate returns count frames. The box is len(text)*10 pixels wide, 30 high, vertically centered, and its left
// edge sits at (5*i) mod (width-100).
func Generate(text string, count, width, height int) []types.Frame {
	boxWidth := utf8.RuneCountInString(text) * glyphWidth
	span := width - margin
	centerY := height / 2

	frames := make([]types.Frame, count)

	for i := range count {
		frame := types.NewFrame(width, height)

		left := 0
		if span > 0 {
			left = (i * step) % span
		}

		startX, endX := max(0, left), min(width, left+boxWidth)
		startY, endY := max(0, centerY-boxHeight/2), min(height, centerY+boxHeight/2)

		for y := startY; y < endY; y++ {
			for x := startX; x < endX; x++ {
				frame.Set(width, x, y, white)
			}
		}

		frames[i] = frame
	}

	return frames
}
