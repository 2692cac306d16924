// Package pattern synthesizes two-color geometric animations.
//
// Every shape is a per-pixel predicate whose phase advances with the frame index using integer modular arithmetic,
// so frames never drift across platforms.
package pattern

import "github.com/farcloser/doppel/internal/types"

// Shape selects the pattern predicate.
type Shape int

const (
	Stripes Shape = iota
	Circles
	Checkerboard
)

const (
	stripeWidth = 20
	stripeStep  = 2
	circleStep  = 3
	squareSize  = 15
	squareStep  = 2
)

//nolint:gochecknoglobals // palette, effectively const
var (
	yellow  = types.Color{255, 255, 0}
	blue    = types.Color{0, 0, 255}
	magenta = types.Color{255, 0, 255}
	cyan    = types.Color{0, 255, 255}
	orange  = types.Color{255, 128, 0}
	purple  = types.Color{128, 0, 255}
)

// Generate returns count frames of the given shape.
func Generate(shape Shape, count, width, height int) []types.Frame {
	frames := make([]types.Frame, count)

	for i := range count {
		frame := types.NewFrame(width, height)

		switch shape {
		case Stripes:
			stripes(frame, i, width, height)
		case Circles:
			circles(frame, i, width, height)
		case Checkerboard:
			checkerboard(frame, i, width, height)
		}

		frames[i] = frame
	}

	return frames
}

// stripes moves vertical bars sideways.
func stripes(frame types.Frame, index, width, height int) {
	offset := (index * stripeStep) % stripeWidth

	for x := range width {
		color := blue
		if (x+offset)%stripeWidth < stripeWidth/2 {
			color = yellow
		}

		for y := range height {
			frame.Set(width, x, y, color)
		}
	}
}

// circles grows a centered disc, wrapping back to nothing at half the smaller dimension.
func circles(frame types.Frame, index, width, height int) {
	centerX, centerY := width/2, height/2

	radius := 0
	if limit := min(width, height) / 2; limit > 0 {
		radius = (index * circleStep) % limit
	}

	for y := range height {
		for x := range width {
			dx, dy := x-centerX, y-centerY

			color := cyan
			if dx*dx+dy*dy < radius*radius {
				color = magenta
			}

			frame.Set(width, x, y, color)
		}
	}
}

// checkerboard slides a grid diagonally.
func checkerboard(frame types.Frame, index, width, height int) {
	offset := (index * squareStep) % squareSize

	for y := range height {
		for x := range width {
			color := purple
			if ((x+offset)/squareSize+(y+offset)/squareSize)%2 == 0 {
				color = orange
			}

			frame.Set(width, x, y, color)
		}
	}
}
