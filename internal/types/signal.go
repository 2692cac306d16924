package types

import "slices"

// Medium is the kind of signal a buffer carries.
type Medium int

const (
	MediumNone Medium = iota
	MediumAudio
	MediumVideo
)

func (m Medium) String() string {
	switch m {
	case MediumNone:
		return "none"
	case MediumAudio:
		return "audio"
	case MediumVideo:
		return "video"
	}

	return "unknown"
}

// Color is an 8-bit RGB triple.
type Color [3]uint8

// Frame is one video frame, row-major, 3 bytes per pixel (R, G, B).
type Frame []uint8

// NewFrame returns a black frame for the given geometry.
func NewFrame(width, height int) Frame {
	return make(Frame, width*height*3)
}

// Fill paints the whole frame with a single color.
func (f Frame) Fill(c Color) {
	for i := 0; i+2 < len(f); i += 3 {
		f[i], f[i+1], f[i+2] = c[0], c[1], c[2]
	}
}

// Set paints one pixel.
func (f Frame) Set(width, x, y int, c Color) {
	off := (y*width + x) * 3
	f[off], f[off+1], f[off+2] = c[0], c[1], c[2]
}

// At returns the color of one pixel.
func (f Frame) At(width, x, y int) Color {
	off := (y*width + x) * 3

	return Color{f[off], f[off+1], f[off+2]}
}

// SignalBuffer is an ordered sequence of discrete units: frames for video, samples for audio.
// Exactly one of Frames or Samples is populated, according to Medium.
type SignalBuffer struct {
	Medium Medium
	// Rate is frames per second for video, samples per second for audio.
	Rate int
	// Width and Height are only meaningful for video.
	Width  int
	Height int

	Frames  []Frame
	Samples []float64

	// Source is the content the buffer was synthesized from. Perturbations that regenerate content read it.
	Source ClassSpec
}

// Len returns the unit count.
func (b *SignalBuffer) Len() int {
	if b.Medium == MediumVideo {
		return len(b.Frames)
	}

	return len(b.Samples)
}

// Duration returns the buffer length in seconds.
func (b *SignalBuffer) Duration() float64 {
	if b.Rate <= 0 {
		return 0
	}

	return float64(b.Len()) / float64(b.Rate)
}

// Clone returns a deep copy.
func (b *SignalBuffer) Clone() *SignalBuffer {
	clone := *b
	clone.Samples = slices.Clone(b.Samples)

	if b.Frames != nil {
		clone.Frames = make([]Frame, len(b.Frames))
		for i, frame := range b.Frames {
			clone.Frames[i] = slices.Clone(frame)
		}
	}

	clone.Source = b.Source.Clone()

	return &clone
}

// Equal reports whether two buffers carry the same signal (source identity is ignored).
func (b *SignalBuffer) Equal(other *SignalBuffer) bool {
	if b.Medium != other.Medium || b.Rate != other.Rate || b.Width != other.Width || b.Height != other.Height {
		return false
	}

	if !slices.Equal(b.Samples, other.Samples) || len(b.Frames) != len(other.Frames) {
		return false
	}

	for i := range b.Frames {
		if !slices.Equal(b.Frames[i], other.Frames[i]) {
			return false
		}
	}

	return true
}
