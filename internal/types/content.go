//nolint:tagliatelle
package types

import (
	"encoding/json"
	"slices"
)

// Class names a unit of semantically identical content.
type Class string

const (
	ClassGradient     Class = "gradient"
	ClassSolid        Class = "solid"
	ClassStripes      Class = "stripes"
	ClassCircles      Class = "circles"
	ClassCheckerboard Class = "checkerboard"
	ClassText         Class = "text"
	ClassWave         Class = "wave"
	ClassNoise        Class = "noise"
	ClassMelody       Class = "melody"
	ClassTone         Class = "tone"
	ClassWhiteNoise   Class = "white_noise"
)

// Medium returns the medium a class synthesizes, or MediumNone for unknown classes.
func (c Class) Medium() Medium {
	switch c {
	case ClassGradient, ClassSolid, ClassStripes, ClassCircles, ClassCheckerboard, ClassText, ClassWave, ClassNoise:
		return MediumVideo
	case ClassMelody, ClassTone, ClassWhiteNoise:
		return MediumAudio
	}

	return MediumNone
}

// Seeded reports whether the class draws from a random source.
func (c Class) Seeded() bool {
	return c == ClassNoise || c == ClassWhiteNoise
}

// Params are the synthesis parameters. Zero values are replaced by per-class defaults at synthesis time.
type Params struct {
	// Duration in seconds.
	Duration   float64 `json:"duration,omitempty"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	FrameRate  int     `json:"frame_rate,omitempty"`
	SampleRate int     `json:"sample_rate,omitempty"`
	// Amplitude of audio classes, in [0, 1].
	Amplitude float64 `json:"amplitude,omitempty"`

	Start *Color `json:"start,omitempty"`
	End   *Color `json:"end,omitempty"`

	// Frequencies in Hz, played in order (melody) or the first one only (tone).
	Frequencies []float64 `json:"frequencies,omitempty"`
	Text        string    `json:"text,omitempty"`

	// Seed drives noise classes. Nil means an unseeded source.
	Seed *uint64 `json:"seed,omitempty"`
	// Reproducible demands bit-identical output across calls.
	Reproducible bool `json:"reproducible,omitempty"`
}

// ClassSpec identifies one unit of content: a class and its parameters.
type ClassSpec struct {
	Class  Class  `json:"class"`
	Params Params `json:"params"`
}

// Key returns the canonical identity of the content.
func (s ClassSpec) Key() string {
	params, err := json.Marshal(s.Params)
	if err != nil {
		return string(s.Class)
	}

	return string(s.Class) + string(params)
}

// Clone returns a deep copy.
func (s ClassSpec) Clone() ClassSpec {
	clone := s
	clone.Params.Frequencies = slices.Clone(s.Params.Frequencies)

	if s.Params.Start != nil {
		start := *s.Params.Start
		clone.Params.Start = &start
	}

	if s.Params.End != nil {
		end := *s.Params.End
		clone.Params.End = &end
	}

	if s.Params.Seed != nil {
		seed := *s.Params.Seed
		clone.Params.Seed = &seed
	}

	return clone
}

// Seed returns a pointer to a seed value, for use in Params literals.
func Seed(value uint64) *uint64 {
	return &value
}

// RGB returns a pointer to a color, for use in Params literals.
func RGB(red, green, blue uint8) *Color {
	return &Color{red, green, blue}
}
