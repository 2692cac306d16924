// Package synth turns a content identity into a signal buffer.
package synth

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/farcloser/doppel/internal/synth/gradient"
	"github.com/farcloser/doppel/internal/synth/melody"
	"github.com/farcloser/doppel/internal/synth/noise"
	"github.com/farcloser/doppel/internal/synth/overlay"
	"github.com/farcloser/doppel/internal/synth/pattern"
	"github.com/farcloser/doppel/internal/synth/wave"
	"github.com/farcloser/doppel/internal/types"
)

const (
	DefaultDuration   = 3.0
	DefaultWidth      = 320
	DefaultHeight     = 240
	DefaultFrameRate  = 10
	DefaultSampleRate = 44100
	DefaultAmplitude  = 0.3
	DefaultText       = "Hello World"
)

//nolint:gochecknoglobals // defaults, effectively const
var (
	defaultStart = types.Color{255, 0, 0}
	defaultEnd   = types.Color{0, 0, 255}
)

// Resolve returns the spec with every zero parameter replaced by its class default.
func Resolve(spec types.ClassSpec) types.ClassSpec {
	resolved := spec.Clone()
	params := &resolved.Params

	if params.Duration == 0 {
		params.Duration = DefaultDuration
	}

	switch spec.Class.Medium() {
	case types.MediumVideo:
		if params.Width == 0 {
			params.Width = DefaultWidth
		}

		if params.Height == 0 {
			params.Height = DefaultHeight
		}

		if params.FrameRate == 0 {
			params.FrameRate = DefaultFrameRate
		}

		if params.Start == nil {
			start := defaultStart
			params.Start = &start
		}

		if params.End == nil {
			end := defaultEnd
			if spec.Class == types.ClassSolid {
				end = *params.Start
			}

			params.End = &end
		}

		if params.Text == "" && spec.Class == types.ClassText {
			params.Text = DefaultText
		}
	case types.MediumAudio:
		if params.SampleRate == 0 {
			params.SampleRate = DefaultSampleRate
		}

		if params.Amplitude == 0 {
			params.Amplitude = DefaultAmplitude
		}

		if len(params.Frequencies) == 0 {
			params.Frequencies = slices.Clone(melody.CMajor)
		}
	case types.MediumNone:
	}

	return resolved
}

// Synthesize deterministically produces the signal for a content class.
// Noise classes are deterministic only when seeded; requesting reproducibility without a seed fails with
// ErrNonDeterministicContent.
func Synthesize(spec types.ClassSpec) (*types.SignalBuffer, error) {
	medium := spec.Class.Medium()
	if medium == types.MediumNone {
		return nil, fmt.Errorf("%w: class %q", types.ErrUnsupportedContent, spec.Class)
	}

	spec = Resolve(spec)
	params := spec.Params

	if spec.Class.Seeded() && params.Reproducible && params.Seed == nil {
		return nil, fmt.Errorf("%w: class %q has no seed", types.ErrNonDeterministicContent, spec.Class)
	}

	if spec.Class == types.ClassSolid && *params.Start != *params.End {
		return nil, fmt.Errorf("%w: solid class with distinct start and end colors", types.ErrUnsupportedContent)
	}

	buf := &types.SignalBuffer{Medium: medium, Source: spec}

	if medium == types.MediumAudio {
		return synthesizeAudio(buf, spec)
	}

	return synthesizeVideo(buf, spec)
}

func synthesizeAudio(buf *types.SignalBuffer, spec types.ClassSpec) (*types.SignalBuffer, error) {
	params := spec.Params

	count := Units(params.Duration, params.SampleRate)
	if count <= 0 {
		return nil, fmt.Errorf("%w: %gs at %dHz", types.ErrDegenerateBuffer, params.Duration, params.SampleRate)
	}

	slog.Debug("synth.Synthesize", "class", spec.Class, "samples", count, "rate", params.SampleRate)

	buf.Rate = params.SampleRate

	switch spec.Class {
	case types.ClassMelody:
		buf.Samples = melody.Generate(params.Frequencies, params.Amplitude, params.SampleRate, count)
	case types.ClassTone:
		buf.Samples = melody.Generate(params.Frequencies[:1], params.Amplitude, params.SampleRate, count)
	case types.ClassWhiteNoise:
		buf.Samples = noise.Samples(params.Seed, count, params.Amplitude)
	default:
		return nil, fmt.Errorf("%w: class %q", types.ErrUnsupportedContent, spec.Class)
	}

	return buf, nil
}

func synthesizeVideo(buf *types.SignalBuffer, spec types.ClassSpec) (*types.SignalBuffer, error) {
	params := spec.Params

	count := Units(params.Duration, params.FrameRate)
	if count <= 0 || params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("%w: %gs at %dfps, %dx%d",
			types.ErrDegenerateBuffer, params.Duration, params.FrameRate, params.Width, params.Height)
	}

	slog.Debug("synth.Synthesize", "class", spec.Class, "frames", count, "width", params.Width, "height", params.Height)

	buf.Rate = params.FrameRate
	buf.Width = params.Width
	buf.Height = params.Height

	switch spec.Class {
	case types.ClassGradient, types.ClassSolid:
		buf.Frames = gradient.Generate(*params.Start, *params.End, count, params.Width, params.Height)
	case types.ClassStripes:
		buf.Frames = pattern.Generate(pattern.Stripes, count, params.Width, params.Height)
	case types.ClassCircles:
		buf.Frames = pattern.Generate(pattern.Circles, count, params.Width, params.Height)
	case types.ClassCheckerboard:
		buf.Frames = pattern.Generate(pattern.Checkerboard, count, params.Width, params.Height)
	case types.ClassText:
		buf.Frames = overlay.Generate(params.Text, count, params.Width, params.Height)
	case types.ClassWave:
		buf.Frames = wave.Generate(count, params.Width, params.Height)
	case types.ClassNoise:
		buf.Frames = noise.Frames(params.Seed, count, params.Width, params.Height)
	default:
		return nil, fmt.Errorf("%w: class %q", types.ErrUnsupportedContent, spec.Class)
	}

	return buf, nil
}

// Units returns the number of discrete units for a duration in seconds at a rate.
func Units(duration float64, rate int) int {
	if rate <= 0 || duration <= 0 {
		return 0
	}

	return int(math.Round(duration * float64(rate)))
}
