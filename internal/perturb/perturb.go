// Package perturb applies content-preserving (or, for reverse, content-breaking) transforms to signal buffers.
//
// Buffers are never modified in place: every transform returns a new buffer.
package perturb

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/doppel/internal/synth"
	"github.com/farcloser/doppel/internal/types"
)

// Apply returns the result of one perturbation.
func Apply(buf *types.SignalBuffer, pert types.Perturbation) (*types.SignalBuffer, error) {
	slog.Debug("perturb.Apply", "kind", pert.Kind, "medium", buf.Medium, "units", buf.Len())

	switch pert.Kind {
	case types.PerturbIdentity, types.PerturbContainerRelabel:
		return buf.Clone(), nil
	case types.PerturbQualityScale:
		return qualityScale(buf, pert.Factor)
	case types.PerturbResample:
		return resample(buf, pert.Rate)
	case types.PerturbResize:
		return resize(buf, pert.Width, pert.Height)
	case types.PerturbDurationScale:
		return durationScale(buf, pert.Factor)
	case types.PerturbReverse:
		return reverse(buf), nil
	case types.PerturbAmplitudeScale:
		return amplitudeScale(buf, pert.Factor)
	}

	return nil, fmt.Errorf("%w: perturbation %q", types.ErrUnsupportedContent, pert.Kind)
}

// ApplyAll applies perturbations in order.
// resample and resize synthesize the source again, so they must come before any transform of the signal itself:
// a chain like [reverse, resample] fails with ErrUnsupportedContent instead of silently dropping the reversal.
func ApplyAll(buf *types.SignalBuffer, perts []types.Perturbation) (*types.SignalBuffer, error) {
	var (
		err      error
		reshaped types.PerturbationKind
	)

	for _, pert := range perts {
		switch pert.Kind {
		case types.PerturbResample, types.PerturbResize:
			if reshaped != "" {
				return nil, fmt.Errorf("%w: %s after %s would discard it", types.ErrUnsupportedContent, pert.Kind, reshaped)
			}
		case types.PerturbIdentity, types.PerturbContainerRelabel:
		default:
			reshaped = pert.Kind
		}

		if buf, err = Apply(buf, pert); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

// qualityScale models lossy re-encoding by data loss: the length becomes round(len*factor), strictly shorter for
// factors below one and strictly longer above one.
func qualityScale(buf *types.SignalBuffer, factor float64) (*types.SignalBuffer, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: quality factor %g", types.ErrDegenerateBuffer, factor)
	}

	length := buf.Len()
	target := int(math.Round(float64(length) * factor))

	switch {
	case factor < 1 && target >= length:
		target = length - 1
	case factor > 1 && target <= length:
		target = length + 1
	case factor == 1:
		target = length
	}

	return fit(buf, target)
}

// durationScale simulates a longer or shorter cut of the same content.
func durationScale(buf *types.SignalBuffer, factor float64) (*types.SignalBuffer, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: duration factor %g", types.ErrDegenerateBuffer, factor)
	}

	return fit(buf, int(math.Round(float64(buf.Len())*factor)))
}

// fit truncates, or extends by cycling through the units from the start.
func fit(buf *types.SignalBuffer, target int) (*types.SignalBuffer, error) {
	length := buf.Len()
	if target <= 0 || length == 0 {
		return nil, fmt.Errorf("%w: %d units scaled to %d", types.ErrDegenerateBuffer, length, target)
	}

	out := buf.Clone()

	if buf.Medium == types.MediumVideo {
		out.Frames = make([]types.Frame, target)
		for i := range target {
			out.Frames[i] = slices.Clone(buf.Frames[i%length])
		}

		return out, nil
	}

	out.Samples = make([]float64, target)
	for i := range target {
		out.Samples[i] = buf.Samples[i%length]
	}

	return out, nil
}

// resample regenerates the source content at a new rate. This is not a resampling filter: content identity, not
// waveform identity, is what matters downstream.
func resample(buf *types.SignalBuffer, rate int) (*types.SignalBuffer, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: rate %d", types.ErrDegenerateBuffer, rate)
	}

	spec := buf.Source.Clone()

	switch buf.Medium {
	case types.MediumAudio:
		spec.Params.SampleRate = rate
	case types.MediumVideo:
		spec.Params.FrameRate = rate
	case types.MediumNone:
		return nil, fmt.Errorf("%w: resample of %s buffer", types.ErrUnsupportedContent, buf.Medium)
	}

	return regenerate(buf, spec)
}

// resize regenerates video content at a new geometry.
func resize(buf *types.SignalBuffer, width, height int) (*types.SignalBuffer, error) {
	if buf.Medium != types.MediumVideo {
		return nil, fmt.Errorf("%w: resize of %s buffer", types.ErrUnsupportedContent, buf.Medium)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", types.ErrDegenerateBuffer, width, height)
	}

	spec := buf.Source.Clone()
	spec.Params.Width = width
	spec.Params.Height = height

	return regenerate(buf, spec)
}

// regenerate synthesizes spec again at the duration of buf.
func regenerate(buf *types.SignalBuffer, spec types.ClassSpec) (*types.SignalBuffer, error) {
	if buf.Rate > 0 {
		spec.Params.Duration = buf.Duration()
	}

	return synth.Synthesize(spec)
}

func reverse(buf *types.SignalBuffer) *types.SignalBuffer {
	out := buf.Clone()
	slices.Reverse(out.Frames)
	slices.Reverse(out.Samples)

	return out
}

// amplitudeScale multiplies every sample, clamping to the valid range.
func amplitudeScale(buf *types.SignalBuffer, factor float64) (*types.SignalBuffer, error) {
	if buf.Medium != types.MediumAudio {
		return nil, fmt.Errorf("%w: amplitude scaling of %s buffer", types.ErrUnsupportedContent, buf.Medium)
	}

	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: amplitude factor %g", types.ErrUnsupportedContent, factor)
	}

	out := buf.Clone()
	floats.Scale(factor, out.Samples)

	for i, sample := range out.Samples {
		out.Samples[i] = max(-1, min(1, sample))
	}

	return out, nil
}
