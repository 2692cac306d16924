package inspect

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

const (
	// Floor reported for silent signals, in dB.
	silenceDb = -120.0
	// Longest prefix used to estimate the dominant frequency.
	spectrumWindow = 8192
)

// Levels summarizes the amplitude of a normalized signal.
type Levels struct {
	Peak       float64
	PeakDb     float64
	DCOffset   float64
	DCOffsetDb float64
	// RMS of the whole signal.
	RMS float64
}

func levels(samples []float64) Levels {
	if len(samples) == 0 {
		return Levels{PeakDb: silenceDb, DCOffsetDb: silenceDb}
	}

	var peak, sum, squares float64

	for _, sample := range samples {
		peak = max(peak, math.Abs(sample))
		sum += sample
		squares += sample * sample
	}

	offset := sum / float64(len(samples))

	return Levels{
		Peak:       peak,
		PeakDb:     toDb(peak),
		DCOffset:   offset,
		DCOffsetDb: toDb(math.Abs(offset)),
		RMS:        math.Sqrt(squares / float64(len(samples))),
	}
}

func toDb(value float64) float64 {
	db := 20 * math.Log10(value)
	if math.IsInf(db, -1) || math.IsNaN(db) {
		return silenceDb
	}

	return db
}

// dominantFrequency returns the strongest non-DC frequency of the signal start, in Hz.
func dominantFrequency(samples []float64, sampleRate int) float64 {
	size := min(len(samples), spectrumWindow)
	if size < 2 || sampleRate <= 0 {
		return 0
	}

	window := make([]float64, size)
	copy(window, samples[:size])

	// Hann window, to keep leakage from hiding the peak.
	for i := range window {
		window[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	fft := fourier.NewFFT(size)
	coeffs := fft.Coefficients(nil, window)

	magnitudes := make([]float64, len(coeffs))
	for i, c := range coeffs {
		magnitudes[i] = math.Hypot(real(c), imag(c))
	}

	magnitudes[0] = 0

	if floats.Max(magnitudes) == 0 {
		return 0
	}

	return fft.Freq(floats.MaxIdx(magnitudes)) * float64(sampleRate)
}
