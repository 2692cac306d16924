// Package melody synthesizes pure-tone sequences.
package melody

import "math"

// CMajor is the C4 to C5 scale, in Hz.
//
//nolint:gochecknoglobals // reference data, effectively const
var CMajor = []float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88, 523.25}

// Generate returns count samples at sampleRate: one sine segment per frequency, in order.
// Segment k spans samples [k*count/m, (k+1)*count/m) so the total is exactly count, and each segment restarts its
// phase at zero: sample j of a segment is amplitude*sin(2*pi*f*j/sampleRate).
func Generate(frequencies []float64, amplitude float64, sampleRate, count int) []float64 {
	samples := make([]float64, count)
	segments := len(frequencies)

	if segments == 0 {
		return samples
	}

	for k, frequency := range frequencies {
		low, high := k*count/segments, (k+1)*count/segments
		step := 2 * math.Pi * frequency / float64(sampleRate)

		for j := low; j < high; j++ {
			samples[j] = amplitude * math.Sin(step*float64(j-low))
		}
	}

	return samples
}
