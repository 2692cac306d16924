package inspect

import "math"

const (
	// Below this RMS, a window is silent.
	silenceThresholdDb = -60.0
	silenceWindowMs    = 50
	// A clip event is at least this many consecutive full-scale samples.
	minClipRun = 2
)

// Clipping counts runs of full-scale samples.
type Clipping struct {
	Events     int
	Samples    int
	LongestRun int
}

// clipping scans raw integer samples for runs pinned at either rail of the given bit depth.
func clipping(raw []int, bitDepth int) Clipping {
	high := 1<<(bitDepth-1) - 1
	low := -(1 << (bitDepth - 1))

	var (
		result Clipping
		run    int
	)

	flush := func() {
		if run >= minClipRun {
			result.Events++
			result.Samples += run
			result.LongestRun = max(result.LongestRun, run)
		}

		run = 0
	}

	for _, sample := range raw {
		if sample == high || sample == low {
			run++

			continue
		}

		flush()
	}

	flush()

	return result
}

// edgeSilence returns the silent duration at the start and the end of a normalized signal, in seconds.
// An all-silent signal is reported as leading silence only.
func edgeSilence(samples []float64, sampleRate int) (float64, float64) {
	window := max(sampleRate*silenceWindowMs/1000, 1)
	if sampleRate <= 0 || len(samples) == 0 {
		return 0, 0
	}

	threshold := math.Pow(10, silenceThresholdDb/20)

	silent := func(start int) bool {
		end := min(start+window, len(samples))

		var squares float64
		for _, sample := range samples[start:end] {
			squares += sample * sample
		}

		return math.Sqrt(squares/float64(end-start)) < threshold
	}

	leading := 0
	for leading < len(samples) && silent(leading) {
		leading += window
	}

	leading = min(leading, len(samples))
	if leading == len(samples) {
		return float64(leading) / float64(sampleRate), 0
	}

	trailing := 0

	for start := len(samples) - window; start > leading && silent(start); start -= window {
		trailing += window
	}

	return float64(leading) / float64(sampleRate), float64(trailing) / float64(sampleRate)
}
