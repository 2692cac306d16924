package melody_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/doppel/internal/synth/melody"
)

func TestGenerateSegments(t *testing.T) {
	t.Parallel()

	const (
		rate  = 1000
		count = 1001
	)

	samples := melody.Generate([]float64{100, 250}, 0.5, rate, count)
	require.Len(t, samples, count)

	// Each segment restarts at phase zero.
	assert.Zero(t, samples[0])
	assert.Zero(t, samples[count/2])

	assert.InDelta(t, 0.5*math.Sin(2*math.Pi*100*3/rate), samples[3], 1e-12)
	assert.InDelta(t, 0.5*math.Sin(2*math.Pi*250*3/rate), samples[count/2+3], 1e-12)

	for _, sample := range samples {
		assert.LessOrEqual(t, math.Abs(sample), 0.5)
	}
}

func TestGenerateWithoutFrequencies(t *testing.T) {
	t.Parallel()

	samples := melody.Generate(nil, 0.3, 44100, 10)
	assert.Equal(t, make([]float64, 10), samples)
}
