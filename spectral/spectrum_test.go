package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvoss/sonalyze/signal"
)

func sine(freq float64, sampleRate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return samples
}

func TestTransformValidation(t *testing.T) {
	_, err := Transform(nil, 8000)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)

	_, err = Transform([]float64{1, 2}, 0)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)
}

func TestBinLayout(t *testing.T) {
	spec, err := Transform(make([]float64, 1024), 8000)
	require.NoError(t, err)

	assert.Equal(t, 513, spec.Len())
	assert.Equal(t, 0.0, spec.Frequencies[0])
	assert.InDelta(t, 4000.0, spec.Frequencies[512], 1e-9)
	assert.InDelta(t, 8000.0/1024.0, spec.BinWidth(), 1e-12)
	assert.Equal(t, 1024, spec.FFTSize())
	assert.Equal(t, 8000, spec.SampleRate())

	// Bin k maps to k * sampleRate / N.
	for k := 1; k < spec.Len(); k++ {
		assert.InDelta(t, spec.Frequencies[k-1]+spec.BinWidth(), spec.Frequencies[k], 1e-9)
	}
}

func TestOddLengthInput(t *testing.T) {
	spec, err := Transform(make([]float64, 401), 8000)
	require.NoError(t, err)
	assert.Equal(t, 201, spec.Len())
}

func TestDominantFrequencyOfSine(t *testing.T) {
	// One full second at 8 kHz gives 1 Hz bins, so 440 Hz lands exactly
	// on a bin center.
	spec, err := Transform(sine(440, 8000, 8000), 8000)
	require.NoError(t, err)

	dominant, err := spec.DominantFrequency()
	require.NoError(t, err)
	assert.InDelta(t, 440.0, dominant, spec.BinWidth())
}

func TestDominantFrequencyIgnoresDC(t *testing.T) {
	samples := sine(1000, 8000, 4000)
	for i := range samples {
		samples[i] = 0.1*samples[i] + 0.9 // large offset, small tone
	}

	spec, err := Transform(samples, 8000)
	require.NoError(t, err)

	dominant, err := spec.DominantFrequency()
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, dominant, spec.BinWidth())
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	spec, err := Transform(make([]float64, 1000), 8000)
	require.NoError(t, err)

	_, err = spec.DominantFrequency()
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)

	// A constant signal has energy only in the DC bin.
	constant := make([]float64, 1000)
	for i := range constant {
		constant[i] = 0.7
	}
	spec, err = Transform(constant, 8000)
	require.NoError(t, err)

	_, err = spec.DominantFrequency()
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)
}

func TestPowerIsSquaredMagnitude(t *testing.T) {
	spec, err := Transform(sine(440, 8000, 800), 8000)
	require.NoError(t, err)

	power := spec.Power()
	require.Len(t, power, spec.Len())
	for k := range power {
		assert.InDelta(t, spec.Magnitudes[k]*spec.Magnitudes[k], power[k], 1e-9)
	}
}

func TestParsevalEnergy(t *testing.T) {
	samples := sine(440, 8000, 1024)

	timeEnergy := 0.0
	for _, s := range samples {
		timeEnergy += s * s
	}

	spec, err := Transform(samples, 8000)
	require.NoError(t, err)

	// Sum over the full (two-sided) spectrum: interior one-sided bins
	// count twice. Parseval: sum |X[k]|^2 = N * sum x[n]^2.
	n := float64(spec.FFTSize())
	freqEnergy := spec.Magnitudes[0] * spec.Magnitudes[0]
	freqEnergy += spec.Magnitudes[spec.Len()-1] * spec.Magnitudes[spec.Len()-1]
	for k := 1; k < spec.Len()-1; k++ {
		freqEnergy += 2 * spec.Magnitudes[k] * spec.Magnitudes[k]
	}

	assert.InEpsilon(t, timeEnergy, freqEnergy/n, 1e-6)
}

func TestMelScaleRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 100, 440, 1000, 4000, 8000} {
		assert.InDelta(t, hz, MelToHz(HzToMel(hz)), 1e-9, "%.0f Hz", hz)
	}

	// 1000 Hz is close to 1000 mel by construction of the scale.
	assert.InDelta(t, 1000.0, HzToMel(1000.0), 2.0)
}
