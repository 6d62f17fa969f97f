package features

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvoss/sonalyze/signal"
)

func sineBuffer(freq float64, sampleRate, n int) *signal.Buffer {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return &signal.Buffer{Samples: samples, SampleRate: sampleRate}
}

func noiseBuffer(seed int64, amplitude float64, sampleRate, n int) *signal.Buffer {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * (rng.Float64()*2 - 1)
	}
	return &signal.Buffer{Samples: samples, SampleRate: sampleRate}
}

func zeroBuffer(sampleRate, n int) *signal.Buffer {
	return &signal.Buffer{Samples: make([]float64, n), SampleRate: sampleRate}
}

func newTestExtractor(t *testing.T, sampleRate int) *Extractor {
	t.Helper()
	e, err := NewExtractor(sampleRate, DefaultParams(sampleRate))
	require.NoError(t, err)
	return e
}

func TestNewExtractorValidation(t *testing.T) {
	_, err := NewExtractor(0, DefaultParams(8000))
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)

	params := DefaultParams(8000)
	params.RolloffFraction = 1.5
	_, err = NewExtractor(8000, params)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)

	params = DefaultParams(8000)
	params.RolloffFraction = 0
	_, err = NewExtractor(8000, params)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)

	params = DefaultParams(8000)
	params.MinPitchHz = 500
	params.MaxPitchHz = 50
	_, err = NewExtractor(8000, params)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)

	params = DefaultParams(8000)
	params.VoicingThreshold = 1.0
	_, err = NewExtractor(8000, params)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)

	params = DefaultParams(8000)
	params.WindowName = "nosuch"
	_, err = NewExtractor(8000, params)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)
}

func TestSampleRateMismatch(t *testing.T) {
	e := newTestExtractor(t, 8000)
	buf := sineBuffer(440, 16000, 16000)

	_, err := e.SNR(buf)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)

	_, err = e.ZeroCrossingRates(buf)
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)
}

func TestZeroCrossingRateOfSine(t *testing.T) {
	e := newTestExtractor(t, 8000)
	buf := sineBuffer(440, 8000, 8000)

	zcr, err := e.ZeroCrossingRate(buf)
	require.NoError(t, err)

	// A 440 Hz tone crosses zero 880 times per second: 880 crossings
	// over 7999 sample pairs.
	assert.InDelta(t, 0.11, zcr, 0.005)
}

func TestZeroCrossingRateBounds(t *testing.T) {
	e := newTestExtractor(t, 8000)

	zcr, err := e.ZeroCrossingRate(noiseBuffer(1, 1.0, 8000, 8000))
	require.NoError(t, err)
	assert.Greater(t, zcr, 0.0)
	assert.LessOrEqual(t, zcr, 1.0)

	// Silence never changes sign.
	zcr, err = e.ZeroCrossingRate(zeroBuffer(8000, 8000))
	require.NoError(t, err)
	assert.Equal(t, 0.0, zcr)

	rates, err := e.ZeroCrossingRates(noiseBuffer(2, 1.0, 8000, 8000))
	require.NoError(t, err)
	for _, r := range rates {
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}

func TestFrameZCRDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, FrameZCR(nil))
	assert.Equal(t, 0.0, FrameZCR([]float64{0.5}))
	assert.Equal(t, 1.0, FrameZCR([]float64{1, -1, 1, -1}))
}

func TestShortTermEnergy(t *testing.T) {
	e := newTestExtractor(t, 8000)

	energies, err := e.ShortTermEnergies(sineBuffer(440, 8000, 8000))
	require.NoError(t, err)
	require.NotEmpty(t, energies)
	for _, en := range energies {
		assert.GreaterOrEqual(t, en, 0.0)
	}

	total, err := e.ShortTermEnergy(sineBuffer(440, 8000, 8000))
	require.NoError(t, err)
	assert.Greater(t, total, 0.0)

	// Zero signal has zero energy but the computation still succeeds.
	total, err = e.ShortTermEnergy(zeroBuffer(8000, 8000))
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestNormalizedEnergy(t *testing.T) {
	params := DefaultParams(8000)
	params.NormalizeEnergy = true
	e, err := NewExtractor(8000, params)
	require.NoError(t, err)

	// A full-scale constant stretch has mean-square 1 per frame.
	samples := make([]float64, 8000)
	for i := range samples {
		samples[i] = 1.0
	}
	buf := &signal.Buffer{Samples: samples, SampleRate: 8000}

	energies, err := e.ShortTermEnergies(buf)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, energies[0], 1e-12)
}

func TestSNRQuietSectionSetsFloor(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// Loud tone followed by a near-silent stretch: the quiet frames set
	// the noise floor and the ratio comes out strongly positive.
	buf := sineBuffer(440, 8000, 16000)
	quiet := noiseBuffer(3, 0.001, 8000, 16000)
	copy(buf.Samples[8000:], quiet.Samples[8000:])

	snr, err := e.SNR(buf)
	require.NoError(t, err)
	assert.Greater(t, snr, 30.0)
}

func TestSNRDegenerateOnDigitalSilence(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// An exactly-zero stretch longer than a frame zeroes the noise
	// floor; the ratio is undefined rather than +Inf.
	buf := sineBuffer(440, 8000, 16000)
	for i := 8000; i < 16000; i++ {
		buf.Samples[i] = 0
	}

	_, err := e.SNR(buf)
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)

	_, err = e.SNR(zeroBuffer(8000, 8000))
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)
}

func TestSNRIgnoresTrailingPadding(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// A steady tone whose length is not a hop multiple: the padded tail
	// frame must not read as silence.
	buf := sineBuffer(440, 8000, 8000+37)

	snr, err := e.SNR(buf)
	require.NoError(t, err)
	assert.Less(t, math.Abs(snr), 6.0)
}

func TestSpectralCentroidOfTone(t *testing.T) {
	e := newTestExtractor(t, 8000)
	buf := sineBuffer(440, 8000, 8000)

	centroid, err := e.SpectralCentroid(buf)
	require.NoError(t, err)

	// Mass concentrates near the tone; the 25 ms frame gives 40 Hz bins.
	assert.InDelta(t, 440.0, centroid, 150.0)
}

func TestSpectralCentroidBounds(t *testing.T) {
	e := newTestExtractor(t, 8000)

	centroids, err := e.SpectralCentroids(noiseBuffer(4, 1.0, 8000, 8000))
	require.NoError(t, err)
	for _, c := range centroids {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 4000.0)
	}
}

func TestSpectralCentroidDegenerate(t *testing.T) {
	e := newTestExtractor(t, 8000)

	_, err := e.SpectralCentroid(zeroBuffer(8000, 8000))
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)
}

func TestSpectralRolloff(t *testing.T) {
	e := newTestExtractor(t, 8000)

	rolloff, err := e.SpectralRolloff(sineBuffer(440, 8000, 8000))
	require.NoError(t, err)

	// Nearly all energy of a pure tone sits at the tone itself.
	assert.InDelta(t, 440.0, rolloff, 150.0)

	rolloffs, err := e.SpectralRolloffs(noiseBuffer(5, 1.0, 8000, 8000))
	require.NoError(t, err)
	for _, r := range rolloffs {
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 4000.0)
	}
}

func TestRolloffFractionOrdering(t *testing.T) {
	eLow, err := NewExtractor(8000, func() Params {
		p := DefaultParams(8000)
		p.RolloffFraction = 0.5
		return p
	}())
	require.NoError(t, err)
	eHigh := newTestExtractor(t, 8000) // 0.85

	buf := noiseBuffer(6, 1.0, 8000, 8000)

	low, err := eLow.SpectralRolloff(buf)
	require.NoError(t, err)
	high, err := eHigh.SpectralRolloff(buf)
	require.NoError(t, err)

	assert.LessOrEqual(t, low, high)
}

func TestRolloffDegenerate(t *testing.T) {
	e := newTestExtractor(t, 8000)

	_, err := e.SpectralRolloff(zeroBuffer(8000, 8000))
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)
}

func TestHNROfPeriodicSignal(t *testing.T) {
	e := newTestExtractor(t, 8000)

	hnr, err := e.HNR(sineBuffer(440, 8000, 8000))
	require.NoError(t, err)
	assert.Greater(t, hnr, 10.0)
}

func TestHNRDegenerateOnNoise(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// White noise has no autocorrelation peak above the voicing
	// threshold in the pitch lag range.
	_, err := e.HNR(noiseBuffer(7, 1.0, 8000, 8000))
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)

	_, err = e.HNR(zeroBuffer(8000, 8000))
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)
}

func TestPitchOfSine(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// 100 Hz has an exact 80-sample period at 8 kHz.
	pitch, err := e.Pitch(sineBuffer(100, 8000, 8000))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pitch, 2.0)

	// 440 Hz falls between integer lags (18.2 samples); the estimate is
	// quantized to the nearest lag.
	pitch, err = e.Pitch(sineBuffer(440, 8000, 8000))
	require.NoError(t, err)
	assert.InDelta(t, 440.0, pitch, 25.0)
}

func TestPitchWithinConfiguredRange(t *testing.T) {
	e := newTestExtractor(t, 8000)

	pitch, err := e.Pitch(sineBuffer(200, 8000, 8000))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pitch, 50.0)
	assert.LessOrEqual(t, pitch, 500.0)
}

func TestPitchDegenerate(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// No autocorrelation peak means no pitch, same as HNR.
	_, err := e.Pitch(noiseBuffer(9, 1.0, 8000, 8000))
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)

	_, err = e.Pitch(zeroBuffer(8000, 8000))
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)

	_, err = e.Pitch(sineBuffer(440, 16000, 16000))
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)
}

func TestPitchAgreesWithHNRVoicing(t *testing.T) {
	e := newTestExtractor(t, 8000)
	buf := sineBuffer(150, 8000, 8000)

	// Both descriptors share the voicing decision: a signal with an HNR
	// has a pitch and vice versa.
	_, hnrErr := e.HNR(buf)
	_, pitchErr := e.Pitch(buf)
	require.NoError(t, hnrErr)
	require.NoError(t, pitchErr)
}

func TestHNRTooShortForPitchRange(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// 10 samples cannot hold the 16-sample minimum pitch lag.
	buf := sineBuffer(440, 8000, 10)
	_, err := e.HNR(buf)
	assert.ErrorIs(t, err, signal.ErrDegenerateSignal)
}

func TestMFCCMeanVector(t *testing.T) {
	e := newTestExtractor(t, 8000)

	coeffs, err := e.MFCC(sineBuffer(440, 8000, 8000))
	require.NoError(t, err)
	require.Len(t, coeffs, 13)
	for i, c := range coeffs {
		assert.False(t, math.IsNaN(c), "coefficient %d", i)
		assert.False(t, math.IsInf(c, 0), "coefficient %d", i)
	}

	frames, err := e.MFCCFrames(sineBuffer(440, 8000, 8000))
	require.NoError(t, err)
	require.NotEmpty(t, frames)
	for _, frame := range frames {
		require.Len(t, frame, 13)
	}
}

func TestAnalyzeAllSucceedOnTone(t *testing.T) {
	e := newTestExtractor(t, 8000)

	// Tone plus a little noise keeps every descriptor well-defined.
	buf := sineBuffer(440, 8000, 8000)
	noise := noiseBuffer(8, 0.01, 8000, 8000)
	for i := range buf.Samples {
		buf.Samples[i] += noise.Samples[i]
	}

	result := e.Analyze(buf)
	assert.True(t, result.Ok(), "errors: %v", result.Errs)

	for _, name := range AllFeatures {
		_, present := result.Values[name]
		assert.True(t, present, "missing %s", name)
	}
	assert.True(t, result.Values[FeatureMFCC].IsVector())
	assert.False(t, result.Values[FeatureZCR].IsVector())
}

func TestAnalyzePartialFailure(t *testing.T) {
	e := newTestExtractor(t, 8000)

	result := e.Analyze(zeroBuffer(8000, 8000))
	assert.False(t, result.Ok())

	// Time-domain rates and energies are well-defined on silence.
	assert.Contains(t, result.Values, FeatureZCR)
	assert.Contains(t, result.Values, FeatureEnergy)
	assert.Contains(t, result.Values, FeatureMFCC)

	// Ratios and spectral centers of mass are not.
	for _, name := range []string{FeatureSNR, FeatureCentroid, FeatureRolloff, FeatureHNR} {
		err, present := result.Errs[name]
		require.True(t, present, "expected error for %s", name)
		assert.ErrorIs(t, err, signal.ErrDegenerateSignal)
		assert.NotContains(t, result.Values, name)
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]float64{1, 2, 3, 4})
	assert.InDelta(t, 2.5, stats.Mean, 1e-12)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 4.0, stats.Max)
	assert.Greater(t, stats.Variance, 0.0)

	assert.Equal(t, Stats{}, Summarize(nil))
}
