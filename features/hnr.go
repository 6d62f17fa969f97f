package features

import (
	"fmt"
	"math"

	"github.com/jmvoss/sonalyze/signal"
)

// autocorrelationPeak searches the lag window implied by the configured
// pitch range for the strongest autocorrelation peak and returns the
// winning lag together with its height normalized by the zero-lag value.
// A peak below the voicing threshold means no well-defined pitch
// (unvoiced or noise-like segment) and is reported as a degenerate
// signal.
func (e *Extractor) autocorrelationPeak(buf *signal.Buffer) (int, float64, error) {
	samples := buf.Samples

	r0 := 0.0
	for _, s := range samples {
		r0 += s * s
	}
	if r0 == 0 {
		return 0, 0, fmt.Errorf("%w: zero-energy signal", signal.ErrDegenerateSignal)
	}

	// Lag window from the pitch range: high pitch -> short period
	minLag := max(1, int(float64(buf.SampleRate)/e.params.MaxPitchHz))
	maxLag := int(float64(buf.SampleRate) / e.params.MinPitchHz)
	maxLag = min(maxLag, len(samples)-1)

	if minLag > maxLag {
		return 0, 0, fmt.Errorf("%w: signal too short for pitch periods down to %.1f Hz",
			signal.ErrDegenerateSignal, e.params.MaxPitchHz)
	}

	peak := 0.0
	bestLag := 0
	for lag := minLag; lag <= maxLag; lag++ {
		r := 0.0
		for i := 0; i < len(samples)-lag; i++ {
			r += samples[i] * samples[i+lag]
		}
		if r > peak {
			peak = r
			bestLag = lag
		}
	}

	rho := peak / r0
	if rho < e.params.VoicingThreshold {
		return 0, 0, fmt.Errorf("%w: no autocorrelation peak above %.2f (unvoiced segment)",
			signal.ErrDegenerateSignal, e.params.VoicingThreshold)
	}

	return bestLag, rho, nil
}

// HNR estimates the harmonics-to-noise ratio in dB from the normalized
// autocorrelation. The peak height rho splits the signal into a harmonic
// part (rho) and a residual (1 - rho):
//
//	HNR = 10 * log10(rho / (1 - rho))
func (e *Extractor) HNR(buf *signal.Buffer) (float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return 0, err
	}

	_, rho, err := e.autocorrelationPeak(buf)
	if err != nil {
		return 0, fmt.Errorf("hnr: %w", err)
	}

	if rho >= 1 {
		// Biased estimator keeps rho below 1 for any non-constant
		// signal; guard the log anyway.
		return 0, fmt.Errorf("hnr: %w: fully periodic signal has no residual", signal.ErrDegenerateSignal)
	}

	return 10.0 * math.Log10(rho/(1.0-rho)), nil
}
