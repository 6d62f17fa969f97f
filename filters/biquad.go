// Package filters provides the pre-processing stages applied to a signal
// buffer ahead of analysis: normalization, DC removal, high/low/band-pass
// filtering and dynamic range compression. All entry points are pure: they
// take a Buffer and return a new Buffer of equal length.
package filters

import (
	"fmt"
	"math"

	"github.com/jmvoss/sonalyze/signal"
)

// Biquad is a second-order IIR section in Direct Form II.
//
// Coefficients follow Robert Bristow-Johnson's "Cookbook formulae for
// audio EQ biquad filter coefficients"
// https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html
//
// The difference equation is:
// y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
type Biquad struct {
	b0, b1, b2 float64 // Numerator coefficients (a0-normalized)
	a1, a2     float64 // Denominator coefficients (a0-normalized)

	// Delay line for direct form II
	w1, w2 float64
}

// butterworthQ gives a maximally flat passband for a single second-order
// section.
const butterworthQ = math.Sqrt2 / 2

// newHighPassBiquad designs a -3 dB-at-cutoff Butterworth high-pass
// section. The pole radius stays strictly inside the unit circle for any
// cutoff in (0, Nyquist), so the section is unconditionally stable there.
func newHighPassBiquad(sampleRate int, cutoffHz float64) *Biquad {
	w0 := 2.0 * math.Pi * cutoffHz / float64(sampleRate)
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * butterworthQ)

	a0 := 1.0 + alpha
	return &Biquad{
		b0: (1.0 + cosW0) / 2.0 / a0,
		b1: -(1.0 + cosW0) / a0,
		b2: (1.0 + cosW0) / 2.0 / a0,
		a1: -2.0 * cosW0 / a0,
		a2: (1.0 - alpha) / a0,
	}
}

// newLowPassBiquad designs the complementary Butterworth low-pass section
func newLowPassBiquad(sampleRate int, cutoffHz float64) *Biquad {
	w0 := 2.0 * math.Pi * cutoffHz / float64(sampleRate)
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * butterworthQ)

	a0 := 1.0 + alpha
	return &Biquad{
		b0: (1.0 - cosW0) / 2.0 / a0,
		b1: (1.0 - cosW0) / a0,
		b2: (1.0 - cosW0) / 2.0 / a0,
		a1: -2.0 * cosW0 / a0,
		a2: (1.0 - alpha) / a0,
	}
}

// Process applies the section to a single sample
func (f *Biquad) Process(input float64) float64 {
	// w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
	w := input - f.a1*f.w1 - f.a2*f.w2

	// y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
	output := f.b0*w + f.b1*f.w1 + f.b2*f.w2

	f.w2 = f.w1
	f.w1 = w

	return output
}

// ProcessBuffer applies the section to an entire buffer of samples
func (f *Biquad) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = f.Process(sample)
	}
	return output
}

// Reset clears the delay line
func (f *Biquad) Reset() {
	f.w1, f.w2 = 0.0, 0.0
}

// validateCutoff rejects cutoffs outside the open interval (0, Nyquist)
func validateCutoff(buf *signal.Buffer, cutoffHz float64) error {
	if cutoffHz <= 0 || cutoffHz >= buf.Nyquist() {
		return fmt.Errorf("%w: cutoff %.2f Hz outside (0, %.2f) for sample rate %d",
			signal.ErrInvalidParameter, cutoffHz, buf.Nyquist(), buf.SampleRate)
	}
	return nil
}

// HighPass attenuates content below cutoffHz, with -3 dB at the cutoff
func HighPass(buf *signal.Buffer, cutoffHz float64) (*signal.Buffer, error) {
	if err := validateCutoff(buf, cutoffHz); err != nil {
		return nil, fmt.Errorf("high-pass: %w", err)
	}

	section := newHighPassBiquad(buf.SampleRate, cutoffHz)
	return &signal.Buffer{
		Samples:    section.ProcessBuffer(buf.Samples),
		SampleRate: buf.SampleRate,
	}, nil
}

// LowPass attenuates content above cutoffHz, with -3 dB at the cutoff
func LowPass(buf *signal.Buffer, cutoffHz float64) (*signal.Buffer, error) {
	if err := validateCutoff(buf, cutoffHz); err != nil {
		return nil, fmt.Errorf("low-pass: %w", err)
	}

	section := newLowPassBiquad(buf.SampleRate, cutoffHz)
	return &signal.Buffer{
		Samples:    section.ProcessBuffer(buf.Samples),
		SampleRate: buf.SampleRate,
	}, nil
}

// BandPass keeps content between lowHz and highHz by composing a
// high-pass at lowHz with a low-pass at highHz.
func BandPass(buf *signal.Buffer, lowHz, highHz float64) (*signal.Buffer, error) {
	if lowHz >= highHz {
		return nil, fmt.Errorf("band-pass: %w: low cutoff %.2f Hz must be below high cutoff %.2f Hz",
			signal.ErrInvalidParameter, lowHz, highHz)
	}

	highPassed, err := HighPass(buf, lowHz)
	if err != nil {
		return nil, fmt.Errorf("band-pass: %w", err)
	}

	out, err := LowPass(highPassed, highHz)
	if err != nil {
		return nil, fmt.Errorf("band-pass: %w", err)
	}
	return out, nil
}
