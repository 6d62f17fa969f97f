package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/jmvoss/sonalyze/signal"
)

// Spectrum is the one-sided magnitude spectrum of a real-valued frame.
// Frequencies ascend from 0 to (approximately) Nyquist, with
// len = N/2 + 1 bins for an input of length N.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64

	sampleRate int
	fftSize    int
}

// Transform computes the one-sided DFT magnitude spectrum of the samples,
// exploiting real-input symmetry. Bin k maps to k * sampleRate / N.
func Transform(samples []float64, sampleRate int) (*Spectrum, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("spectral: %w: empty input", signal.ErrInvalidParameter)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("spectral: %w: sample rate must be positive, got %d",
			signal.ErrInvalidParameter, sampleRate)
	}

	n := len(samples)
	bins := n/2 + 1

	result := fftReal(samples)

	frequencies := make([]float64, bins)
	magnitudes := make([]float64, bins)
	for k := range bins {
		frequencies[k] = float64(k) * float64(sampleRate) / float64(n)
		magnitudes[k] = cmplx.Abs(result[k])
	}

	return &Spectrum{
		Frequencies: frequencies,
		Magnitudes:  magnitudes,
		sampleRate:  sampleRate,
		fftSize:     n,
	}, nil
}

// TransformBuffer computes the whole-signal spectrum of a buffer
func TransformBuffer(buf *signal.Buffer) (*Spectrum, error) {
	return Transform(buf.Samples, buf.SampleRate)
}

// Len returns the number of frequency bins
func (s *Spectrum) Len() int {
	return len(s.Magnitudes)
}

// SampleRate returns the sample rate the spectrum was computed at
func (s *Spectrum) SampleRate() int {
	return s.sampleRate
}

// FFTSize returns the input length N the spectrum was computed from
func (s *Spectrum) FFTSize() int {
	return s.fftSize
}

// BinWidth returns the frequency spacing between adjacent bins
func (s *Spectrum) BinWidth() float64 {
	return float64(s.sampleRate) / float64(s.fftSize)
}

// Power returns the power spectrum (squared magnitudes)
func (s *Spectrum) Power() []float64 {
	power := make([]float64, len(s.Magnitudes))
	for i, m := range s.Magnitudes {
		power[i] = m * m
	}
	return power
}

// DominantFrequency returns the frequency of the strongest bin, excluding
// the DC bin so an unremoved offset cannot masquerade as a tone. A
// spectrum with no energy outside DC has no dominant frequency.
func (s *Spectrum) DominantFrequency() (float64, error) {
	if s.Len() < 2 {
		return 0, fmt.Errorf("spectral: %w: spectrum has no bins beyond DC", signal.ErrDegenerateSignal)
	}

	maxIdx := 1
	for k := 2; k < s.Len(); k++ {
		if s.Magnitudes[k] > s.Magnitudes[maxIdx] {
			maxIdx = k
		}
	}

	if s.Magnitudes[maxIdx] == 0 {
		return 0, fmt.Errorf("spectral: %w: no energy outside the DC bin", signal.ErrDegenerateSignal)
	}

	return s.Frequencies[maxIdx], nil
}
