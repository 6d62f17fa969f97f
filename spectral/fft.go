// Package spectral computes frequency-domain representations of frames
// and whole signals: one-sided magnitude spectra, dominant-frequency
// detection, and mel-cepstral features.
package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// fftReal computes the complex DFT of a real-valued signal.
// go-dsp handles arbitrary lengths (including non-powers-of-two) exactly,
// so no internal zero-padding is needed and bin k always maps to
// k * sampleRate / N for the true input length N.
func fftReal(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// ifftReal computes the inverse DFT and returns the real part
func ifftReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	out := make([]float64, len(result))
	for i, v := range result {
		out[i] = real(v)
	}
	return out
}
