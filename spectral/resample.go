package spectral

import (
	"fmt"

	"github.com/jmvoss/sonalyze/signal"
)

// Downsample reduces the sample rate by an integer factor. Spectral
// content above the target Nyquist is zeroed in the frequency domain
// before decimation, so nothing aliases back into the kept band. The
// target rate must divide the source rate evenly.
func Downsample(buf *signal.Buffer, targetRate int) (*signal.Buffer, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("downsample: %w: target rate must be positive, got %d",
			signal.ErrInvalidParameter, targetRate)
	}
	if targetRate == buf.SampleRate {
		return buf.Clone(), nil
	}
	if targetRate > buf.SampleRate {
		return nil, fmt.Errorf("downsample: %w: target rate %d exceeds source rate %d",
			signal.ErrInvalidParameter, targetRate, buf.SampleRate)
	}
	if buf.SampleRate%targetRate != 0 {
		return nil, fmt.Errorf("downsample: %w: target rate %d is not an integer divisor of %d",
			signal.ErrInvalidParameter, targetRate, buf.SampleRate)
	}

	n := buf.Len()
	factor := buf.SampleRate / targetRate
	cutoff := float64(targetRate) / 2.0

	// Zero both the positive- and negative-frequency bins above the new
	// Nyquist; the full spectrum must stay conjugate-symmetric for the
	// inverse transform to come back real.
	spectrum := fftReal(buf.Samples)
	for k := range spectrum {
		freq := float64(k) * float64(buf.SampleRate) / float64(n)
		if k > n/2 {
			freq = float64(n-k) * float64(buf.SampleRate) / float64(n)
		}
		if freq > cutoff {
			spectrum[k] = 0
		}
	}

	filtered := ifftReal(spectrum)
	out := make([]float64, 0, (n+factor-1)/factor)
	for i := 0; i < n; i += factor {
		out = append(out, filtered[i])
	}

	return signal.New(out, targetRate)
}
