package filters

import (
	"fmt"
	"math"

	"github.com/jmvoss/sonalyze/signal"
)

// Compress applies dynamic range compression: samples whose magnitude
// exceeds threshold are attenuated by ratio, samples below pass unchanged.
// The transfer curve is continuous at the threshold:
//
//	|y| = threshold + (|x| - threshold) / ratio   for |x| > threshold
//
// threshold is in normalized amplitude (0, 1]; ratio >= 1 (a ratio of 1
// is the identity).
func Compress(buf *signal.Buffer, threshold, ratio float64) (*signal.Buffer, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("compress: %w: threshold %.3f outside (0, 1]",
			signal.ErrInvalidParameter, threshold)
	}
	if ratio < 1 {
		return nil, fmt.Errorf("compress: %w: ratio %.3f must be >= 1",
			signal.ErrInvalidParameter, ratio)
	}

	out := make([]float64, len(buf.Samples))
	for i, s := range buf.Samples {
		mag := math.Abs(s)
		if mag <= threshold {
			out[i] = s
			continue
		}
		compressed := threshold + (mag-threshold)/ratio
		out[i] = math.Copysign(compressed, s)
	}

	return &signal.Buffer{
		Samples:    out,
		SampleRate: buf.SampleRate,
	}, nil
}
