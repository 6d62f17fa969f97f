package filters

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/jmvoss/sonalyze/signal"
)

// Normalize rescales the signal so the maximum absolute amplitude is 1.0.
// An all-zero signal has no defined scale and is rejected.
func Normalize(buf *signal.Buffer) (*signal.Buffer, error) {
	peak := floats.Norm(buf.Samples, math.Inf(1))
	if peak == 0 {
		return nil, fmt.Errorf("normalize: %w: all samples are zero", signal.ErrDegenerateSignal)
	}

	out := make([]float64, len(buf.Samples))
	floats.ScaleTo(out, 1.0/peak, buf.Samples)

	return &signal.Buffer{
		Samples:    out,
		SampleRate: buf.SampleRate,
	}, nil
}
