package features

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/jmvoss/sonalyze/signal"
	"github.com/jmvoss/sonalyze/spectral"
)

// Rolloff returns the frequency below which the given fraction of total
// spectral energy lies, scanning cumulative energy upward from bin 0.
// fraction must be in (0, 1].
func Rolloff(spec *spectral.Spectrum, fraction float64) (float64, error) {
	if fraction <= 0 || fraction > 1 {
		return 0, fmt.Errorf("spectral rolloff: %w: fraction %.3f outside (0, 1]",
			signal.ErrInvalidParameter, fraction)
	}

	cumulative := spec.Power()
	floats.CumSum(cumulative, cumulative)

	totalEnergy := cumulative[len(cumulative)-1]
	if totalEnergy == 0 {
		return 0, fmt.Errorf("spectral rolloff: %w: silent frame", signal.ErrDegenerateSignal)
	}

	target := fraction * totalEnergy
	for i, c := range cumulative {
		if c >= target {
			return spec.Frequencies[i], nil
		}
	}

	// Unreachable with exact arithmetic; cover rounding
	return spec.Frequencies[len(spec.Frequencies)-1], nil
}

// SpectralRolloffs returns the per-frame rolloff frequency at the
// configured fraction, in ascending start-index order.
func (e *Extractor) SpectralRolloffs(buf *signal.Buffer) ([]float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return nil, err
	}

	rolloffs := make([]float64, 0, e.framer.Count(buf))
	idx := 0
	for frame := range e.framer.Frames(buf) {
		spec, err := spectral.Transform(frame.Samples, buf.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", idx, err)
		}

		r, err := Rolloff(spec, e.params.RolloffFraction)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", idx, err)
		}
		rolloffs = append(rolloffs, r)
		idx++
	}
	return rolloffs, nil
}

// SpectralRolloff returns the mean per-frame rolloff frequency
func (e *Extractor) SpectralRolloff(buf *signal.Buffer) (float64, error) {
	rolloffs, err := e.SpectralRolloffs(buf)
	if err != nil {
		return 0, err
	}
	return mean(rolloffs), nil
}
