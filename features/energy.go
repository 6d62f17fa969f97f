package features

import "github.com/jmvoss/sonalyze/signal"

// FrameEnergy returns the sum of squared amplitudes of one frame,
// divided by the frame length when normalized is set.
func FrameEnergy(samples []float64, normalized bool) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s * s
	}
	if normalized && len(samples) > 0 {
		return sum / float64(len(samples))
	}
	return sum
}

// ShortTermEnergies returns the energy of each analysis frame in
// ascending start-index order.
func (e *Extractor) ShortTermEnergies(buf *signal.Buffer) ([]float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return nil, err
	}

	energies := make([]float64, 0, e.framer.Count(buf))
	for frame := range e.framer.Raw(buf) {
		energies = append(energies, FrameEnergy(frame.Samples, e.params.NormalizeEnergy))
	}
	return energies, nil
}

// ShortTermEnergy returns the mean frame energy of the signal
func (e *Extractor) ShortTermEnergy(buf *signal.Buffer) (float64, error) {
	energies, err := e.ShortTermEnergies(buf)
	if err != nil {
		return 0, err
	}
	return mean(energies), nil
}
