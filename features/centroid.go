package features

import (
	"fmt"

	"github.com/jmvoss/sonalyze/signal"
	"github.com/jmvoss/sonalyze/spectral"
)

// Centroid returns the frequency-weighted mean of a magnitude spectrum,
// sum(f_i * m_i) / sum(m_i). A silent spectrum has no center of mass.
func Centroid(spec *spectral.Spectrum) (float64, error) {
	numerator := 0.0
	denominator := 0.0
	for i, m := range spec.Magnitudes {
		numerator += spec.Frequencies[i] * m
		denominator += m
	}

	if denominator == 0 {
		return 0, fmt.Errorf("spectral centroid: %w: silent frame", signal.ErrDegenerateSignal)
	}

	return numerator / denominator, nil
}

// SpectralCentroids returns the per-frame spectral centroid in ascending
// start-index order. A silent frame fails the whole track; the error
// names the offending frame.
func (e *Extractor) SpectralCentroids(buf *signal.Buffer) ([]float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return nil, err
	}

	centroids := make([]float64, 0, e.framer.Count(buf))
	idx := 0
	for frame := range e.framer.Frames(buf) {
		spec, err := spectral.Transform(frame.Samples, buf.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", idx, err)
		}

		c, err := Centroid(spec)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", idx, err)
		}
		centroids = append(centroids, c)
		idx++
	}
	return centroids, nil
}

// SpectralCentroid returns the mean per-frame spectral centroid
func (e *Extractor) SpectralCentroid(buf *signal.Buffer) (float64, error) {
	centroids, err := e.SpectralCentroids(buf)
	if err != nil {
		return 0, err
	}
	return mean(centroids), nil
}
