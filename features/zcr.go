package features

import "github.com/jmvoss/sonalyze/signal"

// FrameZCR returns the fraction of adjacent sample pairs with opposite
// sign, in [0, 1]. A frame of length one has no pairs and a rate of 0 by
// convention.
func FrameZCR(samples []float64) float64 {
	if len(samples) < 2 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0 && samples[i] < 0) || (samples[i-1] < 0 && samples[i] >= 0) {
			crossings++
		}
	}

	return float64(crossings) / float64(len(samples)-1)
}

// ZeroCrossingRates returns the per-frame zero-crossing rate in ascending
// start-index order.
func (e *Extractor) ZeroCrossingRates(buf *signal.Buffer) ([]float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return nil, err
	}

	rates := make([]float64, 0, e.framer.Count(buf))
	for frame := range e.framer.Raw(buf) {
		rates = append(rates, FrameZCR(frame.Samples))
	}
	return rates, nil
}

// ZeroCrossingRate returns the whole-signal zero-crossing rate, computed
// directly over all adjacent sample pairs.
func (e *Extractor) ZeroCrossingRate(buf *signal.Buffer) (float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return 0, err
	}
	return FrameZCR(buf.Samples), nil
}
