package features

import (
	"fmt"

	"github.com/jmvoss/sonalyze/signal"
)

// Pitch estimates the fundamental frequency in Hz as sampleRate / lag,
// where lag is the strongest normalized autocorrelation peak within the
// configured pitch range. The same voicing threshold as HNR applies: an
// unvoiced or noise-like signal has no defined pitch. Resolution is one
// lag step, so the estimate coarsens toward the high end of the range.
func (e *Extractor) Pitch(buf *signal.Buffer) (float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return 0, err
	}

	lag, _, err := e.autocorrelationPeak(buf)
	if err != nil {
		return 0, fmt.Errorf("pitch: %w", err)
	}

	return float64(buf.SampleRate) / float64(lag), nil
}
