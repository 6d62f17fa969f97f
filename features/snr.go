package features

import (
	"fmt"
	"math"

	"github.com/jmvoss/sonalyze/signal"
)

// SNR estimates the signal-to-noise ratio in dB as
// 10 * log10(P_signal / P_noise). The noise power is taken from the
// lowest-energy short-term frame, a proxy for the noise floor. A zero
// noise floor (digitally silent stretch or constant signal) leaves the
// ratio undefined and is reported as such, never as +Inf.
func (e *Extractor) SNR(buf *signal.Buffer) (float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return 0, err
	}

	noisePower := math.Inf(1)
	for frame := range e.framer.Raw(buf) {
		// Trailing zero-padding would read as artificial silence, so
		// the mean square runs over the real samples only.
		actual := min(len(frame.Samples), buf.Len()-frame.StartIndex)
		power := FrameEnergy(frame.Samples[:actual], true)
		if power < noisePower {
			noisePower = power
		}
	}

	if noisePower == 0 {
		return 0, fmt.Errorf("snr: %w: noise floor estimate is zero", signal.ErrDegenerateSignal)
	}

	signalPower := buf.MeanPower()
	return 10.0 * math.Log10(signalPower/noisePower), nil
}
