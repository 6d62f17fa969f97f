package filters

import (
	"math"

	"github.com/jmvoss/sonalyze/signal"
)

// dcBlocker is a one-pole DC blocking filter:
//
//	y[n] = x[n] - x[n-1] + R * y[n-1]
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio
//     Applications" https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
type dcBlocker struct {
	poleLocation float64 // R parameter (0 < R < 1)
	x1, y1       float64
}

// defaultDCPole gives a cutoff of roughly 8 Hz at 44.1 kHz
const defaultDCPole = 0.995

func (dc *dcBlocker) process(input float64) float64 {
	output := input - dc.x1 + dc.poleLocation*dc.y1
	dc.x1 = input
	dc.y1 = output
	return output
}

// RemoveDC strips the 0 Hz component (constant offset) from the signal.
// An unremoved offset inflates the DC bin of every spectrum and skews
// dominant-frequency detection.
func RemoveDC(buf *signal.Buffer) *signal.Buffer {
	dc := &dcBlocker{poleLocation: defaultDCPole}

	out := make([]float64, len(buf.Samples))
	for i, s := range buf.Samples {
		out[i] = dc.process(s)
	}

	return &signal.Buffer{
		Samples:    out,
		SampleRate: buf.SampleRate,
	}
}

// RemoveDCWithCutoff strips the DC component with an explicit -3 dB
// cutoff. The pole location follows R = 1 - 2*pi*fc/fs, clamped to the
// stable range.
func RemoveDCWithCutoff(buf *signal.Buffer, cutoffHz float64) *signal.Buffer {
	pole := 1.0 - (2.0 * math.Pi * cutoffHz / float64(buf.SampleRate))
	if pole >= 1.0 {
		pole = 0.999
	} else if pole <= 0.0 {
		pole = 0.001
	}

	dc := &dcBlocker{poleLocation: pole}
	out := make([]float64, len(buf.Samples))
	for i, s := range buf.Samples {
		out[i] = dc.process(s)
	}

	return &signal.Buffer{
		Samples:    out,
		SampleRate: buf.SampleRate,
	}
}
