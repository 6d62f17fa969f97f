// Package features computes the acoustic descriptors of a signal buffer:
// signal-to-noise ratio, zero-crossing rate, short-term energy, spectral
// centroid, spectral rolloff, MFCC and harmonics-to-noise ratio. Every
// computation is a pure function of its inputs; no state survives a call.
package features

import (
	"fmt"

	"github.com/jmvoss/sonalyze/signal"
	"github.com/jmvoss/sonalyze/spectral"
)

// Params configures short-term analysis. Defaults follow common speech
// analysis practice: 25 ms frames, 10 ms hop, Hann taper.
type Params struct {
	FrameLength int    // Analysis frame in samples
	HopLength   int    // Step between frames in samples
	WindowName  string // Taper for spectral frames ("hann", "hamming", ...)

	RolloffFraction float64 // Cumulative-energy fraction for rolloff (0, 1]

	MFCC spectral.MFCCParams

	// HNR pitch-lag search range and voicing decision
	MinPitchHz       float64
	MaxPitchHz       float64
	VoicingThreshold float64 // Minimum normalized autocorrelation peak

	// NormalizeEnergy divides short-term energy by the frame length
	NormalizeEnergy bool
}

// DefaultParams returns the standard configuration for the given sample
// rate: 25 ms / 10 ms framing, Hann window, 0.85 rolloff, 26 mel filters,
// 13 cepstral coefficients, 50-500 Hz pitch search.
func DefaultParams(sampleRate int) Params {
	return Params{
		FrameLength:      sampleRate * 25 / 1000,
		HopLength:        sampleRate * 10 / 1000,
		WindowName:       "hann",
		RolloffFraction:  0.85,
		MFCC:             spectral.DefaultMFCCParams(sampleRate),
		MinPitchHz:       50.0,
		MaxPitchHz:       500.0,
		VoicingThreshold: 0.3,
	}
}

// validate rejects parameter combinations the computations cannot honor
func (p Params) validate(sampleRate int) error {
	if p.RolloffFraction <= 0 || p.RolloffFraction > 1 {
		return fmt.Errorf("%w: rolloff fraction %.3f outside (0, 1]",
			signal.ErrInvalidParameter, p.RolloffFraction)
	}

	nyquist := float64(sampleRate) / 2.0
	if p.MinPitchHz <= 0 || p.MaxPitchHz <= p.MinPitchHz || p.MaxPitchHz >= nyquist {
		return fmt.Errorf("%w: pitch range [%.1f, %.1f] Hz invalid for Nyquist %.1f Hz",
			signal.ErrInvalidParameter, p.MinPitchHz, p.MaxPitchHz, nyquist)
	}
	if p.VoicingThreshold <= 0 || p.VoicingThreshold >= 1 {
		return fmt.Errorf("%w: voicing threshold %.3f outside (0, 1)",
			signal.ErrInvalidParameter, p.VoicingThreshold)
	}
	return nil
}
