package features

import (
	"fmt"

	"github.com/jmvoss/sonalyze/signal"
	"github.com/jmvoss/sonalyze/spectral"
)

// MFCCFrames returns the cepstral coefficient vector of every analysis
// frame, in ascending start-index order.
func (e *Extractor) MFCCFrames(buf *signal.Buffer) ([][]float64, error) {
	if err := e.checkBuffer(buf); err != nil {
		return nil, err
	}

	mfcc, err := spectral.NewMFCC(buf.SampleRate, e.params.MFCC)
	if err != nil {
		return nil, err
	}

	frames := make([][]float64, 0, e.framer.Count(buf))
	idx := 0
	for frame := range e.framer.Frames(buf) {
		spec, err := spectral.Transform(frame.Samples, buf.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", idx, err)
		}

		coeffs, err := mfcc.Compute(spec)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", idx, err)
		}
		frames = append(frames, coeffs)
		idx++
	}
	return frames, nil
}

// MFCC returns the mean cepstral coefficient vector across all frames,
// one value per coefficient (default 13).
func (e *Extractor) MFCC(buf *signal.Buffer) ([]float64, error) {
	frames, err := e.MFCCFrames(buf)
	if err != nil {
		return nil, err
	}

	numCoeffs := e.params.MFCC.NumCoefficients
	meanCoeffs := make([]float64, numCoeffs)
	for _, coeffs := range frames {
		for k, c := range coeffs {
			meanCoeffs[k] += c
		}
	}
	for k := range meanCoeffs {
		meanCoeffs[k] /= float64(len(frames))
	}
	return meanCoeffs, nil
}
