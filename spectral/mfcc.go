package spectral

import (
	"fmt"
	"math"

	"github.com/jmvoss/sonalyze/signal"
)

// logEnergyFloor bounds mel filter energies away from zero before the
// log compression
const logEnergyFloor = 1e-10

// MFCCParams configures mel-frequency cepstral coefficient extraction
type MFCCParams struct {
	NumCoefficients int     // Coefficients kept after the DCT (default 13)
	NumMelFilters   int     // Triangular mel filters (default 26)
	LowFreq         float64 // Filterbank lower bound in Hz (default 0)
	HighFreq        float64 // Filterbank upper bound in Hz (default Nyquist)
}

// DefaultMFCCParams returns the standard 26-filter, 13-coefficient
// configuration spanning 0 Hz to Nyquist.
func DefaultMFCCParams(sampleRate int) MFCCParams {
	return MFCCParams{
		NumCoefficients: 13,
		NumMelFilters:   26,
		LowFreq:         0.0,
		HighFreq:        float64(sampleRate) / 2.0,
	}
}

// MFCC computes mel-frequency cepstral coefficients from magnitude
// spectra. The filterbank and DCT matrix are built once per FFT size and
// reused across frames.
type MFCC struct {
	params     MFCCParams
	sampleRate int

	filterBank [][]float64
	dctMatrix  [][]float64
	fftSize    int
}

// NewMFCC validates the parameters and creates an MFCC computer
func NewMFCC(sampleRate int, params MFCCParams) (*MFCC, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("mfcc: %w: sample rate must be positive, got %d",
			signal.ErrInvalidParameter, sampleRate)
	}
	if params.NumMelFilters <= 0 {
		return nil, fmt.Errorf("mfcc: %w: filter count must be positive, got %d",
			signal.ErrInvalidParameter, params.NumMelFilters)
	}
	if params.NumCoefficients <= 0 {
		return nil, fmt.Errorf("mfcc: %w: coefficient count must be positive, got %d",
			signal.ErrInvalidParameter, params.NumCoefficients)
	}
	if params.NumCoefficients > params.NumMelFilters {
		return nil, fmt.Errorf("mfcc: %w: %d coefficients requested from %d filters",
			signal.ErrInvalidParameter, params.NumCoefficients, params.NumMelFilters)
	}
	nyquist := float64(sampleRate) / 2.0
	if params.LowFreq < 0 || params.HighFreq > nyquist || params.LowFreq >= params.HighFreq {
		return nil, fmt.Errorf("mfcc: %w: filterbank range [%.1f, %.1f] Hz invalid for Nyquist %.1f Hz",
			signal.ErrInvalidParameter, params.LowFreq, params.HighFreq, nyquist)
	}

	return &MFCC{
		params:     params,
		sampleRate: sampleRate,
	}, nil
}

// initialize builds the filterbank and DCT matrix for the given FFT size
func (m *MFCC) initialize(fftSize int) error {
	// Each triangular filter needs at least its own bin; more filters
	// than spectrum bins cannot be supported by the frame length.
	if m.params.NumMelFilters > fftSize/2 {
		return fmt.Errorf("mfcc: %w: %d mel filters exceed the %d usable bins of a %d-sample frame",
			signal.ErrInvalidParameter, m.params.NumMelFilters, fftSize/2, fftSize)
	}

	m.filterBank = melFilterBank(m.params.NumMelFilters, fftSize, m.sampleRate,
		m.params.LowFreq, m.params.HighFreq)
	m.dctMatrix = dctMatrix(m.params.NumCoefficients, m.params.NumMelFilters)
	m.fftSize = fftSize
	return nil
}

// Compute derives the cepstral coefficients of one spectrum: power
// spectrum through the mel filterbank, log compression with a floor, then
// an orthonormal DCT-II keeping the first NumCoefficients terms.
func (m *MFCC) Compute(spectrum *Spectrum) ([]float64, error) {
	if m.fftSize != spectrum.FFTSize() {
		if err := m.initialize(spectrum.FFTSize()); err != nil {
			return nil, err
		}
	}

	melEnergies := applyFilterBank(spectrum.Power(), m.filterBank)

	logEnergies := make([]float64, len(melEnergies))
	for i, e := range melEnergies {
		logEnergies[i] = math.Log(math.Max(e, logEnergyFloor))
	}

	coeffs := make([]float64, m.params.NumCoefficients)
	for k := range coeffs {
		sum := 0.0
		for n, logE := range logEnergies {
			sum += logE * m.dctMatrix[k][n]
		}
		coeffs[k] = sum
	}

	return coeffs, nil
}

// dctMatrix builds the orthonormal DCT-II matrix mapping numFilters log
// energies to numCoeffs cepstral coefficients.
func dctMatrix(numCoeffs, numFilters int) [][]float64 {
	matrix := make([][]float64, numCoeffs)

	for k := range matrix {
		matrix[k] = make([]float64, numFilters)

		scale := math.Sqrt(2.0 / float64(numFilters))
		if k == 0 {
			scale = math.Sqrt(1.0 / float64(numFilters))
		}

		for n := range matrix[k] {
			matrix[k][n] = scale * math.Cos(math.Pi*float64(k)*(float64(n)+0.5)/float64(numFilters))
		}
	}

	return matrix
}
