package spectral

import "math"

// HzToMel converts frequency in Hz to the mel scale:
// mel(f) = 2595 * log10(1 + f/700)
func HzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// MelToHz converts mel scale back to frequency in Hz
func MelToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// melFilterBank builds numFilters triangular filters over the one-sided
// spectrum of an N-point transform, with centers equally spaced on the
// mel scale between lowFreq and highFreq. Each filter is a row of length
// N/2 + 1.
func melFilterBank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	lowMel := HzToMel(lowFreq)
	highMel := HzToMel(highFreq)

	// numFilters centers plus the two outer edges, equally spaced in mel
	melPoints := make([]float64, numFilters+2)
	melStep := (highMel - lowMel) / float64(numFilters+1)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*melStep
	}

	// Convert the mel points to FFT bin indices
	binPoints := make([]int, len(melPoints))
	for i, mel := range melPoints {
		hz := MelToHz(mel)
		bin := int(math.Floor((float64(fftSize)+1.0)*hz/float64(sampleRate) + 0.5))
		binPoints[i] = min(bin, fftSize/2)
	}

	bins := fftSize/2 + 1
	filterBank := make([][]float64, numFilters)
	for m := range filterBank {
		filterBank[m] = make([]float64, bins)

		leftBin := binPoints[m]
		centerBin := binPoints[m+1]
		rightBin := binPoints[m+2]

		// Rising edge
		for k := leftBin; k < centerBin && k < bins; k++ {
			if centerBin != leftBin {
				filterBank[m][k] = float64(k-leftBin) / float64(centerBin-leftBin)
			}
		}

		// Falling edge
		for k := centerBin; k < rightBin && k < bins; k++ {
			if rightBin != centerBin {
				filterBank[m][k] = float64(rightBin-k) / float64(rightBin-centerBin)
			}
		}
	}

	return filterBank
}

// applyFilterBank reduces a power spectrum to one energy per mel filter
func applyFilterBank(powerSpectrum []float64, filterBank [][]float64) []float64 {
	melEnergies := make([]float64, len(filterBank))

	for m, filter := range filterBank {
		sum := 0.0
		for k := 0; k < len(filter) && k < len(powerSpectrum); k++ {
			sum += powerSpectrum[k] * filter[k]
		}
		melEnergies[m] = sum
	}

	return melEnergies
}
