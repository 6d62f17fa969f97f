package windowing

import "math"

// Hamming is the raised-cosine window with non-zero endpoints, trading
// sidelobe rolloff for a lower first sidelobe (-43 dB) than Hann.
type Hamming struct {
	base
}

// NewHamming creates a symmetric Hamming window of the given size
func NewHamming(size int) *Hamming {
	h := &Hamming{base{name: "hamming"}}
	h.coefficients = make([]float64, size)

	if size == 1 {
		h.coefficients[0] = 1.0
		return h
	}

	denominator := float64(size - 1)
	for i := range size {
		h.coefficients[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/denominator)
	}
	return h
}
