package windowing

import "math"

// Hann is the raised-cosine window. Good general-purpose leakage control
// with -31 dB first sidelobe.
type Hann struct {
	base
}

// NewHann creates a symmetric Hann window of the given size
func NewHann(size int) *Hann {
	h := &Hann{base{name: "hann"}}
	h.coefficients = make([]float64, size)

	denominator := float64(size - 1)
	if size == 1 {
		h.coefficients[0] = 1.0
		return h
	}

	for i := range size {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
	return h
}
