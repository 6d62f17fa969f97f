package windowing

import "math"

// Blackman is a three-term cosine window with -58 dB first sidelobe,
// at the cost of a wider main lobe than Hann or Hamming.
type Blackman struct {
	base
}

// NewBlackman creates a symmetric Blackman window of the given size
func NewBlackman(size int) *Blackman {
	b := &Blackman{base{name: "blackman"}}
	b.coefficients = make([]float64, size)

	if size == 1 {
		b.coefficients[0] = 1.0
		return b
	}

	denominator := float64(size - 1)
	for i := range size {
		x := 2 * math.Pi * float64(i) / denominator
		b.coefficients[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return b
}
