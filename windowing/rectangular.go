package windowing

// Rectangular is the identity window (no tapering). Maximum frequency
// resolution, worst leakage; useful as a baseline and for transient
// signals shorter than the frame.
type Rectangular struct {
	base
}

// NewRectangular creates a rectangular window of the given size
func NewRectangular(size int) *Rectangular {
	r := &Rectangular{base{name: "rectangular"}}
	r.coefficients = make([]float64, size)
	for i := range size {
		r.coefficients[i] = 1.0
	}
	return r
}
