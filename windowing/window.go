// Package windowing provides tapering functions applied to analysis frames
// to reduce spectral leakage before frequency transformation.
package windowing

import (
	"fmt"

	"github.com/jmvoss/sonalyze/signal"
)

// Window is a fixed-length tapering function
type Window interface {
	// Name returns the window type identifier ("hann", "hamming", ...)
	Name() string

	// Len returns the window size in samples
	Len() int

	// Apply multiplies the window into a copy of the frame. The frame
	// length must equal Len.
	Apply(frame []float64) ([]float64, error)

	// ApplyInPlace multiplies the window into the frame itself
	ApplyInPlace(frame []float64) error

	// Coefficients returns a copy of the window coefficients
	Coefficients() []float64
}

// ByName constructs a window of the given type and size. Supported names:
// "hann", "hamming", "blackman", "rectangular".
func ByName(name string, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", signal.ErrInvalidParameter, size)
	}

	switch name {
	case "hann":
		return NewHann(size), nil
	case "hamming":
		return NewHamming(size), nil
	case "blackman":
		return NewBlackman(size), nil
	case "rectangular":
		return NewRectangular(size), nil
	default:
		return nil, fmt.Errorf("%w: unknown window type %q", signal.ErrInvalidParameter, name)
	}
}

// base carries the shared coefficient storage and application logic
type base struct {
	name         string
	coefficients []float64
}

func (b *base) Name() string { return b.name }
func (b *base) Len() int     { return len(b.coefficients) }

func (b *base) Apply(frame []float64) ([]float64, error) {
	if len(frame) != len(b.coefficients) {
		return nil, fmt.Errorf("%w: frame length %d does not match window size %d",
			signal.ErrInvalidParameter, len(frame), len(b.coefficients))
	}

	windowed := make([]float64, len(frame))
	for i := range frame {
		windowed[i] = frame[i] * b.coefficients[i]
	}
	return windowed, nil
}

func (b *base) ApplyInPlace(frame []float64) error {
	if len(frame) != len(b.coefficients) {
		return fmt.Errorf("%w: frame length %d does not match window size %d",
			signal.ErrInvalidParameter, len(frame), len(b.coefficients))
	}

	for i := range frame {
		frame[i] *= b.coefficients[i]
	}
	return nil
}

func (b *base) Coefficients() []float64 {
	coeffs := make([]float64, len(b.coefficients))
	copy(coeffs, b.coefficients)
	return coeffs
}
