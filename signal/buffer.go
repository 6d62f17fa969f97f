// Package signal defines the canonical in-memory representation of a mono
// digitized signal and the error kinds shared across the library.
package signal

import (
	"fmt"
	"math"
	"time"
)

// Buffer holds a mono signal as normalized float64 samples plus its sample
// rate. Buffers are immutable by convention: transformations return new
// Buffers rather than mutating in place.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// New validates and constructs a Buffer. The sample slice is used as-is
// (not copied); the caller hands over ownership.
func New(samples []float64, sampleRate int) (*Buffer, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidParameter)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, sampleRate)
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: sampleRate,
	}, nil
}

// Len returns the number of samples
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the signal duration
func (b *Buffer) Duration() time.Duration {
	seconds := float64(len(b.Samples)) / float64(b.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Nyquist returns half the sample rate, the highest representable frequency
func (b *Buffer) Nyquist() float64 {
	return float64(b.SampleRate) / 2.0
}

// Clone returns a deep copy of the buffer
func (b *Buffer) Clone() *Buffer {
	samples := make([]float64, len(b.Samples))
	copy(samples, b.Samples)

	return &Buffer{
		Samples:    samples,
		SampleRate: b.SampleRate,
	}
}

// Peak returns the maximum absolute sample amplitude
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, s := range b.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// MeanPower returns the mean squared amplitude of the signal
func (b *Buffer) MeanPower() float64 {
	sum := 0.0
	for _, s := range b.Samples {
		sum += s * s
	}
	return sum / float64(len(b.Samples))
}
