// Package framing splits a signal buffer into overlapping, windowed,
// fixed-length frames for short-term analysis.
package framing

import (
	"fmt"
	"iter"

	"github.com/jmvoss/sonalyze/signal"
	"github.com/jmvoss/sonalyze/windowing"
)

// Frame is a fixed-length slice of a signal starting at StartIndex.
// Samples is owned by the receiver of the frame; the framer never reuses
// the backing array between frames.
type Frame struct {
	Samples    []float64
	StartIndex int
}

// Framer produces the frame decomposition of a buffer. It carries no
// per-signal state: the same framer can be applied to any number of
// buffers, and the sequences it returns can be iterated repeatedly.
type Framer struct {
	frameLength int
	hopLength   int
	window      windowing.Window
}

// New constructs a framer. frameLength and hopLength are in samples;
// hopLength must not exceed frameLength (overlap is allowed, gaps are
// not). window taper is applied to each frame by Frames; its size must
// match frameLength.
func New(frameLength, hopLength int, window windowing.Window) (*Framer, error) {
	if frameLength <= 0 {
		return nil, fmt.Errorf("framer: %w: frame length must be positive, got %d",
			signal.ErrInvalidParameter, frameLength)
	}
	if hopLength <= 0 {
		return nil, fmt.Errorf("framer: %w: hop length must be positive, got %d",
			signal.ErrInvalidParameter, hopLength)
	}
	if hopLength > frameLength {
		return nil, fmt.Errorf("framer: %w: hop length %d exceeds frame length %d",
			signal.ErrInvalidParameter, hopLength, frameLength)
	}
	if window != nil && window.Len() != frameLength {
		return nil, fmt.Errorf("framer: %w: window size %d does not match frame length %d",
			signal.ErrInvalidParameter, window.Len(), frameLength)
	}

	return &Framer{
		frameLength: frameLength,
		hopLength:   hopLength,
		window:      window,
	}, nil
}

// NewWithWindowName constructs a framer with a window looked up by name
func NewWithWindowName(frameLength, hopLength int, windowName string) (*Framer, error) {
	window, err := windowing.ByName(windowName, frameLength)
	if err != nil {
		return nil, fmt.Errorf("framer: %w", err)
	}
	return New(frameLength, hopLength, window)
}

// FrameLength returns the frame length in samples
func (f *Framer) FrameLength() int { return f.frameLength }

// HopLength returns the hop length in samples
func (f *Framer) HopLength() int { return f.hopLength }

// Count returns the number of frames the buffer decomposes into. Every
// sample is covered: a trailing partial frame is zero-padded, not dropped.
func (f *Framer) Count(buf *signal.Buffer) int {
	return (buf.Len() + f.hopLength - 1) / f.hopLength
}

// frameAt copies frame i out of the buffer, zero-padding past the end
func (f *Framer) frameAt(buf *signal.Buffer, i int) Frame {
	start := i * f.hopLength
	samples := make([]float64, f.frameLength)
	copy(samples, buf.Samples[start:min(start+f.frameLength, buf.Len())])

	return Frame{
		Samples:    samples,
		StartIndex: start,
	}
}

// Raw returns the lazy sequence of unwindowed frames in ascending
// StartIndex order. The sequence is finite and restartable; frames are
// materialized one at a time.
func (f *Framer) Raw(buf *signal.Buffer) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for i := range f.Count(buf) {
			if !yield(f.frameAt(buf, i)) {
				return
			}
		}
	}
}

// Frames returns the lazy sequence of windowed frames. When the framer
// was built without a window the frames pass through untapered.
func (f *Framer) Frames(buf *signal.Buffer) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for i := range f.Count(buf) {
			frame := f.frameAt(buf, i)
			if f.window != nil {
				// Length always matches by construction
				_ = f.window.ApplyInPlace(frame.Samples)
			}
			if !yield(frame) {
				return
			}
		}
	}
}
