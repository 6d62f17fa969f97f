package formats

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/jmvoss/sonalyze/signal"
)

// decodeMP3 decodes an MP3 stream. go-mp3 always emits 16-bit
// little-endian stereo interleaved PCM regardless of the source channel
// layout.
func decodeMP3(r io.Reader) (decoded, error) {
	d, err := gomp3.NewDecoder(r)
	if err != nil {
		return decoded{}, fmt.Errorf("formats: %w: mp3 decode: %v", signal.ErrCorruptFile, err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return decoded{}, fmt.Errorf("formats: %w: mp3 read: %v", signal.ErrCorruptFile, err)
	}
	if len(raw) < 2 {
		return decoded{}, fmt.Errorf("formats: %w: mp3 stream has no samples", signal.ErrCorruptFile)
	}

	numSamples := len(raw) / 2
	samples := make([]float64, numSamples)
	for i := range numSamples {
		v := int16(binary.LittleEndian.Uint16(raw[2*i : 2*i+2]))
		samples[i] = float64(v) / 32768.0
	}

	return decoded{
		interleaved: samples,
		sampleRate:  d.SampleRate(),
		channels:    2,
	}, nil
}
