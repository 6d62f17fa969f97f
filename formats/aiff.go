package formats

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/jmvoss/sonalyze/signal"
)

// decodeAIFF decodes a PCM AIFF stream
func decodeAIFF(r io.ReadSeeker) (decoded, error) {
	d := aiff.NewDecoder(r)
	if !d.IsValidFile() {
		return decoded{}, fmt.Errorf("formats: %w: not a valid AIFF file", signal.ErrCorruptFile)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return decoded{}, fmt.Errorf("formats: %w: aiff decode: %v", signal.ErrCorruptFile, err)
	}
	if pcm == nil || len(pcm.Data) == 0 {
		return decoded{}, fmt.Errorf("formats: %w: aiff file has no samples", signal.ErrCorruptFile)
	}

	scale := 1.0 / float64(int(1)<<(d.BitDepth-1))
	samples := make([]float64, len(pcm.Data))
	for i, v := range pcm.Data {
		samples[i] = float64(v) * scale
	}

	return decoded{
		interleaved: samples,
		sampleRate:  int(d.SampleRate),
		channels:    int(d.NumChans),
	}, nil
}
