package formats

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/jmvoss/sonalyze/signal"
)

// decodeVorbis decodes an Ogg Vorbis stream
func decodeVorbis(r io.Reader) (decoded, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return decoded{}, fmt.Errorf("formats: %w: vorbis decode: %v", signal.ErrCorruptFile, err)
	}
	if len(data) == 0 {
		return decoded{}, fmt.Errorf("formats: %w: vorbis stream has no samples", signal.ErrCorruptFile)
	}

	samples := make([]float64, len(data))
	for i, v := range data {
		samples[i] = float64(v)
	}

	return decoded{
		interleaved: samples,
		sampleRate:  format.SampleRate,
		channels:    format.Channels,
	}, nil
}
