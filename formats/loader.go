// Package formats loads audio containers into signal buffers. Supported
// inputs: WAV, AIFF, MP3, Ogg Vorbis and the CSV table layout produced by
// the convert package. Multichannel sources are reduced to mono by
// equal-weight channel averaging before the analysis core ever sees them.
package formats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmvoss/sonalyze/convert"
	"github.com/jmvoss/sonalyze/logging"
	"github.com/jmvoss/sonalyze/signal"
)

// Metadata describes the decoded source
type Metadata struct {
	Format     string        `json:"format"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // Channel count before mixdown
	Frames     int           `json:"frames"`   // Samples per channel
	Duration   time.Duration `json:"duration"`
}

// decoded is the common shape every container decoder produces
type decoded struct {
	interleaved []float64
	sampleRate  int
	channels    int
}

// Load decodes the file at path into a mono signal buffer, dispatching on
// the file extension. Unknown extensions are an unsupported format;
// decode failures mean the file is corrupt.
func Load(path string) (*signal.Buffer, error) {
	buf, _, err := LoadWithMetadata(path)
	return buf, err
}

// LoadWithMetadata decodes the file and also reports source metadata
func LoadWithMetadata(path string) (*signal.Buffer, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("formats: open %s: %w", path, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))

	var dec decoded
	switch ext {
	case ".wav":
		dec, err = decodeWAV(f)
	case ".aiff", ".aif":
		dec, err = decodeAIFF(f)
	case ".mp3":
		dec, err = decodeMP3(f)
	case ".ogg", ".oga":
		dec, err = decodeVorbis(f)
	case ".csv":
		var buf *signal.Buffer
		buf, err = convert.ReadCSV(f)
		if err != nil {
			return nil, nil, err
		}
		dec = decoded{interleaved: buf.Samples, sampleRate: buf.SampleRate, channels: 1}
	default:
		return nil, nil, fmt.Errorf("formats: %w: extension %q", signal.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, nil, err
	}

	mono := downmix(dec.interleaved, dec.channels)
	buf, err := signal.New(mono, dec.sampleRate)
	if err != nil {
		return nil, nil, fmt.Errorf("formats: %s decoded to an unusable buffer: %w", path, err)
	}

	meta := &Metadata{
		Format:     strings.TrimPrefix(ext, "."),
		SampleRate: dec.sampleRate,
		Channels:   dec.channels,
		Frames:     len(mono),
		Duration:   buf.Duration(),
	}

	logging.GetGlobalLogger().Debug("loaded audio file", logging.Fields{
		"path":        path,
		"format":      meta.Format,
		"sample_rate": meta.SampleRate,
		"channels":    meta.Channels,
		"frames":      meta.Frames,
	})

	return buf, meta, nil
}

// downmix reduces interleaved multichannel samples to mono by averaging
// channels with equal weight. Mono input passes through untouched.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	scale := 1.0 / float64(channels)

	for f := range frames {
		sum := 0.0
		for c := range channels {
			sum += interleaved[f*channels+c]
		}
		mono[f] = sum * scale
	}
	return mono
}
