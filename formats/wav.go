package formats

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jmvoss/sonalyze/signal"
)

// decodeWAV decodes a PCM WAV stream to normalized float64 samples
func decodeWAV(r io.ReadSeeker) (decoded, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return decoded{}, fmt.Errorf("formats: %w: not a valid WAV file", signal.ErrCorruptFile)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return decoded{}, fmt.Errorf("formats: %w: wav decode: %v", signal.ErrCorruptFile, err)
	}
	if pcm == nil || len(pcm.Data) == 0 {
		return decoded{}, fmt.Errorf("formats: %w: wav file has no samples", signal.ErrCorruptFile)
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

// WriteWAV encodes the buffer as mono 16-bit PCM WAV
func WriteWAV(w io.WriteSeeker, buf *signal.Buffer) error {
	enc := wav.NewEncoder(w, buf.SampleRate, 16, 1, 1)

	data := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		// Clamp before quantizing so over-unity amplitudes cannot wrap
		v := math.Round(s * 32767.0)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		data[i] = int(v)
	}

	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("formats: wav encode: %w", err)
	}
	return enc.Close()
}
