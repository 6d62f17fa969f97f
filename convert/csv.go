// Package convert serializes a signal buffer to a sample-indexed table
// and reconstructs it losslessly. The table layout is one row per sample:
//
//	index,time_seconds,amplitude,sample_rate
//
// Amplitudes are written in shortest-round-trip form, so reconstruction
// reproduces the original float64 values exactly. The sample rate is
// carried on every row, pandas-style, and recovered from the first.
package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jmvoss/sonalyze/signal"
)

var header = []string{"index", "time_seconds", "amplitude", "sample_rate"}

// WriteCSV writes the buffer as a sample-indexed CSV table
func WriteCSV(w io.Writer, buf *signal.Buffer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("convert: write header: %w", err)
	}

	rate := strconv.Itoa(buf.SampleRate)
	for i, s := range buf.Samples {
		t := float64(i) / float64(buf.SampleRate)
		record := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.FormatFloat(s, 'g', -1, 64),
			rate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("convert: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reconstructs a buffer from a table written by WriteCSV. A table
// with a foreign header is rejected as an unsupported format; rows that
// fail to parse make the file corrupt.
func ReadCSV(r io.Reader) (*signal.Buffer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("convert: %w: missing header: %v", signal.ErrCorruptFile, err)
	}
	for i, name := range header {
		if first[i] != name {
			return nil, fmt.Errorf("convert: %w: header column %d is %q, want %q",
				signal.ErrUnsupportedFormat, i, first[i], name)
		}
	}

	var samples []float64
	sampleRate := 0

	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("convert: %w: row %d: %v", signal.ErrCorruptFile, row, err)
		}

		amplitude, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("convert: %w: row %d: bad amplitude %q",
				signal.ErrCorruptFile, row, record[2])
		}

		rate, err := strconv.Atoi(record[3])
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("convert: %w: row %d: bad sample rate %q",
				signal.ErrCorruptFile, row, record[3])
		}
		if sampleRate == 0 {
			sampleRate = rate
		} else if rate != sampleRate {
			return nil, fmt.Errorf("convert: %w: row %d: sample rate changed from %d to %d",
				signal.ErrCorruptFile, row, sampleRate, rate)
		}

		samples = append(samples, amplitude)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("convert: %w: no sample rows", signal.ErrCorruptFile)
	}

	return signal.New(samples, sampleRate)
}
