package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvoss/sonalyze/features"
	"github.com/jmvoss/sonalyze/formats"
)

func testReport(dominant *float64) *report {
	return &report{
		File: "clip.wav",
		Metadata: &formats.Metadata{
			Format:     "wav",
			SampleRate: 8000,
			Channels:   1,
			Frames:     8000,
		},
		DominantFrequency: dominant,
		Features: map[string]features.Value{
			features.FeatureZCR: {Scalar: 0.11},
		},
		Errors: map[string]string{
			features.FeatureHNR: "hnr: degenerate signal",
		},
	}
}

func TestPrintReportWithDominantFrequency(t *testing.T) {
	dominant := 440.0
	var out bytes.Buffer
	printReport(&out, testReport(&dominant))

	assert.Contains(t, out.String(), "dominant frequency: 440.00 Hz")
	assert.Contains(t, out.String(), "unavailable: hnr: degenerate signal")
}

func TestPrintReportWithoutDominantFrequency(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, testReport(nil))

	// A missing dominant frequency is reported as such, never as 0 Hz.
	assert.Contains(t, out.String(), "dominant frequency: unavailable")
	assert.False(t, strings.Contains(out.String(), "0.00 Hz"))
}

func TestReportJSONOmitsMissingDominantFrequency(t *testing.T) {
	raw, err := json.Marshal(testReport(nil))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "dominant_frequency_hz")

	dominant := 440.0
	raw, err = json.Marshal(testReport(&dominant))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"dominant_frequency_hz":440`)
}
