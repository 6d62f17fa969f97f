package features

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a per-frame feature track
type Stats struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Summarize computes track statistics for a per-frame feature sequence
func Summarize(track []float64) Stats {
	if len(track) == 0 {
		return Stats{}
	}

	return Stats{
		Mean:     stat.Mean(track, nil),
		Variance: stat.Variance(track, nil),
		Min:      floats.Min(track),
		Max:      floats.Max(track),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return stat.Mean(values, nil)
}
