package features

import (
	"fmt"

	"github.com/jmvoss/sonalyze/framing"
	"github.com/jmvoss/sonalyze/logging"
	"github.com/jmvoss/sonalyze/signal"
)

// Feature names used as keys in Result
const (
	FeatureSNR      = "snr"
	FeatureZCR      = "zcr"
	FeatureEnergy   = "short_term_energy"
	FeatureCentroid = "spectral_centroid"
	FeatureRolloff  = "spectral_rolloff"
	FeatureMFCC     = "mfcc"
	FeatureHNR      = "hnr"
)

// AllFeatures lists the descriptors Analyze attempts, in report order
var AllFeatures = []string{
	FeatureSNR,
	FeatureZCR,
	FeatureEnergy,
	FeatureCentroid,
	FeatureRolloff,
	FeatureMFCC,
	FeatureHNR,
}

// Value is a feature result: a scalar for most descriptors, a vector of
// cepstral coefficients for MFCC.
type Value struct {
	Scalar float64   `json:"scalar,omitempty"`
	Vector []float64 `json:"vector,omitempty"`
}

// IsVector reports whether the value carries a coefficient vector
func (v Value) IsVector() bool {
	return v.Vector != nil
}

// Result maps feature names to computed values. Failure policy: every
// feature is attempted independently; a feature whose computation fails
// appears in Errs (keyed by feature name, with frame context where
// applicable) and is absent from Values. One degenerate descriptor never
// suppresses the others. A Result is created fresh per Analyze call and
// not mutated afterward.
type Result struct {
	Values map[string]Value `json:"values"`
	Errs   map[string]error `json:"-"`
}

// Ok reports whether every attempted feature succeeded
func (r *Result) Ok() bool {
	return len(r.Errs) == 0
}

// Extractor computes acoustic descriptors under a fixed parameter set.
// It carries no per-signal state and is safe for reuse across buffers.
type Extractor struct {
	params     Params
	sampleRate int
	framer     *framing.Framer
	logger     logging.Logger
}

// NewExtractor validates params against the sample rate and builds the
// extractor. All defaults come from DefaultParams; zero-value fields are
// not filled in silently.
func NewExtractor(sampleRate int, params Params) (*Extractor, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("extractor: %w: sample rate must be positive, got %d",
			signal.ErrInvalidParameter, sampleRate)
	}
	if err := params.validate(sampleRate); err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}

	framer, err := framing.NewWithWindowName(params.FrameLength, params.HopLength, params.WindowName)
	if err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}

	return &Extractor{
		params:     params,
		sampleRate: sampleRate,
		framer:     framer,
		logger:     logging.GetGlobalLogger().WithFields(logging.Fields{"component": "features"}),
	}, nil
}

// Params returns the extractor's configuration
func (e *Extractor) Params() Params {
	return e.params
}

// checkBuffer rejects buffers whose rate does not match the extractor
func (e *Extractor) checkBuffer(buf *signal.Buffer) error {
	if buf.SampleRate != e.sampleRate {
		return fmt.Errorf("%w: buffer sample rate %d does not match extractor rate %d",
			signal.ErrInvalidParameter, buf.SampleRate, e.sampleRate)
	}
	return nil
}

// Analyze computes all seven descriptors for the buffer. See Result for
// the partial-failure policy.
func (e *Extractor) Analyze(buf *signal.Buffer) *Result {
	result := &Result{
		Values: make(map[string]Value),
		Errs:   make(map[string]error),
	}

	scalar := func(name string, compute func(*signal.Buffer) (float64, error)) {
		v, err := compute(buf)
		if err != nil {
			e.logger.Debug("feature failed", logging.Fields{"feature": name, "error": err.Error()})
			result.Errs[name] = fmt.Errorf("%s: %w", name, err)
			return
		}
		result.Values[name] = Value{Scalar: v}
	}

	scalar(FeatureSNR, e.SNR)
	scalar(FeatureZCR, e.ZeroCrossingRate)
	scalar(FeatureEnergy, e.ShortTermEnergy)
	scalar(FeatureCentroid, e.SpectralCentroid)
	scalar(FeatureRolloff, e.SpectralRolloff)
	scalar(FeatureHNR, e.HNR)

	if coeffs, err := e.MFCC(buf); err != nil {
		result.Errs[FeatureMFCC] = fmt.Errorf("%s: %w", FeatureMFCC, err)
	} else {
		result.Values[FeatureMFCC] = Value{Vector: coeffs}
	}

	return result
}
