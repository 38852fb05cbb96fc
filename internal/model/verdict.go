package model

// Decision is the action a scorer recommends for a URL.
type Decision int

const (
	// DecisionClean means the probability is below the model threshold.
	DecisionClean Decision = iota

	// DecisionSuspicious means the probability reached the model threshold.
	DecisionSuspicious

	// DecisionBlock means the probability reached the block threshold.
	DecisionBlock

	// DecisionSafelisted means the host belongs to a safelisted domain and
	// was not scored.
	DecisionSafelisted
)

// String returns a lowercase name for the decision.
func (d Decision) String() string {
	switch d {
	case DecisionClean:
		return "clean"
	case DecisionSuspicious:
		return "suspicious"
	case DecisionBlock:
		return "block"
	case DecisionSafelisted:
		return "safelisted"
	default:
		return "unknown"
	}
}

// MarshalText encodes the decision by name.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Verdict is the result of scoring one URL.
type Verdict struct {
	URL         string        `json:"url"`
	Host        string        `json:"host"`
	Probability float64       `json:"probability"`
	Decision    Decision      `json:"decision"`
	Features    FeatureVector `json:"features"`
}

// IsPhishing reports whether the verdict is suspicious or blocking.
func (v Verdict) IsPhishing() bool {
	return v.Decision == DecisionSuspicious || v.Decision == DecisionBlock
}
