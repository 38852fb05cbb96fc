package model

// Label values used in the dataset.
const (
	// LabelLegitimate marks a legitimate URL.
	LabelLegitimate = 0

	// LabelPhishing marks a phishing URL.
	LabelPhishing = 1
)

// Sample is a single labeled dataset row.
type Sample struct {
	// URL is the raw URL string exactly as it appears in the dataset.
	URL string `json:"url"`

	// Label is LabelPhishing (1) or LabelLegitimate (0).
	Label int `json:"label"`
}

// IsPhishing reports whether the sample is labeled as phishing.
func (s Sample) IsPhishing() bool {
	return s.Label == LabelPhishing
}
