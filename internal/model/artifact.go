package model

import (
	"fmt"
	"math"
)

// DefaultThreshold is the probability cut-off written to every artifact.
const DefaultThreshold = 0.5

// Model is the exported linear model. Its JSON form is the model.json
// artifact consumed by the scoring side, so the field names and order
// must not change.
//
// The artifact intentionally carries no version, training date or dataset
// provenance.
type Model struct {
	// Coefs holds one weight per feature, in FeatureNames order.
	Coefs []float64 `json:"coefs"`

	// Intercept is the bias term.
	Intercept float64 `json:"intercept"`

	// Threshold is the probability at or above which a URL is phishing.
	Threshold float64 `json:"threshold"`

	// FeatureNames documents the meaning of every coefficient.
	FeatureNames []string `json:"feature_names"`
}

// NewModel builds a Model from fitted parameters using the fixed feature
// names and DefaultThreshold.
func NewModel(coefs []float64, intercept float64) *Model {
	c := make([]float64, len(coefs))
	copy(c, coefs)
	return &Model{
		Coefs:        c,
		Intercept:    intercept,
		Threshold:    DefaultThreshold,
		FeatureNames: FeatureNameList(),
	}
}

// Validate checks len(coefs) == len(feature_names) == FeatureCount, that
// names match the fixed list in order, and that every number is finite.
func (m *Model) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	if len(m.Coefs) != FeatureCount {
		return fmt.Errorf("%w: expected %d coefs, got %d", ErrInvalidModel, FeatureCount, len(m.Coefs))
	}
	if len(m.FeatureNames) != FeatureCount {
		return fmt.Errorf("%w: expected %d feature names, got %d", ErrInvalidModel, FeatureCount, len(m.FeatureNames))
	}
	for i, name := range m.FeatureNames {
		if name != FeatureNames[i] {
			return fmt.Errorf("%w: feature %d is %q, expected %q", ErrInvalidModel, i, name, FeatureNames[i])
		}
	}
	for i, c := range m.Coefs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: coef %d is not finite", ErrInvalidModel, i)
		}
	}
	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return fmt.Errorf("%w: intercept is not finite", ErrInvalidModel)
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return fmt.Errorf("%w: threshold %v outside (0,1)", ErrInvalidModel, m.Threshold)
	}
	return nil
}

// Decision returns intercept + coefs·x.
func (m *Model) Decision(x FeatureVector) float64 {
	z := m.Intercept
	for i, c := range m.Coefs {
		if i >= FeatureCount {
			break
		}
		z += c * x[i]
	}
	return z
}

// Probability returns the sigmoid of the decision value.
func (m *Model) Probability(x FeatureVector) float64 {
	return Sigmoid(m.Decision(x))
}

// Sigmoid is the logistic function, evaluated so that large negative
// inputs do not overflow.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
