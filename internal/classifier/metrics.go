package classifier

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// DefaultThreshold is the probability at or above which a sample is
// predicted as label 1.
const DefaultThreshold = 0.5

// ROCAUC returns the area under the ROC curve of scores against binary
// labels. Tied scores are treated as a single operating point.
func ROCAUC(yTrue []int, scores []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, ErrNoSamples
	}
	if len(yTrue) != len(scores) {
		return 0, fmt.Errorf("%w: %d labels but %d scores", ErrDimensionMismatch, len(yTrue), len(scores))
	}

	y := slices.Clone(scores)
	classes := make([]bool, len(yTrue))
	pos := 0
	for i, label := range yTrue {
		if label != 0 && label != 1 {
			return 0, fmt.Errorf("%w: row %d has %d", ErrInvalidLabel, i, label)
		}
		classes[i] = label == 1
		if classes[i] {
			pos++
		}
	}
	if pos == 0 || pos == len(yTrue) {
		return 0, ErrUndefinedAUC
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// Accuracy returns the fraction of samples where (proba >= threshold)
// matches the label.
func Accuracy(yTrue []int, proba []float64, threshold float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, ErrNoSamples
	}
	if len(yTrue) != len(proba) {
		return 0, fmt.Errorf("%w: %d labels but %d probabilities", ErrDimensionMismatch, len(yTrue), len(proba))
	}
	correct := 0
	for i, label := range yTrue {
		pred := 0
		if proba[i] >= threshold {
			pred = 1
		}
		if pred == label {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}
