package classifier

import "errors"

var (
	// ErrNoSamples is returned when there is nothing to fit or score.
	ErrNoSamples = errors.New("no samples")

	// ErrDimensionMismatch is returned when X and y disagree in length or
	// rows of X have different widths.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrFitFailed is returned when the optimizer produced no usable solution.
	ErrFitFailed = errors.New("logistic regression fit failed")

	// ErrUndefinedAUC is returned when the scored labels contain only one class.
	ErrUndefinedAUC = errors.New("ROC AUC is undefined when only one class is present")

	// ErrInvalidLabel is returned when a label is neither 0 nor 1.
	ErrInvalidLabel = errors.New("label must be 0 or 1")
)
