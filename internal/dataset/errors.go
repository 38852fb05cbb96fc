package dataset

import "errors"

// Loading errors.
var (
	// ErrMissingColumn is returned when the header lacks the url or label column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidLabel is returned when a label cell is not 0 or 1.
	ErrInvalidLabel = errors.New("invalid label: must be 0 or 1")

	// ErrEmptyDataset is returned when the file has a header but no rows.
	ErrEmptyDataset = errors.New("dataset has no rows")
)

// Splitting errors.
var (
	// ErrTooFewMembers is returned when a class has fewer than two samples,
	// so it cannot appear on both sides of a stratified split.
	ErrTooFewMembers = errors.New("the least populated class has fewer than 2 members")

	// ErrSingleClass is returned when every sample has the same label.
	ErrSingleClass = errors.New("need samples of at least 2 classes")

	// ErrSplitTooSmall is returned when the train or test partition would
	// hold fewer samples than there are classes.
	ErrSplitTooSmall = errors.New("partition smaller than the number of classes")

	// ErrInvalidTestSize is returned when the test fraction is not in (0,1).
	ErrInvalidTestSize = errors.New("invalid test size: must be between 0 and 1")
)
