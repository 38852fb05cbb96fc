package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use errors.Is()
// to tell which setting was rejected.
var (
	// ErrEmptyDataset is returned when no dataset path is configured.
	ErrEmptyDataset = errors.New("invalid dataset: path must not be empty")

	// ErrEmptyOutput is returned when no model output path is configured.
	ErrEmptyOutput = errors.New("invalid output: path must not be empty")

	// ErrInvalidConcurrency is returned when the scoring concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTestSize is returned when the held-out fraction is outside (0, 1).
	ErrInvalidTestSize = errors.New("invalid test size: must be between 0 and 1 (exclusive)")

	// ErrInvalidMaxIter is returned when the optimizer iteration cap is not positive.
	ErrInvalidMaxIter = errors.New("invalid max iterations: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyHistoryDir is returned when history is enabled without a directory.
	ErrEmptyHistoryDir = errors.New("invalid history directory: must not be empty when history is enabled")
)
