package report

import (
	"io"

	"github.com/nao1215/phishmodel/internal/model"
)

// Writer defines the interface for report output.
// Implementations write training runs and verdicts in various formats.
//
// Design decision: Both training and scoring results go through one
// interface so the CLI picks a format once (text, JSON or Markdown) and
// the commands stay format agnostic. The model.json artifact is not a
// report and is written by WriteModelFile instead.
type Writer interface {
	// Write outputs a completed training run.
	// Returns the number of bytes written and any error encountered.
	Write(run *model.TrainingRun) (int, error)

	// WriteVerdicts outputs the results of scoring URLs with a saved model.
	WriteVerdicts(verdicts []model.Verdict) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
