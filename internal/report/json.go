package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/phishmodel/internal/model"
)

// JSONWriter outputs models, runs and verdicts in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation,
// the layout used for model.json.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// RunSummary is the JSON view of a completed training run.
type RunSummary struct {
	Dataset   string         `json:"dataset"`
	Output    string         `json:"output"`
	StartedAt time.Time      `json:"started_at"`
	Steps     []string       `json:"steps"`
	Metrics   *model.Metrics `json:"metrics,omitempty"`
	Model     *model.Model   `json:"model,omitempty"`
}

// NewRunSummary builds a RunSummary from a run.
func NewRunSummary(run *model.TrainingRun) *RunSummary {
	return &RunSummary{
		Dataset:   run.DatasetPath,
		Output:    run.OutputPath,
		StartedAt: run.StartedAt,
		Steps:     run.PerformedSteps,
		Metrics:   run.Metrics,
		Model:     run.Model,
	}
}

// Write outputs a summary of the run.
func (w *JSONWriter) Write(run *model.TrainingRun) (int, error) {
	return w.writeJSON(NewRunSummary(run))
}

// WriteModel outputs the model artifact exactly as consumers read it.
func (w *JSONWriter) WriteModel(m *model.Model) (int, error) {
	return w.writeJSON(m)
}

// WriteVerdicts outputs the verdicts as a JSON array.
func (w *JSONWriter) WriteVerdicts(verdicts []model.Verdict) (int, error) {
	if verdicts == nil {
		verdicts = []model.Verdict{}
	}
	return w.writeJSON(verdicts)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
