package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/phishmodel/internal/model"
)

// SimpleWriter outputs human-readable text.
//
// For a training run it prints exactly two lines, the ROC AUC and the
// accuracy at the 0.5 threshold, and nothing else, so the output can be
// compared line by line across runs.
type SimpleWriter struct {
	baseWriter

	// showFeatures prints each verdict's feature vector.
	showFeatures bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowFeatures configures the writer to print feature vectors with
// each verdict.
func WithShowFeatures(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showFeatures = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write prints the evaluation metrics of the run.
func (w *SimpleWriter) Write(run *model.TrainingRun) (int, error) {
	if run.Metrics == nil {
		return 0, nil
	}
	return fmt.Fprintf(w.output, "ROC AUC: %s\nAccuracy (threshold %s): %s\n",
		FormatFloat(run.Metrics.ROCAUC),
		FormatFloat(model.DefaultThreshold),
		FormatFloat(run.Metrics.Accuracy),
	)
}

// WriteVerdicts prints one line per verdict followed by a summary.
func (w *SimpleWriter) WriteVerdicts(verdicts []model.Verdict) (int, error) {
	var sb strings.Builder

	counts := make(map[model.Decision]int)
	for _, v := range verdicts {
		counts[v.Decision]++
		sb.WriteString(fmt.Sprintf("[%-10s] %6.2f%%  %s\n",
			strings.ToUpper(v.Decision.String()), v.Probability*100, v.URL))
		if w.showFeatures {
			for i, name := range model.FeatureNames {
				sb.WriteString(fmt.Sprintf("    %-18s %s\n", name, FormatFloat(v.Features[i])))
			}
		}
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d scored: %d block, %d suspicious, %d clean, %d safelisted\n",
		len(verdicts),
		counts[model.DecisionBlock],
		counts[model.DecisionSuspicious],
		counts[model.DecisionClean],
		counts[model.DecisionSafelisted],
	))

	return w.output.Write([]byte(sb.String()))
}

// FormatFloat formats f with the shortest representation that round-trips,
// always keeping a fractional part for integral values ("1.0", not "1").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
