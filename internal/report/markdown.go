package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/phishmodel/internal/features"
	"github.com/nao1215/phishmodel/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Quality bands for the ROC AUC alert.
const (
	goodAUC = 0.9
	weakAUC = 0.7
)

// MarkdownWriter outputs training reports and verdicts in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a training report for the run.
func (w *MarkdownWriter) Write(run *model.TrainingRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeMetrics(md, run)
	w.writeClassBalance(md, run)
	w.writeCoefficients(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteVerdicts outputs a table of scored URLs.
func (w *MarkdownWriter) WriteVerdicts(verdicts []model.Verdict) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Phishing Scores")
	md.PlainText("")

	if len(verdicts) == 0 {
		md.PlainText("No URLs scored.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(verdicts))
	for i, v := range verdicts {
		rows[i] = []string{
			"`" + truncateString(v.URL, 80) + "`",
			v.Host,
			fmt.Sprintf("%.2f%%", v.Probability*100),
			decisionLabel(v.Decision),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Host", "Probability", "Decision"},
		Rows:   rows,
	})
	md.PlainText("")
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.TrainingRun) {
	md.H1("Phishing Model Training Report")
	md.PlainText("")

	status := "✅ Exported"
	if !run.Exported {
		status = "❌ Not exported"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Dataset", "`" + run.DatasetPath + "`"},
			{"Artifact", "`" + run.OutputPath + "`"},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Samples", strconv.Itoa(len(run.Samples))},
			{"Steps", strings.Join(run.PerformedSteps, " → ")},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeMetrics writes the evaluation metrics and a quality alert.
func (w *MarkdownWriter) writeMetrics(md *markdown.Markdown, run *model.TrainingRun) {
	md.H2("Evaluation")
	md.PlainText("")

	m := run.Metrics
	if m == nil {
		md.PlainText("The run did not reach evaluation.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"ROC AUC", FormatFloat(m.ROCAUC)},
			{"Accuracy (threshold 0.5)", FormatFloat(m.Accuracy)},
			{"Train size", strconv.Itoa(m.TrainSize)},
			{"Test size", strconv.Itoa(m.TestSize)},
			{"Optimizer iterations", strconv.Itoa(m.Iterations)},
		},
	})
	md.PlainText("")

	switch {
	case m.ROCAUC >= goodAUC:
		md.Tip("The model separates phishing from legitimate URLs well on the held-out set.")
	case m.ROCAUC >= weakAUC:
		md.Warningf("ROC AUC %.3f is moderate. Consider a larger or cleaner dataset.", m.ROCAUC)
	default:
		md.Cautionf("ROC AUC %.3f is close to random guessing. Do not deploy this model.", m.ROCAUC)
	}
	md.PlainText("")
}

// writeClassBalance writes a mermaid pie chart of the label distribution.
func (w *MarkdownWriter) writeClassBalance(md *markdown.Markdown, run *model.TrainingRun) {
	pos, neg := run.LabelCounts()
	if pos+neg == 0 {
		return
	}

	md.H2("Class Balance")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Dataset Labels"),
		piechart.WithShowData(true),
	)
	if pos > 0 {
		chart.LabelAndIntValue("Phishing", uint64(pos))
	}
	if neg > 0 {
		chart.LabelAndIntValue("Legitimate", uint64(neg))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeCoefficients writes the fitted weights in feature order.
func (w *MarkdownWriter) writeCoefficients(md *markdown.Markdown, run *model.TrainingRun) {
	if run.Model == nil {
		return
	}

	md.H2("Coefficients")
	md.PlainText("")

	rows := make([][]string, 0, len(run.Model.Coefs)+1)
	for i, c := range run.Model.Coefs {
		name := ""
		if i < len(run.Model.FeatureNames) {
			name = run.Model.FeatureNames[i]
		}
		rows = append(rows, []string{featureTitle(name), "`" + name + "`", FormatFloat(c)})
	}
	rows = append(rows, []string{"Intercept", "-", FormatFloat(run.Model.Intercept)})

	md.Table(markdown.TableSet{
		Header: []string{"Feature", "Key", "Weight"},
		Rows:   rows,
	})
	md.PlainText("")
	md.Note("Positive weights push a URL towards phishing. not_https is 1 for URLs that do not start with https://.")
	md.PlainText("")

	words := features.SuspiciousWords()
	for i, word := range words {
		words[i] = "`" + word + "`"
	}
	md.PlainTextf("`suspicious_words` counts these terms, each at most once: %s", strings.Join(words, ", "))
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [phishmodel](https://github.com/nao1215/phishmodel)*")
}

// featureTitle turns a snake_case feature name into a title.
func featureTitle(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// decisionLabel returns a decision with a visual indicator.
func decisionLabel(d model.Decision) string {
	switch d {
	case model.DecisionBlock:
		return "🔴 Block"
	case model.DecisionSuspicious:
		return "🟠 Suspicious"
	case model.DecisionSafelisted:
		return "🔵 Safelisted"
	case model.DecisionClean:
		return "🟢 Clean"
	default:
		return "⚪ Unknown"
	}
}

// truncateString truncates s to maxLen runes, ending with an ellipsis.
// Cuts fall on rune boundaries so internationalised URLs stay valid UTF-8.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
