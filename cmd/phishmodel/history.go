package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/phishmodel/internal/database"
	"github.com/nao1215/phishmodel/internal/model"
	"github.com/spf13/cobra"
)

// Constants for metric direction.
const (
	directionImproved  = "improved"
	directionWorsened  = "worsened"
	directionUnchanged = "unchanged"
)

// defaultHistoryLimit is the number of runs listed by --list.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// This command compares training runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and compare recorded training runs",
		Long: `History reads the training runs recorded by previous trainings.

By default it compares the two most recent runs and shows how ROC AUC,
accuracy and the coefficients moved. The comparison requires at least two
recorded runs. Use --list to see the recorded runs instead.

Examples:
  # Compare the latest two runs
  phishmodel history

  # List the 50 most recent runs
  phishmodel history --list --limit 50

  # Output the comparison in JSON format
  phishmodel history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List recorded training runs")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs listed (0 means all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.HistoryDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if list {
		return listRuns(ctx, out, db, limit, jsonOutput)
	}
	return compareLatestRuns(ctx, out, db, jsonOutput)
}

// RunSummary is the listing form of a recorded run.
type RunSummary struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	DatasetPath string    `json:"dataset_path"`
	Fingerprint string    `json:"dataset_fingerprint"`
	OutputPath  string    `json:"output_path"`
	ROCAUC      float64   `json:"roc_auc"`
	Accuracy    float64   `json:"accuracy"`
	TrainSize   int       `json:"train_size"`
	TestSize    int       `json:"test_size"`
}

func newRunSummary(rec database.RunRecord) RunSummary {
	return RunSummary{
		ID:          rec.ID,
		Timestamp:   rec.Timestamp,
		DatasetPath: rec.DatasetPath,
		Fingerprint: rec.DatasetFingerprint,
		OutputPath:  rec.OutputPath,
		ROCAUC:      rec.Metrics.ROCAUC,
		Accuracy:    rec.Metrics.Accuracy,
		TrainSize:   rec.Metrics.TrainSize,
		TestSize:    rec.Metrics.TestSize,
	}
}

// listRuns prints the most recent runs.
func listRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, limit int, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list training runs: %w", err)
	}

	if jsonOutput {
		summaries := make([]RunSummary, 0, len(runs))
		for _, rec := range runs {
			summaries = append(summaries, newRunSummary(rec))
		}
		return encodeJSON(out, summaries)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No training runs found in the history database.")
		fmt.Fprintln(out, "\nRun 'phishmodel' to train a model and record the run.")
		return nil
	}

	fmt.Fprintf(out, "Training runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-19s  %-8s  %-8s  %-10s  %s\n", "ID", "Date", "ROC AUC", "Accuracy", "Train/Test", "Dataset")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 78))
	for _, rec := range runs {
		fmt.Fprintf(out, "  %-6d  %-19s  %-8.4f  %-8.4f  %-10s  %s\n",
			rec.ID,
			rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
			rec.Metrics.ROCAUC,
			rec.Metrics.Accuracy,
			fmt.Sprintf("%d/%d", rec.Metrics.TrainSize, rec.Metrics.TestSize),
			rec.DatasetPath,
		)
	}
	fmt.Fprintln(out, "\nUse 'phishmodel history' to compare the latest two runs.")
	return nil
}

// MetricChange describes how one metric moved between two runs.
type MetricChange struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"`
}

// Comparison is the result of comparing two recorded runs.
type Comparison struct {
	Previous       RunSummary     `json:"previous"`
	Current        RunSummary     `json:"current"`
	DatasetChanged bool           `json:"dataset_changed"`
	Metrics        []MetricChange `json:"metrics"`
	Coefficients   []MetricChange `json:"coefficients"`
}

// compareLatestRuns prints the difference between the two most recent runs.
func compareLatestRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, jsonOutput bool) error {
	runs, err := db.LatestRuns(ctx, 2)
	if err != nil {
		return fmt.Errorf("failed to load training runs: %w", err)
	}
	if len(runs) < 2 {
		return fmt.Errorf("at least 2 training runs are required for comparison (found %d)", len(runs))
	}

	result := compareRuns(&runs[1], &runs[0])

	if jsonOutput {
		return encodeJSON(out, result)
	}
	writeComparisonText(out, result)
	return nil
}

// compareRuns compares previous with current.
// Higher is better for both metrics; coefficient moves have no direction.
func compareRuns(previous, current *database.RunRecord) *Comparison {
	result := &Comparison{
		Previous:       newRunSummary(*previous),
		Current:        newRunSummary(*current),
		DatasetChanged: previous.DatasetFingerprint != current.DatasetFingerprint,
		Metrics: []MetricChange{
			newMetricChange("roc_auc", previous.Metrics.ROCAUC, current.Metrics.ROCAUC, true),
			newMetricChange("accuracy", previous.Metrics.Accuracy, current.Metrics.Accuracy, true),
		},
	}

	if previous.Model != nil && current.Model != nil {
		prev := coefficientMap(previous.Model)
		curr := coefficientMap(current.Model)
		result.Coefficients = append(result.Coefficients,
			newMetricChange("intercept", previous.Model.Intercept, current.Model.Intercept, false))
		for _, name := range model.FeatureNames {
			result.Coefficients = append(result.Coefficients,
				newMetricChange(name, prev[name], curr[name], false))
		}
	}

	return result
}

func coefficientMap(m *model.Model) map[string]float64 {
	coefs := make(map[string]float64, len(m.FeatureNames))
	for i, name := range m.FeatureNames {
		if i < len(m.Coefs) {
			coefs[name] = m.Coefs[i]
		}
	}
	return coefs
}

func newMetricChange(name string, previous, current float64, higherIsBetter bool) MetricChange {
	delta := current - previous
	direction := directionUnchanged
	if higherIsBetter {
		switch {
		case delta > 0:
			direction = directionImproved
		case delta < 0:
			direction = directionWorsened
		}
	}
	return MetricChange{
		Name:      name,
		Previous:  previous,
		Current:   current,
		Delta:     delta,
		Direction: direction,
	}
}

// writeComparisonText prints a human-readable comparison.
func writeComparisonText(out io.Writer, result *Comparison) {
	fmt.Fprintf(out, "Training Run Comparison: #%d → #%d\n", result.Previous.ID, result.Current.ID)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nPrevious run: %s  %s\n",
		result.Previous.Timestamp.Local().Format("2006-01-02 15:04:05"), result.Previous.DatasetPath)
	fmt.Fprintf(out, "Current run:  %s  %s\n",
		result.Current.Timestamp.Local().Format("2006-01-02 15:04:05"), result.Current.DatasetPath)
	if result.DatasetChanged {
		fmt.Fprintln(out, "\nDataset contents changed between the runs.")
	}

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  %-18s  %-10s  %-10s  %-10s  %s\n", "Metric", "Previous", "Current", "Change", "Status")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 64))
	for _, m := range result.Metrics {
		fmt.Fprintf(out, "  %-18s  %-10.4f  %-10.4f  %-10s  %s\n",
			m.Name, m.Previous, m.Current, formatDelta(m.Delta), formatDirection(m.Direction))
	}

	if len(result.Coefficients) > 0 {
		fmt.Fprintln(out, "\nCoefficients:")
		fmt.Fprintf(out, "  %-18s  %-10s  %-10s  %s\n", "Feature", "Previous", "Current", "Change")
		fmt.Fprintln(out, "  "+strings.Repeat("-", 52))
		for _, c := range result.Coefficients {
			fmt.Fprintf(out, "  %-18s  %-10.4f  %-10.4f  %s\n",
				c.Name, c.Previous, c.Current, formatDelta(c.Delta))
		}
	}
}

// formatDirection returns a display string for a metric direction.
func formatDirection(direction string) string {
	switch direction {
	case directionImproved:
		return "▲ improved"
	case directionWorsened:
		return "▼ worsened"
	default:
		return "= unchanged"
	}
}

// formatDelta formats a delta with an explicit sign.
func formatDelta(delta float64) string {
	if delta == 0 {
		return "0"
	}
	return fmt.Sprintf("%+.4f", delta)
}

// encodeJSON writes v as indented JSON.
func encodeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
