package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/phishmodel/internal/database"
	"github.com/nao1215/phishmodel/internal/model"
)

// seedHistory stores the given runs, oldest first, and returns the history dir.
func seedHistory(t *testing.T, runs ...database.RunRecord) string {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	for i := range runs {
		if _, err := db.SaveRun(context.Background(), &runs[i]); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}
	return dir
}

func testRunRecord(ts time.Time, auc, acc float64, fingerprint string) database.RunRecord {
	var coefs [model.FeatureCount]float64
	coefs[model.FeatureHasIP] = auc
	return database.RunRecord{
		Timestamp:          ts,
		DatasetPath:        "phishing_dataset.csv",
		DatasetFingerprint: fingerprint,
		OutputPath:         "model.json",
		Metrics: model.Metrics{
			ROCAUC:    auc,
			Accuracy:  acc,
			TrainSize: 80,
			TestSize:  20,
			Positives: 50,
			Negatives: 50,
		},
		Model: model.NewModel(coefs[:], -1),
	}
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	if cmd.Use != "history" {
		t.Errorf("expected use 'history', got %q", cmd.Use)
	}
	for _, name := range []string{"list", "limit", "json"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if flag := cmd.Flags().Lookup("limit"); flag != nil && flag.DefValue != "20" {
		t.Errorf("expected limit default '20', got %q", flag.DefValue)
	}
}

// TestRunHistoryCmd tests listing and comparing recorded runs.
func TestRunHistoryCmd(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	historyDir := seedHistory(t,
		testRunRecord(base, 0.80, 0.75, "aaa"),
		testRunRecord(base.Add(time.Hour), 0.90, 0.70, "bbb"),
	)
	cfgPath := writeConfig(t, t.TempDir(), "")

	t.Run("compares the latest two runs", func(t *testing.T) {
		stdout, err := executeRoot(t, "history", "-c", cfgPath, "--history-dir", historyDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "#1 → #2") {
			t.Errorf("expected comparison header, got %q", stdout)
		}
		if !strings.Contains(stdout, "+0.1000") {
			t.Errorf("expected ROC AUC delta, got %q", stdout)
		}
		if !strings.Contains(stdout, "Dataset contents changed") {
			t.Errorf("expected dataset change notice, got %q", stdout)
		}
	})

	t.Run("comparison as JSON", func(t *testing.T) {
		stdout, err := executeRoot(t, "history", "-c", cfgPath, "--history-dir", historyDir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result Comparison
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if result.Previous.ID != 1 || result.Current.ID != 2 {
			t.Errorf("unexpected run IDs %d → %d", result.Previous.ID, result.Current.ID)
		}
		if len(result.Metrics) != 2 {
			t.Fatalf("expected 2 metric changes, got %d", len(result.Metrics))
		}
		if result.Metrics[0].Direction != directionImproved {
			t.Errorf("expected ROC AUC to improve, got %q", result.Metrics[0].Direction)
		}
		if result.Metrics[1].Direction != directionWorsened {
			t.Errorf("expected accuracy to worsen, got %q", result.Metrics[1].Direction)
		}
		if len(result.Coefficients) != model.FeatureCount+1 {
			t.Errorf("expected %d coefficient changes, got %d", model.FeatureCount+1, len(result.Coefficients))
		}
	})

	t.Run("lists runs newest first", func(t *testing.T) {
		stdout, err := executeRoot(t, "history", "-c", cfgPath, "--history-dir", historyDir, "--list", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var runs []RunSummary
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].ID != 2 || runs[1].ID != 1 {
			t.Errorf("expected newest first, got IDs %d, %d", runs[0].ID, runs[1].ID)
		}
	})

	t.Run("list respects limit", func(t *testing.T) {
		stdout, err := executeRoot(t, "history", "-c", cfgPath, "--history-dir", historyDir, "--list", "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Training runs (1)") {
			t.Errorf("expected one listed run, got %q", stdout)
		}
	})
}

// TestRunHistoryCmdTooFewRuns tests that comparison needs two runs.
func TestRunHistoryCmdTooFewRuns(t *testing.T) {
	historyDir := seedHistory(t, testRunRecord(time.Now(), 0.9, 0.9, "aaa"))

	_, err := executeRoot(t, "history", "-c", writeConfig(t, t.TempDir(), ""), "--history-dir", historyDir)
	if err == nil {
		t.Fatal("expected error with a single run")
	}
	if !strings.Contains(err.Error(), "at least 2 training runs") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestRunHistoryCmdEmptyList tests the listing of an empty database.
func TestRunHistoryCmdEmptyList(t *testing.T) {
	historyDir := filepath.Join(t.TempDir(), "history")

	stdout, err := executeRoot(t, "history", "-c", writeConfig(t, t.TempDir(), ""), "--history-dir", historyDir, "--list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "No training runs found") {
		t.Errorf("expected empty notice, got %q", stdout)
	}
}

// TestNewMetricChange tests direction and delta computation.
func TestNewMetricChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		previous       float64
		current        float64
		higherIsBetter bool
		wantDirection  string
	}{
		{name: "improved", previous: 0.5, current: 0.7, higherIsBetter: true, wantDirection: directionImproved},
		{name: "worsened", previous: 0.7, current: 0.5, higherIsBetter: true, wantDirection: directionWorsened},
		{name: "unchanged", previous: 0.7, current: 0.7, higherIsBetter: true, wantDirection: directionUnchanged},
		{name: "coefficient has no direction", previous: 1, current: 3, higherIsBetter: false, wantDirection: directionUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := newMetricChange("m", tt.previous, tt.current, tt.higherIsBetter)
			if got.Direction != tt.wantDirection {
				t.Errorf("expected direction %q, got %q", tt.wantDirection, got.Direction)
			}
			if got.Delta != tt.current-tt.previous {
				t.Errorf("expected delta %v, got %v", tt.current-tt.previous, got.Delta)
			}
		})
	}
}

// TestFormatDelta tests signed delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		0:      "0",
		0.1:    "+0.1000",
		-0.025: "-0.0250",
	}
	for delta, want := range tests {
		if got := formatDelta(delta); got != want {
			t.Errorf("formatDelta(%v) = %q, want %q", delta, got, want)
		}
	}
}
