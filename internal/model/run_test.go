package model

import "testing"

// TestTrainingRunRows tests index selection and label counting.
func TestTrainingRunRows(t *testing.T) {
	t.Parallel()

	run := NewTrainingRun("data.csv", "model.json")
	run.X = []FeatureVector{{0: 1}, {0: 2}, {0: 3}}
	run.Y = []int{1, 0, 1}

	x, y := run.Rows([]int{2, 0})
	if len(x) != 2 || x[0][0] != 3 || x[1][0] != 1 {
		t.Errorf("unexpected rows: %v", x)
	}
	if y[0] != 1 || y[1] != 1 {
		t.Errorf("unexpected labels: %v", y)
	}

	pos, neg := run.LabelCounts()
	if pos != 2 || neg != 1 {
		t.Errorf("expected 2/1, got %d/%d", pos, neg)
	}
	if run.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
}

// TestDecisionString tests the Decision names.
func TestDecisionString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		decision Decision
		expected string
	}{
		{DecisionClean, "clean"},
		{DecisionSuspicious, "suspicious"},
		{DecisionBlock, "block"},
		{DecisionSafelisted, "safelisted"},
		{Decision(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.decision.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.decision.String(), tc.expected)
			}
		})
	}
}

// TestVerdictIsPhishing tests which decisions count as phishing.
func TestVerdictIsPhishing(t *testing.T) {
	t.Parallel()

	if !(Verdict{Decision: DecisionBlock}).IsPhishing() {
		t.Error("block should be phishing")
	}
	if !(Verdict{Decision: DecisionSuspicious}).IsPhishing() {
		t.Error("suspicious should be phishing")
	}
	if (Verdict{Decision: DecisionSafelisted}).IsPhishing() {
		t.Error("safelisted should not be phishing")
	}
}
