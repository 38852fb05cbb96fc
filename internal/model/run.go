package model

import "time"

// Metrics summarizes evaluation of a fitted model on the held-out partition.
type Metrics struct {
	// ROCAUC is the area under the ROC curve on the test partition.
	ROCAUC float64 `json:"roc_auc"`

	// Accuracy is the fraction of test samples classified correctly at
	// DefaultThreshold.
	Accuracy float64 `json:"accuracy"`

	// TrainSize and TestSize are the partition sizes.
	TrainSize int `json:"train_size"`
	TestSize  int `json:"test_size"`

	// Positives and Negatives count the labels over the whole dataset.
	Positives int `json:"positives"`
	Negatives int `json:"negatives"`

	// Iterations is the number of optimizer iterations the fit used.
	Iterations int `json:"iterations"`
}

// TrainingRun carries state from one pipeline step to the next.
// It exists only for the duration of a single run.
type TrainingRun struct {
	// DatasetPath is the CSV file to train from.
	DatasetPath string

	// OutputPath is where the model artifact is written.
	OutputPath string

	// StartedAt is set when the run is created.
	StartedAt time.Time

	// Samples are the loaded dataset rows in file order.
	Samples []Sample

	// X holds one feature vector per sample, aligned with Y.
	X []FeatureVector

	// Y holds one label per sample.
	Y []int

	// TrainIndex and TestIndex are row indexes into X/Y.
	TrainIndex []int
	TestIndex  []int

	// Model is set by the fit step.
	Model *Model

	// Metrics is set by the evaluate step.
	Metrics *Metrics

	// Exported is true once the artifact has been written.
	Exported bool

	// PerformedSteps lists the names of steps that completed.
	PerformedSteps []string
}

// NewTrainingRun creates a run for the given dataset and output paths.
func NewTrainingRun(datasetPath, outputPath string) *TrainingRun {
	return &TrainingRun{
		DatasetPath: datasetPath,
		OutputPath:  outputPath,
		StartedAt:   time.Now(),
	}
}

// Rows returns the feature vectors and labels selected by idx.
func (r *TrainingRun) Rows(idx []int) ([]FeatureVector, []int) {
	x := make([]FeatureVector, len(idx))
	y := make([]int, len(idx))
	for i, j := range idx {
		x[i] = r.X[j]
		y[i] = r.Y[j]
	}
	return x, y
}

// LabelCounts returns the number of phishing and legitimate labels in Y.
func (r *TrainingRun) LabelCounts() (positives, negatives int) {
	for _, y := range r.Y {
		if y == LabelPhishing {
			positives++
		} else {
			negatives++
		}
	}
	return positives, negatives
}
