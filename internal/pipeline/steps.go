package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/phishmodel/internal/classifier"
	"github.com/nao1215/phishmodel/internal/dataset"
	"github.com/nao1215/phishmodel/internal/features"
	"github.com/nao1215/phishmodel/internal/model"
	"github.com/nao1215/phishmodel/internal/report"
)

// Step errors.
var (
	// ErrNoSamples is returned when a step runs before the dataset is loaded.
	ErrNoSamples = errors.New("training run has no samples")

	// ErrNotSplit is returned when fitting or evaluating before the split.
	ErrNotSplit = errors.New("training run has not been split")
)

// LoadStep reads the dataset CSV into the run.
type LoadStep struct {
	logger *slog.Logger
}

// NewLoadStep creates a new dataset loading step.
func NewLoadStep(logger *slog.Logger) *LoadStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStep{logger: logger}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, run *model.TrainingRun) error {
	samples, err := dataset.LoadCSV(run.DatasetPath)
	if err != nil {
		return err
	}
	run.Samples = samples

	s.logger.Debug("dataset loaded",
		"path", run.DatasetPath,
		"rows", len(samples),
	)
	return nil
}

// FeaturizeStep maps every sample URL to its feature vector.
type FeaturizeStep struct {
	logger *slog.Logger
}

// NewFeaturizeStep creates a new featurization step.
func NewFeaturizeStep(logger *slog.Logger) *FeaturizeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeaturizeStep{logger: logger}
}

// Name returns the step name.
func (s *FeaturizeStep) Name() string {
	return "featurize"
}

// Do executes the featurize step. X and Y stay aligned with Samples.
func (s *FeaturizeStep) Do(_ context.Context, run *model.TrainingRun) error {
	if len(run.Samples) == 0 {
		return ErrNoSamples
	}

	run.X = features.ExtractAll(dataset.URLs(run.Samples))
	run.Y = dataset.Labels(run.Samples)

	pos, neg := run.LabelCounts()
	s.logger.Debug("features extracted",
		"rows", len(run.X),
		"phishing", pos,
		"legitimate", neg,
	)
	return nil
}

// SplitFitStep partitions the rows and fits the classifier on the
// training partition.
type SplitFitStep struct {
	testSize float64
	seed     uint64
	maxIter  int
	logger   *slog.Logger
}

// SplitFitStepOption configures a SplitFitStep.
type SplitFitStepOption func(*SplitFitStep)

// WithTestSize sets the fraction of rows held out for evaluation.
func WithTestSize(size float64) SplitFitStepOption {
	return func(s *SplitFitStep) {
		s.testSize = size
	}
}

// WithSeed sets the split shuffle seed.
func WithSeed(seed uint64) SplitFitStepOption {
	return func(s *SplitFitStep) {
		s.seed = seed
	}
}

// WithMaxIter sets the optimizer iteration limit.
func WithMaxIter(n int) SplitFitStepOption {
	return func(s *SplitFitStep) {
		s.maxIter = n
	}
}

// WithSplitFitLogger sets a custom logger for the step.
func WithSplitFitLogger(logger *slog.Logger) SplitFitStepOption {
	return func(s *SplitFitStep) {
		s.logger = logger
	}
}

// NewSplitFitStep creates a new split and fit step with the default
// 0.2 test size, seed 42 and 1000 iterations.
func NewSplitFitStep(opts ...SplitFitStepOption) *SplitFitStep {
	s := &SplitFitStep{
		testSize: dataset.DefaultTestSize,
		seed:     dataset.DefaultSeed,
		maxIter:  classifier.DefaultMaxIter,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SplitFitStep) Name() string {
	return "split_fit"
}

// Do executes the split and fit step.
func (s *SplitFitStep) Do(_ context.Context, run *model.TrainingRun) error {
	if len(run.X) == 0 {
		return ErrNoSamples
	}

	train, test, err := dataset.StratifiedSplit(run.Y, s.testSize, s.seed)
	if err != nil {
		return fmt.Errorf("failed to split dataset: %w", err)
	}
	run.TrainIndex = train
	run.TestIndex = test

	xTrain, yTrain := run.Rows(train)
	lr, err := classifier.Fit(toMatrix(xTrain), yTrain, classifier.WithMaxIter(s.maxIter))
	if err != nil {
		return err
	}
	if lr.Warning != nil {
		s.logger.Warn("optimizer did not converge cleanly",
			"iterations", lr.Iterations,
			"status", lr.Status.String(),
			"reason", lr.Warning,
		)
	}

	run.Model = model.NewModel(lr.Coefs, lr.Intercept)

	pos, neg := run.LabelCounts()
	run.Metrics = &model.Metrics{
		TrainSize:  len(train),
		TestSize:   len(test),
		Positives:  pos,
		Negatives:  neg,
		Iterations: lr.Iterations,
	}

	s.logger.Debug("model fitted",
		"train", len(train),
		"test", len(test),
		"iterations", lr.Iterations,
		"intercept", lr.Intercept,
	)
	return nil
}

// EvaluateExportStep scores the held-out partition, prints the metrics
// and writes the model artifact.
type EvaluateExportStep struct {
	console io.Writer
	logger  *slog.Logger
}

// NewEvaluateExportStep creates a new evaluation and export step that
// prints the two metric lines to console.
func NewEvaluateExportStep(console io.Writer, logger *slog.Logger) *EvaluateExportStep {
	if console == nil {
		console = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EvaluateExportStep{console: console, logger: logger}
}

// Name returns the step name.
func (s *EvaluateExportStep) Name() string {
	return "evaluate_export"
}

// Do executes the evaluate and export step.
func (s *EvaluateExportStep) Do(_ context.Context, run *model.TrainingRun) error {
	if run.Model == nil {
		return report.ErrNoModel
	}
	if len(run.TestIndex) == 0 {
		return ErrNotSplit
	}

	xTest, yTest := run.Rows(run.TestIndex)
	proba := make([]float64, len(xTest))
	for i, x := range xTest {
		proba[i] = run.Model.Probability(x)
	}

	auc, err := classifier.ROCAUC(yTest, proba)
	if err != nil {
		return fmt.Errorf("failed to compute ROC AUC: %w", err)
	}
	acc, err := classifier.Accuracy(yTest, proba, run.Model.Threshold)
	if err != nil {
		return fmt.Errorf("failed to compute accuracy: %w", err)
	}

	if run.Metrics == nil {
		run.Metrics = &model.Metrics{}
	}
	run.Metrics.ROCAUC = auc
	run.Metrics.Accuracy = acc

	if _, err := report.NewSimpleWriter(s.console).Write(run); err != nil {
		return fmt.Errorf("failed to print metrics: %w", err)
	}

	if err := report.WriteModelFile(run.OutputPath, run.Model); err != nil {
		return err
	}
	run.Exported = true

	s.logger.Info("model exported",
		"path", run.OutputPath,
		"roc_auc", auc,
		"accuracy", acc,
	)
	return nil
}

// toMatrix converts feature vectors to the row slices the classifier uses.
func toMatrix(xs []model.FeatureVector) [][]float64 {
	out := make([][]float64, len(xs))
	for i, x := range xs {
		out[i] = x.Slice()
	}
	return out
}

// TrainingConfig holds configuration for the default training pipeline.
type TrainingConfig struct {
	// TestSize is the held-out fraction.
	TestSize float64

	// Seed drives the split shuffle.
	Seed uint64

	// MaxIter limits optimizer iterations.
	MaxIter int
}

// TrainingOption configures a TrainingConfig.
type TrainingOption func(*TrainingConfig)

// WithPipelineTestSize sets the held-out fraction for the pipeline.
func WithPipelineTestSize(size float64) TrainingOption {
	return func(c *TrainingConfig) {
		c.TestSize = size
	}
}

// WithPipelineSeed sets the split seed for the pipeline.
func WithPipelineSeed(seed uint64) TrainingOption {
	return func(c *TrainingConfig) {
		c.Seed = seed
	}
}

// WithPipelineMaxIter sets the optimizer iteration limit for the pipeline.
func WithPipelineMaxIter(n int) TrainingOption {
	return func(c *TrainingConfig) {
		c.MaxIter = n
	}
}

// DefaultPipeline creates the four-step training pipeline. Metric lines are
// printed to console.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts training options (WithPipelineSeed, etc).
func DefaultPipeline(console io.Writer, pipelineOpts []Option, trainingOpts ...TrainingOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &TrainingConfig{
		TestSize: dataset.DefaultTestSize,
		Seed:     dataset.DefaultSeed,
		MaxIter:  classifier.DefaultMaxIter,
	}
	for _, opt := range trainingOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewLoadStep(p.logger),
		NewFeaturizeStep(p.logger),
		NewSplitFitStep(
			WithTestSize(cfg.TestSize),
			WithSeed(cfg.Seed),
			WithMaxIter(cfg.MaxIter),
			WithSplitFitLogger(p.logger),
		),
		NewEvaluateExportStep(console, p.logger),
	)

	return p
}
