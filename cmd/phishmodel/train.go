package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/phishmodel/internal/config"
	"github.com/nao1215/phishmodel/internal/database"
	"github.com/nao1215/phishmodel/internal/dataset"
	"github.com/nao1215/phishmodel/internal/model"
	"github.com/nao1215/phishmodel/internal/pipeline"
	"github.com/nao1215/phishmodel/internal/report"
	"github.com/spf13/cobra"
)

// NewTrainCmd creates the train command.
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the classifier and export model.json",
		Long: `Train runs the full training workflow:

  load → featurize → split_fit → evaluate_export

It prints two lines to stdout, the ROC AUC and the accuracy at threshold 0.5
on the held-out split, and writes the model artifact. Any failure aborts the
run before the artifact is written.

Examples:
  # Train from phishing_dataset.csv into model.json
  phishmodel train

  # Use another dataset and output path
  phishmodel train -d data/urls.csv -o build/model.json

  # Also write a Markdown training report
  phishmodel train -r build/report.md

  # Do not record the run in the history database
  phishmodel train --no-history

  # Print a JSON run summary instead of the two metric lines
  phishmodel train --json`,
		Args: cobra.NoArgs,
		RunE: runTrainCmd,
	}

	addTrainFlags(cmd)

	return cmd
}

// addTrainFlags registers the training flags on cmd.
// The root command shares them so that a bare invocation trains.
func addTrainFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dataset", "d", config.DefaultDatasetPath,
		"Labelled CSV file with url and label columns")
	cmd.Flags().StringP("output", "o", config.DefaultOutputPath,
		"Output path for the model artifact")
	cmd.Flags().StringP("report", "r", "",
		"Write a Markdown training report to the specified file path")
	cmd.Flags().BoolP("json", "j", false,
		"Print a JSON run summary (metrics, steps and model) instead of the metric lines")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")
	cmd.Flags().Float64("test-size", config.DefaultTestSize,
		"Fraction of rows held out for evaluation")
	cmd.Flags().Uint64("seed", config.DefaultSeed,
		"Seed for the stratified split")
	cmd.Flags().Int("max-iter", config.DefaultMaxIter,
		"Maximum optimizer iterations")
}

// runTrainCmd executes the train command.
func runTrainCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildTrainConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	out := cmd.OutOrStdout()
	console := out
	if cfg.JSONOutput {
		console = io.Discard
	}

	run, err := runTraining(ctx, cfg, console, logger)
	if err != nil {
		return err
	}

	if cfg.JSONOutput {
		if _, err := report.NewJSONWriter(out, report.WithPrettyPrint()).Write(run); err != nil {
			return fmt.Errorf("failed to write run summary: %w", err)
		}
	}
	return nil
}

// buildTrainConfig creates a Config from defaults, the config file and flags.
// Only flags the user actually set override the config file.
func buildTrainConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("dataset") {
		if cfg.DatasetPath, err = flags.GetString("dataset"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputPath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("report") {
		if cfg.ReportFile, err = flags.GetString("report"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("test-size") {
		if cfg.TestSize, err = flags.GetFloat64("test-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetUint64("seed"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-iter") {
		if cfg.MaxIter, err = flags.GetInt("max-iter"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONOutput, err = flags.GetBool("json"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	return cfg, nil
}

// runTraining executes the training pipeline and the post-run extras.
// Metric lines go to console; everything else is logged.
func runTraining(ctx context.Context, cfg *config.Config, console io.Writer, logger *slog.Logger) (*model.TrainingRun, error) {
	logger.Info("starting training",
		"dataset", cfg.DatasetPath,
		"output", cfg.OutputPath,
		"test_size", cfg.TestSize,
		"seed", cfg.Seed,
		"max_iter", cfg.MaxIter,
	)

	p := pipeline.DefaultPipeline(console,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineTestSize(cfg.TestSize),
		pipeline.WithPipelineSeed(cfg.Seed),
		pipeline.WithPipelineMaxIter(cfg.MaxIter),
	)

	run := model.NewTrainingRun(cfg.DatasetPath, cfg.OutputPath)
	if err := p.Execute(ctx, run); err != nil {
		return run, err
	}

	// The artifact is already on disk; the extras below only log failures.
	if cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, run); err != nil {
			logger.Error("report failed", "path", cfg.ReportFile, "error", err)
		}
	}

	if cfg.SaveHistory {
		if err := recordRun(ctx, cfg.HistoryDir, run, logger); err != nil {
			logger.Warn("failed to record training run", "dir", cfg.HistoryDir, "error", err)
		}
	}

	return run, nil
}

// writeReport writes the Markdown training report to path.
func writeReport(path string, run *model.TrainingRun) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewMarkdownWriter(f).Write(run); err != nil {
		return err
	}
	return f.Sync()
}

// recordRun saves the finished run in the history database under dir.
func recordRun(ctx context.Context, dir string, run *model.TrainingRun, logger *slog.Logger) error {
	fingerprint, err := dataset.Fingerprint(run.DatasetPath)
	if err != nil {
		return err
	}

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, database.NewRunRecord(run, fingerprint))
	if err != nil {
		return err
	}

	logger.Info("training run recorded",
		"id", id,
		"database", db.Path(),
		"fingerprint", fingerprint,
	)
	return nil
}
