package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nao1215/phishmodel/internal/config"
	"github.com/nao1215/phishmodel/internal/model"
	"github.com/nao1215/phishmodel/internal/pipeline"
	"github.com/nao1215/phishmodel/internal/report"
	"github.com/nao1215/phishmodel/internal/scoring"
	"github.com/spf13/cobra"
)

// errNoURLs is returned when the score command has nothing to score.
var errNoURLs = errors.New("no URLs provided (specify URLs as arguments or use --list)")

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [url...]",
		Short: "Score URLs with a trained model",
		Long: `Score applies a trained model.json to one or more URLs.

Each URL gets a phishing probability and a decision:
  block       probability >= 0.85
  suspicious  probability >= the model threshold (0.5)
  clean       below the threshold
  safelisted  the host belongs to a safelisted domain

Examples:
  # Score a single URL
  phishmodel score "http://secure-login.example.net/verify"

  # Score every URL in a file (one per line, # starts a comment)
  phishmodel score --list urls.txt

  # Use another model and print JSON
  phishmodel score -m build/model.json --json https://example.com

Safelisted domains can be set in .phishmodel:
  safelist:
    - example.com
    - intranet.example.org`,
		Args: cobra.ArbitraryArgs,
		RunE: runScoreCmd,
	}

	cmd.Flags().StringP("model", "m", config.DefaultOutputPath,
		"Model artifact to score with")
	cmd.Flags().StringP("list", "l", "",
		"File with one URL per line")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of URLs scored in parallel")
	cmd.Flags().BoolP("json", "j", false,
		"Output verdicts in JSON format (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output verdicts as a Markdown table (mutually exclusive with --json)")
	cmd.Flags().Bool("features", false,
		"Show the extracted feature values for each URL")

	return cmd
}

// runScoreCmd executes the score command.
func runScoreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScoreConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	urls, err := collectURLs(cmd, args)
	if err != nil {
		return err
	}

	showFeatures, err := cmd.Flags().GetBool("features")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	verdicts, err := scoreURLs(ctx, cfg, urls, logger)
	if err != nil {
		return err
	}

	return writeVerdicts(cmd.OutOrStdout(), cfg, showFeatures, verdicts)
}

// buildScoreConfig creates a Config for scoring from defaults, the config file and flags.
func buildScoreConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("model") {
		if cfg.ModelPath, err = flags.GetString("model"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if cfg.JSONOutput, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownOutput, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// collectURLs gathers URLs from the arguments and the --list file.
func collectURLs(cmd *cobra.Command, args []string) ([]string, error) {
	urls := append([]string(nil), args...)

	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		fromFile, err := readURLList(listPath)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}

	if len(urls) == 0 {
		return nil, errNoURLs
	}
	return urls, nil
}

// readURLList reads one URL per line, skipping blank lines and # comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}

// scoreURLs loads the model and scores urls concurrently, keeping input order.
func scoreURLs(ctx context.Context, cfg *config.Config, urls []string, logger *slog.Logger) ([]model.Verdict, error) {
	scorer, err := scoring.Load(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", cfg.ModelPath, err)
	}
	if len(cfg.Safelist) > 0 {
		scorer = scorer.WithSafelist(cfg.Safelist)
	}
	m := scorer.Model()
	logger.Debug("model loaded",
		"path", cfg.ModelPath,
		"threshold", m.Threshold,
		"intercept", m.Intercept,
		"safelist_size", len(cfg.Safelist),
	)

	bs := pipeline.NewBatchScorer(scorer,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)
	return bs.ScoreAll(ctx, urls)
}

// writeVerdicts outputs verdicts in the requested format.
func writeVerdicts(w io.Writer, cfg *config.Config, showFeatures bool, verdicts []model.Verdict) error {
	var writer report.Writer
	switch {
	case cfg.JSONOutput:
		writer = report.NewJSONWriter(w, report.WithPrettyPrint())
	case cfg.MarkdownOutput:
		writer = report.NewMarkdownWriter(w)
	default:
		writer = report.NewSimpleWriter(w, report.WithShowFeatures(showFeatures))
	}

	_, err := writer.WriteVerdicts(verdicts)
	return err
}
