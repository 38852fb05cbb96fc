package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "phishmodel"

	// DefaultDatasetPath is the CSV file read when no dataset is given.
	DefaultDatasetPath = "phishing_dataset.csv"

	// DefaultOutputPath is where the trained model artifact is written.
	DefaultOutputPath = "model.json"

	// DefaultTestSize is the stratified held-out fraction.
	DefaultTestSize = 0.2

	// DefaultSeed makes the split reproducible across runs.
	DefaultSeed uint64 = 42

	// DefaultMaxIter caps the optimizer iterations.
	DefaultMaxIter = 1000

	// DefaultConcurrency is the number of URLs scored in parallel.
	DefaultConcurrency = 10
)

// Config holds all configuration options for phishmodel.
// It is populated from defaults, then the config file, then CLI flags,
// and is passed to the commands instead of living in global state.
type Config struct {
	// DatasetPath is the labelled CSV file with "url" and "label" columns.
	DatasetPath string

	// OutputPath is the destination of the model.json artifact.
	OutputPath string

	// ReportFile, when set, receives a Markdown training report.
	ReportFile string

	// TestSize is the fraction of rows held out for evaluation.
	TestSize float64

	// Seed drives the shuffle of the stratified split.
	Seed uint64

	// MaxIter caps the optimizer iterations.
	MaxIter int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .phishmodel in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SaveHistory records every finished training run in the history database.
	SaveHistory bool

	// HistoryDir is the directory holding phishmodel.db.
	// Defaults to XDG data directory (~/.local/share/phishmodel on Linux).
	HistoryDir string

	// ModelPath is the artifact loaded by the score command.
	ModelPath string

	// Safelist holds registrable domains that are never blocked when scoring.
	// When empty, the scorer's built-in list is used.
	Safelist []string

	// Concurrency is the number of URLs scored in parallel.
	Concurrency int

	// JSONOutput switches the score command to JSON verdicts.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput switches the score command to a Markdown table.
	// Mutually exclusive with JSONOutput.
	MarkdownOutput bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DatasetPath: DefaultDatasetPath,
		OutputPath:  DefaultOutputPath,
		TestSize:    DefaultTestSize,
		Seed:        DefaultSeed,
		MaxIter:     DefaultMaxIter,
		SaveHistory: true,
		HistoryDir:  XDGDataDir(),
		ModelPath:   DefaultOutputPath,
		Concurrency: DefaultConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for phishmodel.
// On Linux: ~/.local/share/phishmodel
// On macOS: ~/Library/Application Support/phishmodel
// On Windows: %LOCALAPPDATA%\phishmodel
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for phishmodel.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return ErrEmptyDataset
	}

	if c.OutputPath == "" {
		return ErrEmptyOutput
	}

	// NaN fails both comparisons, so it is rejected too
	if !(c.TestSize > 0 && c.TestSize < 1) {
		return ErrInvalidTestSize
	}

	if c.MaxIter <= 0 {
		return ErrInvalidMaxIter
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingReportFormats
	}

	if c.SaveHistory && c.HistoryDir == "" {
		return ErrEmptyHistoryDir
	}

	return nil
}
