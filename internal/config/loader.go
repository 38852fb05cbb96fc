package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// XDGConfigFile is the config file name looked up inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".phishmodel"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// HistoryFile is the history section of the configuration file.
type HistoryFile struct {
	// Enabled turns run recording on or off. Nil keeps the default.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Dir overrides the directory holding phishmodel.db.
	Dir string `yaml:"dir,omitempty"`
}

// File represents the structure of the .phishmodel configuration file.
type File struct {
	Dataset     string      `yaml:"dataset,omitempty"`
	Output      string      `yaml:"output,omitempty"`
	Report      string      `yaml:"report,omitempty"`
	Model       string      `yaml:"model,omitempty"`
	Concurrency int         `yaml:"concurrency,omitempty"`
	History     HistoryFile `yaml:"history,omitempty"`
	Safelist    []string    `yaml:"safelist,omitempty"`
}

// Apply copies every value set in the file onto cfg.
// Zero values in the file leave the corresponding setting untouched.
func (cf *File) Apply(cfg *Config) {
	if cf == nil || cfg == nil {
		return
	}
	if cf.Dataset != "" {
		cfg.DatasetPath = cf.Dataset
	}
	if cf.Output != "" {
		cfg.OutputPath = cf.Output
		cfg.ModelPath = cf.Output
	}
	if cf.Model != "" {
		cfg.ModelPath = cf.Model
	}
	if cf.Report != "" {
		cfg.ReportFile = cf.Report
	}
	if cf.Concurrency != 0 {
		cfg.Concurrency = cf.Concurrency
	}
	if cf.History.Enabled != nil {
		cfg.SaveHistory = *cf.History.Enabled
	}
	if cf.History.Dir != "" {
		cfg.HistoryDir = cf.History.Dir
	}
	if len(cf.Safelist) > 0 {
		cfg.Safelist = append([]string(nil), cf.Safelist...)
	}
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .phishmodel in the current directory
// 3. Look for .phishmodel in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	for _, candidate := range configSearchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// configSearchPaths lists the implicit config locations in search order.
// Directories that cannot be resolved are skipped.
func configSearchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}
	return append(paths, filepath.Join(XDGConfigDir(), XDGConfigFile))
}
