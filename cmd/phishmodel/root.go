package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/phishmodel/internal/config"
	seclog "github.com/nao1215/phishmodel/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for phishmodel.
// Invoked without a subcommand it trains a model, exactly like "phishmodel train".
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phishmodel",
		Short: "Train and apply a phishing URL classifier",
		Long: `phishmodel trains a logistic-regression phishing URL classifier.

Without a subcommand it reads phishing_dataset.csv (columns "url" and "label"),
extracts nine lexical features per URL, holds out a stratified 20% test split,
fits the model and prints ROC AUC and accuracy. The fitted model is written
to model.json for use by the score command or any other consumer.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTrainCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .phishmodel in current or home directory, then $XDG_CONFIG_HOME/phishmodel/config.yaml)")
	cmd.PersistentFlags().String("history-dir", "",
		"Directory of the training history database (default: XDG data directory)")

	addTrainFlags(cmd)

	cmd.AddCommand(NewTrainCmd())
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// Every record passes through the secure handler, so URL passwords never
// reach stderr.
func setupLogger(verbose bool) *slog.Logger {
	return seclog.NewSecureLogger(os.Stderr, verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// loadConfig builds a Config from defaults and the configuration file.
// If the user named a file with --config it must exist; otherwise a missing
// file is not an error. Command flags are applied by the caller afterwards.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	cfg.ConfigFilePath = stringFlag(cmd, "config")

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if historyDir := stringFlag(cmd, "history-dir"); historyDir != "" {
		cfg.HistoryDir = historyDir
	}

	return cfg, nil
}

// stringFlag returns the value of a local or inherited flag, or "" when the
// command does not define it.
func stringFlag(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}
