package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "phishmodel" {
			t.Errorf("expected use 'phishmodel', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("trains when run without a subcommand", func(t *testing.T) {
		t.Parallel()
		if cmd.RunE == nil {
			t.Error("expected root command to be runnable")
		}
		for _, name := range []string{"dataset", "output", "report", "no-history"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag on root", name)
			}
		}
	})

	t.Run("has persistent flags", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name      string
			shorthand string
		}{
			{name: "verbose", shorthand: "v"},
			{name: "config", shorthand: "c"},
			{name: "history-dir", shorthand: ""},
		}
		for _, tt := range tests {
			flag := cmd.PersistentFlags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected %s flag", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected %s shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{"train": false, "score": false, "history": false, "init": false, "version": false}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// TestGetVerboseFlag tests reading the persistent verbose flag.
func TestGetVerboseFlag(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	if err := cmd.ParseFlags([]string{"-v"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if !getVerboseFlag(cmd) {
		t.Error("expected verbose to be true")
	}

	if getVerboseFlag(NewInitCmd()) {
		t.Error("expected verbose to be false for a detached command")
	}
}

// TestSetupLogger tests that the logger honours the verbose setting.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	if setupLogger(false).Enabled(t.Context(), -4) {
		t.Error("expected debug to be disabled by default")
	}
	if !setupLogger(true).Enabled(t.Context(), -4) {
		t.Error("expected debug to be enabled when verbose")
	}
}
