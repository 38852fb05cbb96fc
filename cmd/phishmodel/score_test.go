package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/phishmodel/internal/config"
	"github.com/nao1215/phishmodel/internal/model"
)

// writeTestModel writes a hand-made artifact that weighs the IP and @ features heavily.
func writeTestModel(t *testing.T, dir string) string {
	t.Helper()

	var coefs [model.FeatureCount]float64
	coefs[model.FeatureHasIP] = 6
	coefs[model.FeatureAtSymbols] = 6
	coefs[model.FeatureSuspiciousWords] = 1.5
	m := model.NewModel(coefs[:], -3)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal model: %v", err)
	}
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write model: %v", err)
	}
	return path
}

// scoredVerdict mirrors the JSON verdict output.
type scoredVerdict struct {
	URL         string  `json:"url"`
	Host        string  `json:"host"`
	Probability float64 `json:"probability"`
	Decision    string  `json:"decision"`
}

// TestNewScoreCmd tests the score command creation.
func TestNewScoreCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScoreCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "score [url...]" {
			t.Errorf("expected use 'score [url...]', got %q", cmd.Use)
		}
	})

	t.Run("has model flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("model")
		if flag == nil {
			t.Fatal("expected model flag")
		}
		if flag.DefValue != "model.json" {
			t.Errorf("expected default 'model.json', got %q", flag.DefValue)
		}
	})

	t.Run("has concurrency flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrency")
		if flag == nil {
			t.Fatal("expected concurrency flag")
		}
		if flag.DefValue != "10" {
			t.Errorf("expected default '10', got %q", flag.DefValue)
		}
	})
}

// TestRunScoreCmd scores URLs with a known model.
func TestRunScoreCmd(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeTestModel(t, dir)
	cfgPath := writeConfig(t, dir, "safelist:\n  - trusted.example\n")

	urls := []string{
		"http://192.168.1.10/login",
		"https://plain.example.net/",
		"https://mail.trusted.example/account/verify",
	}

	stdout, err := executeRoot(t, append([]string{"score", "-c", cfgPath, "-m", modelPath, "--json"}, urls...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var verdicts []scoredVerdict
	if err := json.Unmarshal([]byte(stdout), &verdicts); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, stdout)
	}
	if len(verdicts) != len(urls) {
		t.Fatalf("expected %d verdicts, got %d", len(urls), len(verdicts))
	}

	for i, v := range verdicts {
		if v.URL != urls[i] {
			t.Errorf("verdict %d: expected URL %q, got %q", i, urls[i], v.URL)
		}
	}
	if verdicts[0].Decision != "block" {
		t.Errorf("expected IP URL to be blocked, got %q (p=%v)", verdicts[0].Decision, verdicts[0].Probability)
	}
	if verdicts[1].Decision != "clean" {
		t.Errorf("expected plain URL to be clean, got %q (p=%v)", verdicts[1].Decision, verdicts[1].Probability)
	}
	if verdicts[2].Decision != "safelisted" {
		t.Errorf("expected safelisted URL, got %q", verdicts[2].Decision)
	}
}

// TestRunScoreCmdText checks the human-readable output and the --list file.
func TestRunScoreCmdText(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeTestModel(t, dir)

	listPath := filepath.Join(dir, "urls.txt")
	content := "# suspicious links\nhttp://paypal.com@203.0.113.5/\n\nhttps://ok.example.org/\n"
	if err := os.WriteFile(listPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write list: %v", err)
	}

	stdout, err := executeRoot(t, "score", "-c", writeConfig(t, dir, ""), "-m", modelPath, "--list", listPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout, "2 scored:") {
		t.Errorf("expected summary for 2 URLs, got %q", stdout)
	}
	if !strings.Contains(stdout, "BLOCK") {
		t.Errorf("expected a BLOCK line, got %q", stdout)
	}
	if strings.Contains(stdout, "suspicious links") {
		t.Error("comment lines must be skipped")
	}
}

// TestRunScoreCmdErrors tests score command failures.
func TestRunScoreCmdErrors(t *testing.T) {
	t.Run("no URLs", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeRoot(t, "score", "-c", writeConfig(t, dir, ""), "-m", writeTestModel(t, dir))
		if !errors.Is(err, errNoURLs) {
			t.Errorf("expected errNoURLs, got %v", err)
		}
	})

	t.Run("missing model", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeRoot(t, "score", "-c", writeConfig(t, dir, ""),
			"-m", filepath.Join(dir, "absent.json"), "https://example.com")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("invalid model", func(t *testing.T) {
		dir := t.TempDir()
		modelPath := filepath.Join(dir, "model.json")
		if err := os.WriteFile(modelPath, []byte(`{"coefs":[1,2],"intercept":0,"threshold":0.5,"feature_names":["a","b"]}`), 0600); err != nil {
			t.Fatalf("failed to write model: %v", err)
		}
		_, err := executeRoot(t, "score", "-c", writeConfig(t, dir, ""), "-m", modelPath, "https://example.com")
		if !errors.Is(err, model.ErrInvalidModel) {
			t.Errorf("expected ErrInvalidModel, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeRoot(t, "score", "-c", writeConfig(t, dir, ""),
			"-m", writeTestModel(t, dir), "--json", "--markdown", "https://example.com")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("zero concurrency", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeRoot(t, "score", "-c", writeConfig(t, dir, ""),
			"-m", writeTestModel(t, dir), "-n", "0", "https://example.com")
		if !errors.Is(err, config.ErrInvalidConcurrency) {
			t.Errorf("expected ErrInvalidConcurrency, got %v", err)
		}
	})
}

// TestReadURLList tests the URL list reader.
func TestReadURLList(t *testing.T) {
	t.Parallel()

	t.Run("skips blanks and comments", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		if err := os.WriteFile(path, []byte("  https://a.example/ \n# note\n\nhttp://b.example\n"), 0600); err != nil {
			t.Fatalf("failed to write list: %v", err)
		}

		urls, err := readURLList(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"https://a.example/", "http://b.example"}
		if len(urls) != len(want) {
			t.Fatalf("expected %v, got %v", want, urls)
		}
		for i := range want {
			if urls[i] != want[i] {
				t.Errorf("url %d: expected %q, got %q", i, want[i], urls[i])
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := readURLList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
