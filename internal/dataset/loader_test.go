package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	t.Run("valid with extra columns", func(t *testing.T) {
		t.Parallel()
		path := writeCSV(t, "id,url,source,label\n1,https://example.com,alexa,0\n2,\"http://a.com/x,y\",feed,1\n")

		samples, err := LoadCSV(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(samples))
		}
		if samples[0].URL != "https://example.com" || samples[0].Label != 0 {
			t.Errorf("unexpected first sample: %+v", samples[0])
		}
		if samples[1].URL != "http://a.com/x,y" || !samples[1].IsPhishing() {
			t.Errorf("unexpected second sample: %+v", samples[1])
		}
	})

	t.Run("byte order mark", func(t *testing.T) {
		t.Parallel()
		path := writeCSV(t, "\ufeffurl,label\nhttps://example.com,0\n")
		if _, err := LoadCSV(path); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("bare quote in url", func(t *testing.T) {
		t.Parallel()
		path := writeCSV(t, "url,label\nhttp://x.com/a\"b,1\nhttps://example.com/?q=\"x\",0\n")

		samples, err := LoadCSV(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(samples) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(samples))
		}
		if samples[0].URL != `http://x.com/a"b` || samples[0].Label != 1 {
			t.Errorf("unexpected first sample: %+v", samples[0])
		}
		if samples[1].URL != `https://example.com/?q="x"` || samples[1].Label != 0 {
			t.Errorf("unexpected second sample: %+v", samples[1])
		}
	})

	t.Run("float labels", func(t *testing.T) {
		t.Parallel()
		samples, err := ReadCSV(strings.NewReader("url,label\na,1.0\nb,0.0\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if samples[0].Label != 1 || samples[1].Label != 0 {
			t.Errorf("unexpected labels: %+v", samples)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"missing label column", "url,target\nhttps://example.com,1\n", ErrMissingColumn},
		{"missing url column", "link,label\nhttps://example.com,1\n", ErrMissingColumn},
		{"case sensitive header", "URL,Label\nhttps://example.com,1\n", ErrMissingColumn},
		{"empty file", "", ErrMissingColumn},
		{"header only", "url,label\n", ErrEmptyDataset},
		{"label out of range", "url,label\nhttps://example.com,2\n", ErrInvalidLabel},
		{"label not numeric", "url,label\nhttps://example.com,phish\n", ErrInvalidLabel},
		{"short row", "url,label\nhttps://example.com\n", ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadCSV(strings.NewReader(tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestURLsAndLabels(t *testing.T) {
	t.Parallel()

	samples, err := ReadCSV(strings.NewReader("url,label\na,1\nb,0\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	urls := URLs(samples)
	labels := Labels(samples)
	if urls[0] != "a" || urls[1] != "b" {
		t.Errorf("unexpected urls: %v", urls)
	}
	if labels[0] != 1 || labels[1] != 0 {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := writeCSV(t, "url,label\na,1\n")
	b := writeCSV(t, "url,label\na,0\n")

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fa2, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb, err := Fingerprint(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fa) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(fa))
	}
	if fa != fa2 {
		t.Error("fingerprint should be stable")
	}
	if fa == fb {
		t.Error("different content should give different fingerprints")
	}
}
