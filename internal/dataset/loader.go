package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/phishmodel/internal/model"
)

// Column names that must be present in the header.
const (
	ColumnURL   = "url"
	ColumnLabel = "label"
)

// DefaultPath is the dataset file used when none is configured.
const DefaultPath = "phishing_dataset.csv"

// LoadCSV reads every row of the CSV file at path.
func LoadCSV(path string) ([]model.Sample, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dataset path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return samples, nil
}

// ReadCSV parses a dataset from r. Header names are matched exactly after
// stripping a leading byte order mark. Rows are returned in file order.
//
// A bare quote inside an unquoted field is kept as a literal character.
// URL dumps routinely contain such quotes, and strict RFC 4180 parsing
// would reject the whole file over one row.
func ReadCSV(r io.Reader) ([]model.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnURL)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	urlCol, labelCol := -1, -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		switch name {
		case ColumnURL:
			if urlCol < 0 {
				urlCol = i
			}
		case ColumnLabel:
			if labelCol < 0 {
				labelCol = i
			}
		}
	}
	if urlCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnURL)
	}
	if labelCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnLabel)
	}

	var samples []model.Sample
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if urlCol >= len(record) || labelCol >= len(record) {
			return nil, fmt.Errorf("line %d: %w: row has %d fields", line, ErrMissingColumn, len(record))
		}

		label, err := parseLabel(record[labelCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, model.Sample{
			URL:   strings.Clone(record[urlCol]),
			Label: label,
		})
	}

	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	return samples, nil
}

// parseLabel accepts integer and integral float spellings of 0 and 1.
func parseLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n == model.LabelLegitimate || n == model.LabelPhishing {
			return n, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	switch f {
	case 0:
		return model.LabelLegitimate, nil
	case 1:
		return model.LabelPhishing, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
}

// URLs returns the URL column of samples.
func URLs(samples []model.Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.URL
	}
	return out
}

// Labels returns the label column of samples.
func Labels(samples []model.Sample) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = s.Label
	}
	return out
}
