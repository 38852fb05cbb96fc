package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/phishmodel/internal/model"
)

// FileName is the database file created inside the history directory.
const FileName = "phishmodel.db"

// ErrRunNotFound is returned by GetRun when no run has the given ID.
var ErrRunNotFound = errors.New("training run not found")

// HistoryDB stores training runs in SQLite.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s: %w", dbPath, err)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS training_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		dataset_path TEXT NOT NULL,
		dataset_fingerprint TEXT,
		output_path TEXT NOT NULL,
		roc_auc REAL NOT NULL,
		accuracy REAL NOT NULL,
		train_size INTEGER NOT NULL,
		test_size INTEGER NOT NULL,
		positives INTEGER NOT NULL,
		negatives INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		model_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON training_runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON training_runs(dataset_fingerprint);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored training run.
type RunRecord struct {
	ID                 int64
	Timestamp          time.Time
	DatasetPath        string
	DatasetFingerprint string
	OutputPath         string
	Metrics            model.Metrics
	Model              *model.Model
}

// NewRunRecord builds a record from a completed run.
func NewRunRecord(run *model.TrainingRun, fingerprint string) *RunRecord {
	rec := &RunRecord{
		Timestamp:          run.StartedAt,
		DatasetPath:        run.DatasetPath,
		DatasetFingerprint: fingerprint,
		OutputPath:         run.OutputPath,
		Model:              run.Model,
	}
	if run.Metrics != nil {
		rec.Metrics = *run.Metrics
	}
	return rec
}

// SaveRun inserts rec and returns its new ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, rec *RunRecord) (int64, error) {
	if rec.Model == nil {
		return 0, fmt.Errorf("failed to save training run: %w", model.ErrInvalidModel)
	}
	modelJSON, err := json.Marshal(rec.Model)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize model: %w", err)
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
	INSERT INTO training_runs (
		timestamp, dataset_path, dataset_fingerprint, output_path,
		roc_auc, accuracy, train_size, test_size, positives, negatives, iterations,
		model_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		ts.UTC().Format(timestampLayout),
		rec.DatasetPath,
		rec.DatasetFingerprint,
		rec.OutputPath,
		rec.Metrics.ROCAUC,
		rec.Metrics.Accuracy,
		rec.Metrics.TrainSize,
		rec.Metrics.TestSize,
		rec.Metrics.Positives,
		rec.Metrics.Negatives,
		rec.Metrics.Iterations,
		string(modelJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save training run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	rec.ID = id
	return id, nil
}

const selectRuns = `
	SELECT id, timestamp, dataset_path, dataset_fingerprint, output_path,
		roc_auc, accuracy, train_size, test_size, positives, negatives, iterations,
		model_json
	FROM training_runs
`

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := selectRuns + " ORDER BY timestamp DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list training runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// LatestRuns returns the n most recent runs, newest first.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, n int) ([]RunRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	return hdb.ListRuns(ctx, n)
}

// GetRun retrieves a run by its database ID.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*RunRecord, error) {
	row := hdb.db.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*RunRecord, error) {
	var rec RunRecord
	var timestamp string
	var fingerprint sql.NullString
	var modelJSON string

	err := s.Scan(
		&rec.ID, &timestamp, &rec.DatasetPath, &fingerprint, &rec.OutputPath,
		&rec.Metrics.ROCAUC, &rec.Metrics.Accuracy,
		&rec.Metrics.TrainSize, &rec.Metrics.TestSize,
		&rec.Metrics.Positives, &rec.Metrics.Negatives,
		&rec.Metrics.Iterations,
		&modelJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan training run: %w", err)
	}

	rec.Timestamp = parseTimestamp(timestamp)
	rec.DatasetFingerprint = fingerprint.String

	var m model.Model
	if err := json.Unmarshal([]byte(modelJSON), &m); err != nil {
		return nil, fmt.Errorf("failed to parse stored model: %w", err)
	}
	rec.Model = &m

	return &rec, nil
}

// timestampLayout is the fixed-width UTC layout SaveRun writes, so that
// lexical order in SQL matches chronological order.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format, and SaveRun's with fraction
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
