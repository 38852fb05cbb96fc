// Package database provides SQLite-based storage for training history.
//
// Every completed training run can be recorded with its dataset path and
// fingerprint, its evaluation metrics and the exported model. The history
// lets the CLI list past runs and show how metrics moved between the two
// most recent ones.
//
// The database is a single file (phishmodel.db) opened through the CGO-free
// modernc.org/sqlite driver with WAL journaling. It is kept apart from the
// model artifact: model.json never carries provenance metadata.
package database
