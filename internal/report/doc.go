// Package report provides output for training runs and scoring verdicts.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the two console metric lines, and plain text verdicts
//   - JSONWriter: the model.json artifact, run summaries and verdict lists
//   - MarkdownWriter: a shareable training report with tables and a chart
//
// Writers implement the Writer interface, allowing the CLI to choose a
// format with a flag. The model.json artifact itself is written by
// WriteModelFile, which is the only writer that touches disk atomically.
package report
