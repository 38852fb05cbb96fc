// Package model defines the data structures shared by the training pipeline,
// the scorer and the report writers.
//
// This package contains the following main types:
//   - Sample: one labeled dataset row (URL + 0/1 label)
//   - FeatureVector: the fixed nine-slot lexical feature vector
//   - Model: the exported linear model artifact (model.json)
//   - TrainingRun: the state handed from one pipeline step to the next
//   - Verdict: the outcome of scoring a single URL with a saved Model
//
// Models live in their own package because features, dataset, classifier,
// pipeline and report all need them, and keeping them here avoids import cycles.
package model
