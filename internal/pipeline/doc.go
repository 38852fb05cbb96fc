// Package pipeline runs the training workflow as an ordered list of steps.
//
// A training run moves through four steps:
//
//	load → featurize → split_fit → evaluate_export
//
// Each step receives the shared *model.TrainingRun and fills in the fields
// the next step needs. The pipeline stops at the first failing step, so an
// artifact is only written when every earlier step succeeded.
//
// The package also provides BatchScorer, which applies a saved model to many
// URLs concurrently with a bounded errgroup.
package pipeline
