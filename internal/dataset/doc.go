// Package dataset loads labeled URL datasets and partitions them for
// training and evaluation.
//
// A dataset is a CSV file with a header row containing at least the columns
// "url" and "label". Labels are 1 for phishing and 0 for legitimate. Any
// other columns are ignored.
package dataset
