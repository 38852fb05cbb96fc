// Package main provides the entry point for the phishmodel CLI.
//
// phishmodel trains a logistic-regression phishing URL classifier from a
// labelled CSV file and writes the fitted model to model.json.
//
// Usage:
//
//	phishmodel                      # train from phishing_dataset.csv
//	phishmodel -d urls.csv -o out.json
//	phishmodel score https://example.com/login
//	phishmodel history
//
// See --help for all available options.
package main

// main is the entry point for phishmodel.
func main() {
	Execute()
}
