// Package scoring applies a saved model.json to URLs.
//
// A Scorer computes sigmoid(intercept + coefs·x) over the same features the
// model was trained on and maps the probability to a Decision:
//
//   - Safelisted: the host is, or is a subdomain of, a safelisted domain
//   - Block: probability >= BlockThreshold
//   - Suspicious: probability >= the model threshold
//   - Clean: anything lower
package scoring
