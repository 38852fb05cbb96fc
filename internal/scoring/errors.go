package scoring

import "errors"

// ErrNilModel is returned by New when no model is given.
var ErrNilModel = errors.New("scoring: nil model")
