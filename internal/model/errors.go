package model

import "errors"

// ErrInvalidModel is returned by Model.Validate when an artifact does not
// satisfy the coefs/feature_names invariants.
var ErrInvalidModel = errors.New("invalid model")
