package features

import "errors"

var (
	// ErrEmptyHost is returned by SplitHost when the URL has no network location.
	ErrEmptyHost = errors.New("empty host")

	// ErrInvalidHost is returned by SplitHost when the network location
	// has an empty label or a malformed IPv6 literal.
	ErrInvalidHost = errors.New("invalid host")
)
