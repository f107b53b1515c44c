package scanner

import "errors"

// Request-level failures. Per-visit failures never surface as errors; they are
// recorded on the visit outcome instead.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrAuthFailure      = errors.New("authentication failed")
	ErrDiscoveryFailure = errors.New("discovery failed")
)
