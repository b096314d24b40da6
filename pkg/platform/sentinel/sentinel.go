package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and brokers return these
// (optionally wrapped) so services can translate them into domain errors.
//
// For validation errors (bad input, out-of-range ordinals), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
