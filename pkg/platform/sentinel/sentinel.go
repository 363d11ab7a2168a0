package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and registry clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store or registry
// - ErrConflict: write conflicted with an existing record
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: external registry or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
