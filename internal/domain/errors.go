package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrEntryNotFound indicates the requested catalog entry does not exist
	ErrEntryNotFound = errors.New("catalog entry not found")
)
