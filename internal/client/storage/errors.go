package storage

import "errors"

// Common client storage errors
var (
	// ErrCredentialsNotFound indicates that no credential pair is stored
	ErrCredentialsNotFound = errors.New("credentials not found")

	// ErrProfileNotFound indicates that no user profile is cached
	ErrProfileNotFound = errors.New("profile not found")
)
