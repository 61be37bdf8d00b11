// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication. Every authentication
	// failure collapses into this one value so callers cannot tell a bad
	// token from a deleted user or a wrong password.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated actor acting on a resource it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., name taken
	// or progress already marked).
	ErrAlreadyExists = errors.New("already exists")

	// ErrCounterConflict indicates two concurrent material creations raced for
	// the same per-course counter; the operation is safe to retry.
	ErrCounterConflict = errors.New("counter conflict")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
