package services

import "errors"

// Failure taxonomy of the points engine. Handlers map these to HTTP status
// codes with errors.Is; everything else is treated as an internal error.
var (
	// ErrInvalidActivity rejects an unscoreable activity: an unknown type
	// or a known type with missing/malformed metadata.
	ErrInvalidActivity = errors.New("invalid activity")
	// ErrInvalidAmount rejects a non-positive penalty magnitude.
	ErrInvalidAmount = errors.New("penalty amount must be positive")
	// ErrMissingReason rejects a penalty without an audit reason.
	ErrMissingReason = errors.New("penalty reason is required")
	// ErrNotFound means no ledger exists for the employee.
	ErrNotFound = errors.New("points ledger not found")
	// ErrConcurrencyExhausted means write contention exceeded the retry
	// budget. Transient: the caller may retry the whole operation.
	ErrConcurrencyExhausted = errors.New("points write contention: retries exhausted")
	// ErrStoreUnavailable means the persistence layer failed. Transient.
	ErrStoreUnavailable = errors.New("points store unavailable")
)

// ErrInvalidCredentials is returned by the auth service on a failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")
