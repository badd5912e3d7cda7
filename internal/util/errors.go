package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrInvalidCredentials indicates a failed login. It deliberately does
	// not say whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionInvalid indicates a missing, expired, or revoked session token
	ErrSessionInvalid = errors.New("session expired or invalid")

	// ErrPermissionDenied indicates the caller's role lacks the required capability
	ErrPermissionDenied = errors.New("insufficient permissions")

	// ErrNotFound indicates a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a domain constraint would be violated
	// (duplicate unique value, stock going negative, ...)
	ErrConstraint = errors.New("constraint violation")

	// ErrNoFields indicates an update request carried no fields to apply
	ErrNoFields = errors.New("no fields to update")

	// ErrMigration indicates a schema migration step failed; fatal at startup
	ErrMigration = errors.New("migration failed")

	// ErrStorage wraps unexpected errors from the underlying database engine
	ErrStorage = errors.New("storage failure")
)
