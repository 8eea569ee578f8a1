package service

import "errors"

// Sentinel errors shared by all services. Handlers translate these to HTTP
// statuses; everything else surfaces as a generic server error.
var (
	// ErrValidation marks bad or missing input, detected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials covers a failed login without revealing whether
	// the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden means the caller is authenticated but does not own the resource.
	ErrForbidden = errors.New("not authorized")
	// ErrNotFound means the requested user, project or file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers duplicate registration fields and concurrent file mutations.
	ErrConflict = errors.New("conflict")
	// ErrStorage marks a failed blob upload; the request cannot proceed.
	ErrStorage = errors.New("storage failure")
)
