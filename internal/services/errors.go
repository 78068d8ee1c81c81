package services

import "errors"

// Shared error taxonomy. NotFound, Forbidden, InvalidTransition, InvalidState
// and Conflict are permanent; Downstream wraps transient store failures and
// may be retried by the caller.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("insufficient privileges")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidState      = errors.New("verification request already decided")
	ErrConflict          = errors.New("conflicting record already exists")
	ErrDownstream        = errors.New("downstream dependency failed")
)
