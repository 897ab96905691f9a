package services

import "errors"

// Sentinel errors classifying every failure a service operation can
// return. Handlers map these onto HTTP statuses; anything that does not
// wrap one of them is treated as an internal error.
var (
	// ErrNotFound means a referenced service, slot or appointment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest means the input is semantically invalid (past date,
	// unordered range, inactive weekday, bad duration).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrForbidden means the target slot is administratively blocked.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means the operation lost to current state: slot already
	// booked, duplicate timestamp, insufficient contiguous run, or a
	// concurrent request claimed the slots first.
	ErrConflict = errors.New("conflict")
	// ErrInternal wraps unexpected storage or transaction failures.
	ErrInternal = errors.New("internal error")
)
