package usecase

import (
	"errors"
)

// Domain error kinds. Handlers map these to HTTP statuses with errors.Is;
// the wrapped message is what the caller sees.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConflict         = errors.New("conflict")
)

type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }

func (e *domainError) Unwrap() error { return e.kind }

func notFoundError(msg string) error {
	return &domainError{kind: ErrNotFound, msg: msg}
}

func validationError(msg string) error {
	return &domainError{kind: ErrValidation, msg: msg}
}

func permissionDeniedError(msg string) error {
	return &domainError{kind: ErrPermissionDenied, msg: msg}
}

func unauthorizedError(msg string) error {
	return &domainError{kind: ErrUnauthorized, msg: msg}
}

func conflictError(msg string) error {
	return &domainError{kind: ErrConflict, msg: msg}
}
