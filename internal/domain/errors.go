package domain

import "errors"

// ErrNotFound marks a lookup that matched no record for the requesting owner.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or out-of-range input. Its message is safe
// to return to the client verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validation builds a ValidationError with the given client-facing message.
func Validation(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError reports a duplicate unique key, such as an email address or a
// category name already present in the user's registry.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

// Conflict builds a ConflictError with the given client-facing message.
func Conflict(msg string) error {
	return &ConflictError{msg: msg}
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
