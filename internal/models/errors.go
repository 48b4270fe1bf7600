package models

import "errors"

// Error kinds surfaced to the user. Match them with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("duplicate user")
	ErrNotFound           = errors.New("not found")
)

// Error pairs an error kind with the message shown to the user
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Validation returns an ErrValidation with the given message
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// NotFound returns an ErrNotFound with the given message
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}
