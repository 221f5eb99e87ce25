package repository

import "errors"

// Domain error kinds. Match with errors.Is; the message of the returned error
// is meant for display.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// Error is a domain error carrying a human-readable message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(what string) error {
	return &Error{Kind: ErrNotFound, Msg: what + " not found"}
}

func invalid(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func badTransition(msg string) error {
	return &Error{Kind: ErrInvalidTransition, Msg: msg}
}

// Duplicate builds an ErrDuplicate error.
func Duplicate(msg string) error {
	return &Error{Kind: ErrDuplicate, Msg: msg}
}

// InvalidCredentials is the single error returned for every failed login.
func InvalidCredentials() error {
	return &Error{Kind: ErrInvalidCredentials, Msg: "Invalid credentials"}
}

// Validation builds an ErrValidation error.
func Validation(msg string) error {
	return invalid(msg)
}
