package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrGone             = errors.New("gone")
	ErrConflict         = errors.New("conflict")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUpstream         = errors.New("upstream error")
)

type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.kind }

// New returns an error of the given kind carrying a message safe to show to clients.
func New(kind error, msg string) error { return &messageError{kind: kind, msg: msg} }

func Validation(msg string) error { return New(ErrValidation, msg) }
func NotFound(msg string) error   { return New(ErrNotFound, msg) }

// Upstream wraps a storage or gateway failure. The cause is kept for logs only.
func Upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}

// SizeLimitError is returned when a declared upload size exceeds the size
// limit in force. It unwraps to ErrValidation.
type SizeLimitError struct {
	LimitGB int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("File size exceeds the %dGB limit. Please upgrade for larger uploads.", e.LimitGB)
}

func (e *SizeLimitError) Unwrap() error { return ErrValidation }

// Message returns the client-facing message of err, or "" when err carries none.
func Message(err error) string {
	var sl *SizeLimitError
	if errors.As(err, &sl) {
		return sl.Error()
	}
	var m *messageError
	if errors.As(err, &m) {
		return m.msg
	}
	return ""
}
