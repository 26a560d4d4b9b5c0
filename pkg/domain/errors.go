package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a caller supplies an argument that violates
// a table invariant. Nothing is mutated when it is returned.
var ErrValidation = errors.New("validation error")

// ErrInvalidUnum is returned when a uniform number is outside [1, MaxPlayer].
var ErrInvalidUnum = fmt.Errorf("%w: invalid unum", ErrValidation)

// ErrInvalidReference is returned when a symmetry reference is illegal.
var ErrInvalidReference = fmt.Errorf("%w: invalid symmetry reference", ErrValidation)

// ErrFormat is returned when a formation document cannot be parsed.
var ErrFormat = errors.New("format error")

// ErrUnknownType is returned when a formation method name is not registered.
var ErrUnknownType = errors.New("unknown formation type")

// ErrTypeExists is returned when a formation method name is registered twice.
var ErrTypeExists = errors.New("formation type already registered")

// ErrTraining is returned when a model fails to refit from its samples.
var ErrTraining = errors.New("training error")

// ErrDocumentNotFound is returned when a document ID cannot be found in a store.
var ErrDocumentNotFound = errors.New("document not found")

// FormatError describes a parse failure at a given line of a formation document.
type FormatError struct {
	Line   int    // 1-based line number, 0 when unknown
	Reason string // Human-readable reason for failure
}

func (e *FormatError) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("format error: %s", e.Reason)
	}
	return fmt.Sprintf("format error: line %d: %s", e.Line, e.Reason)
}

// Unwrap allows errors.Is(err, ErrFormat).
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// NewFormatError builds a FormatError with a formatted reason.
func NewFormatError(line int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
