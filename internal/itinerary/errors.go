// README: Error taxonomy for the generation pipeline (sentinels + classified wrapper).
package itinerary

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput   = errors.New("missing input")
	ErrInvalidInput   = errors.New("invalid input")
	ErrContentBlocked = errors.New("content blocked")
	ErrProvider       = errors.New("provider error")
	ErrMalformedJSON  = errors.New("malformed json")
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Kind slugs shared by the HTTP error body and the client lifecycle states.
const (
	KindMissingInput   = "missing-input"
	KindInvalidInput   = "invalid-input"
	KindContentBlocked = "content-blocked"
	KindProvider       = "provider-error"
	KindMalformedJSON  = "malformed-json"
	KindSchemaMismatch = "schema-mismatch"
)

// Error classifies a pipeline failure. errors.Is matches it against the sentinel it was built with.
type Error struct {
	class error

	// Field is the first violated field path (SchemaMismatch, InvalidInput).
	Field string
	// Details carries provider feedback for ContentBlocked.
	Details any
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.class.Error()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.class }

// Kind returns the taxonomy slug of the error.
func (e *Error) Kind() string { return KindOf(e.class) }

// KindOf maps any error onto a taxonomy slug. Unclassified errors report "".
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return KindMissingInput
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrContentBlocked):
		return KindContentBlocked
	case errors.Is(err, ErrProvider):
		return KindProvider
	case errors.Is(err, ErrMalformedJSON):
		return KindMalformedJSON
	case errors.Is(err, ErrSchemaMismatch):
		return KindSchemaMismatch
	default:
		return ""
	}
}

func NewInvalidInput(field, reason string) *Error {
	return &Error{class: ErrInvalidInput, Field: field, Err: errors.New(reason)}
}

func NewContentBlocked(details any, cause error) *Error {
	return &Error{class: ErrContentBlocked, Details: details, Err: cause}
}

func NewProviderError(cause error) *Error {
	return &Error{class: ErrProvider, Err: cause}
}

func newMalformedJSON(cause error) *Error {
	return &Error{class: ErrMalformedJSON, Err: cause}
}

func newSchemaMismatch(field, format string, args ...any) *Error {
	return &Error{class: ErrSchemaMismatch, Field: field, Err: fmt.Errorf(format, args...)}
}
