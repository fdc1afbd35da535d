// Package apperrors defines the tagged failure type returned by the hackathon core.
package apperrors

import "errors"

// Kind groups failure reasons so callers can tell "doesn't exist" apart from
// "exists but a rule was violated".
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindExpired
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindExpired:
		return "expired"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Reason is the machine-readable tag of a business failure.
type Reason string

// Error is a business failure with a reason tag.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same reason tag.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Reason == t.Reason
}

// New creates a failure with a kind, reason and message.
func New(kind Kind, reason Reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

// Wrap creates a copy of e with a more specific message and an underlying cause.
func (e *Error) Wrap(message string, cause error) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, Message: message, Cause: cause}
}

// WithMessage returns a copy of e with a different human message, same tag.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, Message: message}
}

// KindOf extracts the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// ReasonOf extracts the reason of the first *Error in err's chain.
func ReasonOf(err error) Reason {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}

// PersistsState reports whether a failure still changed the aggregate and must be
// saved before it is returned (invitation expiry).
func PersistsState(err error) bool {
	return KindOf(err) == KindExpired
}
