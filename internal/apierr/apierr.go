package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how the front end should surface it.
type Kind int

const (
	// KindInternal is the fallback for anything unclassified.
	KindInternal Kind = iota
	// KindValidation blocks submission before any network call is made,
	// or reports a request the backend refused as malformed.
	KindValidation
	// KindAuth covers rejected credentials and expired/missing tokens.
	KindAuth
	// KindConflict covers duplicate accounts and already-processed actions.
	KindConflict
	// KindNotFound renders as an inline "not found" state, not a toast.
	KindNotFound
	// KindNetwork covers transport failures and server-side errors; the
	// operation stays retryable by re-invoking the same action.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindNetwork:
		return "network"
	default:
		return "internal"
	}
}

// Error carries a user-facing message together with its Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }
func Auth(message string) *Error       { return New(KindAuth, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }

func Network(message string, err error) *Error {
	return Wrap(KindNetwork, message, err)
}

// KindOf returns the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// FromStatus maps an HTTP status to a classified error. The message is the
// backend's, forwarded verbatim when present.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return New(KindValidation, message)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return New(KindAuth, message)
	case status == http.StatusConflict:
		return New(KindConflict, message)
	case status == http.StatusNotFound:
		return New(KindNotFound, message)
	case status >= 500:
		return New(KindNetwork, message)
	default:
		return New(KindInternal, message)
	}
}
