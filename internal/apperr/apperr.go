// Package apperr defines the business outcomes the HTTP layer turns into status codes.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindThrottled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindThrottled:
		return "throttled"
	default:
		return "internal"
	}
}

// MessageField keys messages that do not belong to a single input field.
const MessageField = "message"

const (
	MsgNotAuthenticated = "Authentication credentials were not provided."
	MsgInvalidToken     = "Given token not valid for any token type"
	MsgForbidden        = "You do not have permission to perform this action."
	MsgNotFound         = "Not found."
	MsgThrottled        = "Request was throttled."
	MsgInternal         = "A server error occurred."
	MsgMethodNotAllowed = "Method not allowed."
	MsgRequired         = "This field is required."
	MsgBlank            = "This field may not be blank."
)

// Error carries a kind and the messages to report, keyed by field name.
type Error struct {
	Kind   Kind
	Fields map[string][]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return e.Kind.String() + ": " + strings.Join(parts, "; ")
}

// Add appends msg under field and returns e for chaining.
func (e *Error) Add(field, msg string) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

func newError(kind Kind, field, msg string) *Error {
	return (&Error{Kind: kind}).Add(field, msg)
}

func Validation(field, msg string) *Error {
	return newError(KindValidation, field, msg)
}

func Unauthenticated(msg string) *Error {
	return newError(KindUnauthenticated, MessageField, msg)
}

func Forbidden(msg string) *Error {
	return newError(KindForbidden, MessageField, msg)
}

func NotFound(msg string) *Error {
	return newError(KindNotFound, MessageField, msg)
}

func Throttled() *Error {
	return newError(KindThrottled, MessageField, MsgThrottled)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
