package api

import (
	"errors"
	"fmt"
)

// Kind categorizes why an API call failed.
type Kind int

const (
	// KindUnreachable covers transport failures: refused connections, DNS
	// errors, timeouts and cancelled contexts.
	KindUnreachable Kind = iota + 1
	// KindRejected means the service answered with a non-2xx status.
	KindRejected
	// KindMalformed means a 2xx response body could not be decoded.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrUnreachable = &Error{Kind: KindUnreachable}
	ErrRejected    = &Error{Kind: KindRejected}
	ErrMalformed   = &Error{Kind: KindMalformed}
)

// Error is the failure result of every client operation.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var detail string
	switch {
	case e.Kind == KindRejected && e.StatusCode != 0:
		detail = fmt.Sprintf("returned status %d", e.StatusCode)
	case e.Err != nil:
		detail = fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		detail = e.Kind.String()
	}
	if e.Op == "" {
		return detail
	}
	return e.Op + " " + detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.StatusCode == 0 && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}
