package roomapi

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	ErrorKindNetwork      ErrorKind = "network"
	ErrorKindAuth         ErrorKind = "auth"
	ErrorKindRoomNotFound ErrorKind = "roomNotFound"
	ErrorKindRateLimited  ErrorKind = "rateLimited"
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindServer       ErrorKind = "server"
	ErrorKindUnknown      ErrorKind = "unknown"
)

// Reason refines an ErrorKind with a machine-readable cause.
type Reason string

const (
	ReasonTimeout            Reason = "timeout"
	ReasonNoConnection       Reason = "noConnection"
	ReasonNetworkOther       Reason = "networkOther"
	ReasonInvalidCredentials Reason = "invalidCredentials"
	ReasonUnauthorized       Reason = "unauthorized"
	ReasonExpired            Reason = "expired"
)

// Error is the room API client's error taxonomy. Every failure surfaced
// by the client is an *Error; the original cause, if any, is attached
// and reachable through Unwrap.
type Error struct {
	Kind    ErrorKind
	Reason  Reason
	Message string

	// Retryable marks failures the client's retry loop may repeat.
	Retryable bool

	// RoomID is set for roomNotFound errors.
	RoomID string

	// RetryAfterSeconds and ResetAt are set for rateLimited errors when
	// the server sent a Retry-After header.
	RetryAfterSeconds int
	ResetAt           time.Time

	// Fields holds per-field messages for validation errors.
	Fields map[string]string

	// Status and CorrelationID are set for server errors.
	Status        int
	CorrelationID string

	cause error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	if e.cause != nil {
		return fmt.Sprintf("roomapi: %s: %v", msg, e.cause)
	}
	return "roomapi: " + msg
}

func (e *Error) Unwrap() error { return e.cause }

func newNetworkError(reason Reason, retryable bool, cause error) *Error {
	return &Error{
		Kind:      ErrorKindNetwork,
		Reason:    reason,
		Retryable: retryable,
		cause:     cause,
	}
}

func newRateLimitedError(message string, retryAfterSeconds int) *Error {
	e := &Error{
		Kind:              ErrorKindRateLimited,
		Message:           message,
		RetryAfterSeconds: retryAfterSeconds,
	}
	if retryAfterSeconds > 0 {
		e.ResetAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
	}
	return e
}

// AsError returns err as *Error when it is one anywhere in its chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsRetryable reports whether the client's retry loop may repeat the
// request that produced err.
func IsRetryable(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Retryable
	}
	return false
}

func IsRoomNotFound(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == ErrorKindRoomNotFound
}
