package mercadolivre

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures returned by the marketplace clients.
type ErrorKind int

// Error kinds.
const (
	// KindConfig means a required credential is missing.
	KindConfig ErrorKind = iota + 1
	// KindProviderRejected means the token endpoint answered with an
	// error/error_description payload.
	KindProviderRejected
	// KindAuthExpired means the catalog answered 401.
	KindAuthExpired
	// KindTransport covers network failures, unexpected statuses and
	// unparseable bodies.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindProviderRejected:
		return "provider_rejected"
	case KindAuthExpired:
		return "auth_expired"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ErrMissingCredentials is wrapped by KindConfig errors.
var ErrMissingCredentials = errors.New("ML_CLIENT_ID or ML_REDIRECT_URI not configured")

// Error is the error type returned by every outbound call in this package.
type Error struct {
	Kind ErrorKind
	// Code and Description mirror the provider's error and
	// error_description fields when present.
	Code        string
	Description string
	Status      int
	Err         error
}

func (e *Error) Error() string {
	msg := e.Message()
	switch {
	case e.Status != 0 && msg != "":
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, msg)
	case e.Status != 0:
		return fmt.Sprintf("%s (status %d)", e.Kind, e.Status)
	case msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the provider's description, falling back to its error code
// and then to the wrapped error.
func (e *Error) Message() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsAuthExpired reports whether err is a 401 from the catalog.
func IsAuthExpired(err error) bool {
	return KindOf(err) == KindAuthExpired
}
