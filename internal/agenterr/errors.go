// Package agenterr defines the error taxonomy shared by the agent,
// its tools, and the external API clients.
package agenterr

import (
	"errors"
	"fmt"
)

// Kind classifies an agent error.
type Kind int

const (
	// KindUnknown is the zero value; it never matches a tagged error.
	KindUnknown Kind = iota

	// KindConfiguration marks a missing or invalid credential/setting.
	KindConfiguration

	// KindWeatherAPI marks a failure talking to the weather provider.
	KindWeatherAPI

	// KindModelAPI marks a failure talking to the model provider.
	KindModelAPI

	// KindToolExecution marks a tool rejecting its input or hitting an
	// unsupported case.
	KindToolExecution

	// KindToolNotFound marks a dispatch to an unregistered tool. The loop
	// itself answers unknown tools with an observation instead; this kind
	// exists for stricter dispatch variants.
	KindToolNotFound
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindWeatherAPI:
		return "weather_api"
	case KindModelAPI:
		return "model_api"
	case KindToolExecution:
		return "tool_execution"
	case KindToolNotFound:
		return "tool_not_found"
	default:
		return "unknown"
	}
}

// Error is a tagged agent error. Callers switch on Kind rather than on
// concrete types.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

// New creates an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from an error chain, or KindUnknown if the
// chain carries no *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
