package predict

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed indicates an inbound payload that is not a valid result.
	ErrMalformed = errors.New("predict: malformed payload")

	// ErrServer indicates the classifier reported an error.
	ErrServer = errors.New("predict: classifier error")

	// ErrTransport indicates the connection itself failed.
	ErrTransport = errors.New("predict: transport failure")
)

// ServerError carries the message the classifier put in its error field.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

func (e *ServerError) Unwrap() error { return ErrServer }

// MalformedError wraps the reason a payload could not be decoded.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformed, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformed, e.Reason)
}

func (e *MalformedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

// TransportError wraps a failure reported by the connection layer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }
