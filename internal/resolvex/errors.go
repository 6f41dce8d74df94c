package resolvex

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultServerMessage replaces an empty error body.
const DefaultServerMessage = "Server error"

// ServerError is a non-success response. Message holds the response body
// verbatim, which may be plain text or a JSON error object.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func newServerError(op string, status int, body string) *ServerError {
	msg := strings.TrimSpace(body)
	if msg == "" {
		msg = DefaultServerMessage
	}
	return &ServerError{Op: op, Status: status, Message: msg}
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("api %s returned status %d: %s", e.Op, e.Status, e.Message)
}

// TransportError is a call that never produced a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("execute request %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsServerError reports whether err wraps a *ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// IsTransportError reports whether err wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Message extracts the text to show the operator for err: the server body
// for a ServerError, the error string otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
