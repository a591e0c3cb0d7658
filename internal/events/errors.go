package events

import (
	"errors"
	"fmt"
)

// ErrNotFound means the requested entity does not exist on the server.
var ErrNotFound = errors.New("event not found")

// TransportError is a failed remote call: a network error or a non-2xx
// response that is neither a validation rejection nor a missing entity.
type TransportError struct {
	Status int // 0 when the request never produced a response
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("transport error: unexpected status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is a rejected event draft. Field is set when the check
// happened client-side; Message carries the server's reason otherwise.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid event: %s is required", e.Field)
	}
	return "invalid event: " + e.Message
}
