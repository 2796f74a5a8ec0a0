package api

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport-level failures: DNS errors, refused
// connections, timeouts. Check with errors.Is.
var ErrNetwork = errors.New("network failure")

// BackendError is a structured non-2xx response from the backend, or a 2xx
// response whose body did not match any expected shape.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Message)
}

// shapeError builds the BackendError used when a response decodes but does
// not match either accepted shape.
func shapeError(status int) *BackendError {
	return &BackendError{Status: status, Message: "unexpected response shape"}
}
