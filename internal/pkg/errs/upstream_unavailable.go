package errs

import (
	"errors"
	"fmt"
)

var ErrUpstreamUnavailable = errors.New("upstream is unavailable")

// UpstreamUnavailableError wraps a failed call to an external collaborator.
// Callers may retry the whole operation.
type UpstreamUnavailableError struct {
	Service string
	Cause   error
}

func NewUpstreamUnavailableError(service string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{
		Service: service,
		Cause:   cause,
	}
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUpstreamUnavailable, e.Service, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamUnavailable, e.Service)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}
