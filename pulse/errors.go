package pulse

import (
	"errors"
	"fmt"
)

var (
	// ErrContextLost is returned by rendering operations while the native
	// surface is revoked. It is recoverable: wait for the window to resume.
	ErrContextLost = errors.New("pulse: context lost")

	// ErrReleased is returned by rendering operations after Release was called.
	ErrReleased = errors.New("pulse: context released")

	// ErrNoAvailablePixelFormat is returned when no pixel format matches the requirements.
	ErrNoAvailablePixelFormat = errors.New("pulse: no available pixel format")

	// ErrNotSupported is returned when a driver can not provide the requested api or feature.
	ErrNotSupported = errors.New("pulse: not supported")

	// ErrVersionNotSupported is returned when the requested api version is not available.
	ErrVersionNotSupported = errors.New("pulse: version not supported")
)

// PlatformError reports that the platform could not provide a native window.
// On mobile this happens when a context is created before the OS handed the
// window to the app.
type PlatformError struct {
	Reason string
}

func (e *PlatformError) Error() string {
	return "pulse: platform error: " + e.Reason
}

// CreationError is returned when a context could not be created.
// Creation is never retried.
type CreationError struct {
	Op  string
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("pulse: %s: %s", e.Op, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// ContextError is returned by a driver when a native rendering operation fails.
type ContextError struct {
	Op  string
	Err error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("pulse: %s: %s", e.Op, e.Err)
}

func (e *ContextError) Unwrap() error {
	return e.Err
}

func creationError(op string, err error) error {
	var creationErr *CreationError
	if errors.As(err, &creationErr) {
		return err
	}

	return &CreationError{Op: op, Err: err}
}
