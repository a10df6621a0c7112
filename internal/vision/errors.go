package vision

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImage is returned when detection runs without an image.
	ErrNoImage = errors.New("no image selected")

	// ErrUnsupportedKind is returned when no backend serves the kind.
	ErrUnsupportedKind = errors.New("detection kind not supported")

	// ErrNoObservations is returned when a backend finds nothing at all.
	ErrNoObservations = errors.New("no observation")
)

// ServiceError wraps every failure of a detection request.
type ServiceError struct {
	Kind Kind
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s detection failed: %v", e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
