package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrFetchFailure      = errors.New("fetch failure")
	ErrOriginUnavailable = errors.New("origin unavailable")
)

// Kind is a coarse-grained categorization for fetch errors.
type Kind string

const (
	KindFetchFailure      Kind = "fetch_failure"
	KindOriginUnavailable Kind = "origin_unavailable"
)

// Error wraps an underlying failure with the resource it concerned.
type Error struct {
	Kind   Kind
	Path   string
	URL    string // resolved request URL, empty when resolution failed
	Status int    // HTTP status when the server answered
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("fetch %s: %s", e.Path, e.Kind)
	if e.Status != 0 {
		base += fmt.Sprintf(" (status=%d)", e.Status)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel belonging to the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFetchFailure:
		return e.Kind == KindFetchFailure
	case ErrOriginUnavailable:
		return e.Kind == KindOriginUnavailable
	}
	return false
}

// IsKind reports whether err carries a fetch error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
