package property

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGraph        = errors.New("invalid graph")
	ErrUnsupportedProperty = errors.New("unsupported property")
	ErrUnsound             = errors.New("solution violates the property")
)

// InvalidGraphError reports a structural precondition that the input violates
type InvalidGraphError struct {
	Reason string
	Err    error
}

func (e *InvalidGraphError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid graph: %s: %v", e.Reason, e.Err)
	}
	return "invalid graph: " + e.Reason
}

func (e *InvalidGraphError) Unwrap() error {
	return e.Err
}

func (e *InvalidGraphError) Is(target error) bool {
	return target == ErrInvalidGraph
}

type UnsupportedPropertyError struct {
	Kind Kind
}

func (e *UnsupportedPropertyError) Error() string {
	return fmt.Sprintf("unsupported property %q", string(e.Kind))
}

func (e *UnsupportedPropertyError) Is(target error) bool {
	return target == ErrUnsupportedProperty
}

func invalidGraph(format string, args ...any) error {
	return &InvalidGraphError{Reason: fmt.Sprintf(format, args...)}
}
