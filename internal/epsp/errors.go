package epsp

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned for any amplitude or frequency outside the
// synthesizer's domain.
var ErrInvalidParameter = errors.New("epsp: invalid parameter")

// ParameterError names the rejected field and value.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("epsp: invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
