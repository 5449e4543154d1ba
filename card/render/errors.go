package render

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedProfile is returned when a profile cannot be rendered without
	// baking missing or invalid values into the markup.
	ErrMalformedProfile = errors.New("malformed profile")
	ErrUnknownVariant   = errors.New("unknown card variant")
)

// MalformedProfileError names the offending profile field.
type MalformedProfileError struct {
	Field  string
	Reason string
}

func (e *MalformedProfileError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrMalformedProfile, e.Field, e.Reason)
}

func (e *MalformedProfileError) Unwrap() error {
	return ErrMalformedProfile
}
