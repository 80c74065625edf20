package validation

import (
	"errors"
	"fmt"
)

// Error is a rejected input. Its message is written for the person who
// typed the input and can be shown as is.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

// IsInvalid reports whether err, or anything it wraps, is a validation Error.
func IsInvalid(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

func invalid(msg string) error {
	return &Error{msg: msg}
}

func invalidf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}
