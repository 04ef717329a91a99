package event

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Event service implementations and validations.
var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrNotFound     = errors.New("event not found")
)

// Error wraps common Event errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsInvalidEvent indicates if err is ErrInvalidEvent.
func IsInvalidEvent(err error) bool {
	return unwrapError(err) == ErrInvalidEvent
}

// IsNotFound indicates if err is ErrNotFound.
func IsNotFound(err error) bool {
	return unwrapError(err) == ErrNotFound
}

func unwrapError(err error) error {
	switch e := err.(type) {
	case *Error:
		return e.err
	}

	return err
}

func wrapError(err error, format string, args ...interface{}) error {
	return &Error{
		err: err,
		msg: fmt.Sprintf(
			errFmt,
			err,
			fmt.Sprintf(format, args...),
		),
	}
}
