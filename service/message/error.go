package message

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Message service implementations and validations.
var (
	ErrEmptySource    = errors.New("empty source")
	ErrInvalidMessage = errors.New("invalid message")
	ErrNotFound       = errors.New("message not found")
)

// Error wraps common Message errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsEmptySource indicates if err is ErrEmptySource.
func IsEmptySource(err error) bool {
	return unwrapError(err) == ErrEmptySource
}

// IsInvalidMessage indicates if err is ErrInvalidMessage.
func IsInvalidMessage(err error) bool {
	return unwrapError(err) == ErrInvalidMessage
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
