package reaction

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Reaction service implementations and validations.
var (
	ErrInvalidReaction = errors.New("invalid reaction")
	ErrNotFound        = errors.New("reaction not found")
)

// Error wraps common Reaction errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsInvalidReaction indicates if err is ErrInvalidReaction.
func IsInvalidReaction(err error) bool {
	return unwrapError(err) == ErrInvalidReaction
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
