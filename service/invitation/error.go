package invitation

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Invitation service implementations and validations.
var (
	ErrInvalidInvitation = errors.New("invalid invitation")
	ErrNotFound          = errors.New("invitation not found")
	ErrTokenCollision    = errors.New("token collision")
)

// Error wraps common Invitation errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsInvalidInvitation indicates if err is ErrInvalidInvitation.
func IsInvalidInvitation(err error) bool {
	return unwrapError(err) == ErrInvalidInvitation
}

// IsNotFound indicates if err is ErrNotFound.
func IsNotFound(err error) bool {
	return unwrapError(err) == ErrNotFound
}

// IsTokenCollision indicates if err is ErrTokenCollision.
func IsTokenCollision(err error) bool {
	return unwrapError(err) == ErrTokenCollision
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
