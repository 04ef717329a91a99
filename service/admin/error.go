package admin

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Admin service implementations and validations.
var (
	ErrInvalidAdmin = errors.New("invalid admin")
	ErrNotFound     = errors.New("admin not found")
)

// Error wraps common Admin errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsInvalidAdmin indicates if err is ErrInvalidAdmin.
func IsInvalidAdmin(err error) bool {
	return unwrapError(err) == ErrInvalidAdmin
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
