package error

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// General-purpose errors.
var (
	ErrNotFound = errors.New("not found")
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrExpired            = errors.New("credential expired")
	ErrMalformed          = errors.New("malformed credential")
)

// Invitation errors.
var (
	ErrInactive       = errors.New("inactive")
	ErrTokenCollision = errors.New("token collision")
)

// Boundary errors.
var (
	ErrNetworkFailure = errors.New("network failure")
)

// Error wrapper.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsExpired indicates if err is ErrExpired.
func IsExpired(err error) bool {
	return unwrapError(err) == ErrExpired
}

// IsInactive indicates if err is ErrInactive.
func IsInactive(err error) bool {
	return unwrapError(err) == ErrInactive
}

// IsInvalidCredentials indicates if err is ErrInvalidCredentials.
func IsInvalidCredentials(err error) bool {
	return unwrapError(err) == ErrInvalidCredentials
}

// IsInvalidSignature indicates if err is ErrInvalidSignature.
func IsInvalidSignature(err error) bool {
	return unwrapError(err) == ErrInvalidSignature
}

// IsMalformed indicates if err is ErrMalformed.
func IsMalformed(err error) bool {
	return unwrapError(err) == ErrMalformed
}

// IsNetworkFailure indicates if err is ErrNetworkFailure.
func IsNetworkFailure(err error) bool {
	return unwrapError(err) == ErrNetworkFailure
}

// IsNotFound indicates if err is ErrNotFound.
func IsNotFound(err error) bool {
	return unwrapError(err) == ErrNotFound
}

// IsTokenCollision indicates if err is ErrTokenCollision.
func IsTokenCollision(err error) bool {
	return unwrapError(err) == ErrTokenCollision
}

// Wrap constructs an Error with proper messaging.
func Wrap(err error, format string, args ...interface{}) error {
	return &Error{
		err: err,
		msg: fmt.Sprintf(
			errFmt,
			err, fmt.Sprintf(format, args...),
		),
	}
}

func unwrapError(err error) error {
	switch e := err.(type) {
	case *Error:
		return e.err
	}

	return err
}
