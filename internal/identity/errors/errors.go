package errors

import "errors"

var (
	ErrNotFound = errors.New("identity not found")

	ErrEmailTaken = errors.New("email is already registered")

	ErrTokenInvalid = errors.New("session token is invalid")

	ErrTokenExpired = errors.New("session token has expired")
)
