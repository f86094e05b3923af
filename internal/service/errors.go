package service

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP
// status codes; anything else is a 500.
var (
	// ErrInvalidCredential covers every authentication failure: wrong
	// password, unknown email, wrong/expired/used verification code. One
	// error for all causes so responses don't reveal which part failed.
	ErrInvalidCredential = errors.New("invalid credentials")

	ErrEmailTaken      = errors.New("email already registered")
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
	ErrTooManyRequests = errors.New("too many requests, please try again later")
	ErrInvalidInput    = errors.New("invalid input")
)
