package auth

import "errors"

// Domain failure kinds returned by the Service. They are expected control
// flow, not faults: the HTTP boundary translates them to statuses and no
// endpoint handles them individually.
var (
	ErrAlreadyExists        = errors.New("a user with this email already exists")
	ErrNotFound             = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("the password entered is incorrect")
	ErrAccountDisabled      = errors.New("account is disabled or locked")
	ErrNoRefreshToken       = errors.New("refresh token not found, please login again")
	ErrTokenInvalid         = errors.New("the refresh token provided was invalid, please login again")
	ErrWeakPassword         = errors.New("password does not meet strength requirements")
	ErrPasswordMismatch     = errors.New("new password and confirmation do not match")
)
