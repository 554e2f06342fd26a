package auth

import "errors"

// Account errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is inactive")
	ErrLookupFailed = errors.New("failed to load user")
)

// Token errors
var (
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenAlreadyUsed = errors.New("token already used")
)

// Service errors
var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrRecordLogin    = errors.New("failed to record login")
)
