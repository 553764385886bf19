package model

import "errors"

// Common errors used across the application
var (
	// Credential errors
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingCredentials = errors.New("username and password required")
	ErrUsernameNotAlnum   = errors.New("username must be alphanumeric")
	ErrPasswordTooShort   = errors.New("password must be at least 4 characters")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token errors
	ErrInvalidToken = errors.New("invalid or expired token")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session has ended")

	// Auth request errors
	ErrInvalidAction = errors.New("invalid action")
)
