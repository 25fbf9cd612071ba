package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Document related errors
	ErrDocumentNotFound = errors.New("document not found")

	// Upload related errors
	ErrFileNotFound = errors.New("file not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
