package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyTaken  = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")

	// Catalog related errors
	ErrPersonNotFound = errors.New("person not found")
	ErrPlanetNotFound = errors.New("planet not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
