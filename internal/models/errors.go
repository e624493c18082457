package models

import "errors"

// Error taxonomy shared by services, guards and handlers
var (
	// ErrInvalidCredentials covers both unknown username and wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession means the session token is absent, unknown or expired
	ErrNoSession = errors.New("no session")
	// ErrForbidden means the session's role does not permit the operation
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound means no user row matches the given username
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername means an insert hit the users.username unique key
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrBookNotFound means no book row matches the given id
	ErrBookNotFound = errors.New("book not found")
)
