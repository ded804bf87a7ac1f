package domain

import (
	"errors"
	"fmt"
)

// Account and authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrMissingCredentials = errors.New("username and password are required")
)

// ErrInvalidToken is returned for a bearer token that is malformed, badly
// signed or expired. It matches ErrUnauthenticated under errors.Is.
var ErrInvalidToken = fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)

// Catalog errors.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrProductNotFound  = errors.New("product not found")
)
