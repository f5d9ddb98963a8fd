package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// at login. The two are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers bad signature, malformed structure and expiry.
	// The three causes are not distinguished to the caller.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated means no valid session and no bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrIdentityNotFound  = errors.New("identity not found")
	ErrDuplicateIdentity = errors.New("email already registered")
)

// ForbiddenError is returned when an authenticated identity lacks every role
// required by a gate. Both sets are included for diagnostics; role names are
// not sensitive here.
type ForbiddenError struct {
	Required []string
	Current  []string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: requires one of [%s], caller has [%s]",
		strings.Join(e.Required, ", "), strings.Join(e.Current, ", "))
}

// InsufficientSharesError is returned when an identity's share balance is
// below a gate threshold.
type InsufficientSharesError struct {
	Required float64
	Current  float64
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("forbidden: requires share balance >= %g, caller has %g", e.Required, e.Current)
}

// RateLimitedError carries how long the caller must wait before retrying.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
}
