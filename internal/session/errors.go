package session

import "errors"

// Domain errors for the session package.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotLoggedIn is returned when no credential is stored.
	// Callers should direct the user to log in.
	ErrNotLoggedIn = errors.New("session: not logged in")

	// ErrEmptyToken is returned when the service responds to a login
	// without a usable token.
	ErrEmptyToken = errors.New("session: service returned an empty token")

	// ErrPasswordMismatch is returned when registration passwords differ.
	ErrPasswordMismatch = errors.New("session: passwords do not match")

	// ErrTermsNotAccepted is returned when registering without accepting
	// the terms and conditions.
	ErrTermsNotAccepted = errors.New("session: terms and conditions must be accepted")
)
