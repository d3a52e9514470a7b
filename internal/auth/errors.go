package auth

import "errors"

var (
	// ErrUnsupportedCredential is returned by a provider for credentials it does not handle.
	// The service moves on to the next provider.
	ErrUnsupportedCredential = errors.New("unsupported credential")

	// ErrMissingSubject is returned when a verified token carries no subject claim.
	ErrMissingSubject = errors.New("token has no subject")

	// ErrInvalidAPIKey is returned when an API key does not match the stored hash.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrUserNotFound is returned when a user cannot be found in the database or directory.
	ErrUserNotFound = errors.New("user not found")

	// ErrMultipleUsersFound is returned when a query expected one user but found multiple.
	// This typically indicates a misconfigured LDAP filter or duplicate entries.
	ErrMultipleUsersFound = errors.New("multiple users found")
)
