// Package common defines sentinel errors shared across the console.
// Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Credential validation errors.
	ErrInvalidPhoneFormat = errors.New("phone number must be exactly 10 digits")
	ErrPasswordTooShort   = errors.New("password must be at least 3 characters")
	ErrInvalidCredentials = errors.New("invalid phone number or password")

	// Provisioning errors. ErrValidation is wrapped with field detail.
	// ErrDuplicateAccount stays distinct so duplicates are reported to
	// the operator differently from form mistakes.
	ErrValidation       = errors.New("validation error")
	ErrDuplicateAccount = errors.New("account already exists")

	// Remote store errors (transport failure, timeout, non-2xx).
	ErrStoreUnavailable = errors.New("store unavailable")

	// A malformed persisted session is recovered by treating the
	// operator as logged out, never surfaced as fatal.
	ErrMalformedSession = errors.New("malformed session")
)
