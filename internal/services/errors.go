// Package services defines the business logic of the contact manager.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer. Detail is attached with fmt.Errorf("%w: ...") so
// callers match with errors.Is.
package services

import "errors"

// Contact store errors.
var (
	// ErrDuplicateMobile is returned when an add (or a strict update) would
	// give two contacts the same mobile number. The collection is unchanged.
	ErrDuplicateMobile = errors.New("mobile number already exists")

	// ErrValidation is returned when a required field (name, mobile or
	// department) is missing.
	ErrValidation = errors.New("validation failed")

	// ErrContactNotFound indicates that a mutation targeted an id that is not
	// in the collection. Nothing was changed.
	ErrContactNotFound = errors.New("contact not found")

	// ErrPersist indicates that the in-memory mutation succeeded but writing
	// the collection to the blob store failed. The mutation is not rolled back.
	ErrPersist = errors.New("persist failed")
)

// Access gate errors.
var (
	// ErrLocked is returned when a gated action is attempted while locked.
	ErrLocked = errors.New("action locked")

	// ErrInvalidPIN is returned by Unlock when the PIN does not match.
	ErrInvalidPIN = errors.New("invalid pin")
)

// ErrInvalidTheme is returned for an unknown preset or a malformed color.
var ErrInvalidTheme = errors.New("invalid theme")
