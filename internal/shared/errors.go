package shared

import "errors"

var (

	// common errors
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")

	// pairing-specific errors
	ErrInvalidCode   = errors.New("invalid invite code")
	ErrSelfJoin      = errors.New("cannot join your own invite code")
	ErrAlreadyPaired = errors.New("already in a relationship")
	ErrLinkFailure   = errors.New("failed to link profiles")

	// entry-specific errors
	ErrNoRelationship = errors.New("no relationship found")
)
