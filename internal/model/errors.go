package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches the lookup.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState covers unknown, consumed and expired oauth states alike.
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrInvalidToken covers unknown, revoked and expired refresh tokens alike.
	ErrInvalidToken = errors.New("invalid refresh token")

	// ErrProvider indicates the identity provider was unreachable or rejected
	// the authorization code.
	ErrProvider = errors.New("identity provider request failed")

	// ErrUnauthenticated covers malformed, forged and expired access tokens.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates a valid identity without the required privilege.
	ErrForbidden = errors.New("forbidden")
)
