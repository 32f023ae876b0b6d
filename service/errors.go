// file: service/errors.go

package service

import "errors"

// Authentication and authorization failures. Handlers map these onto
// HTTP status codes; the service layer never touches the response.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so the
	// login endpoint does not leak which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated means the presented access token could not be
	// resolved to an author.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrTokenExpired and ErrTokenInvalid are distinguished for
	// diagnostics only; both produce a 401 for the client.
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")

	// ErrInvalidScope means a token of the wrong type was presented,
	// e.g. an access token where a refresh token is required.
	ErrInvalidScope = errors.New("invalid scope for token")

	ErrForbidden    = errors.New("operation forbidden")
	ErrEmailTaken   = errors.New("author with such email already exists")
	ErrWeakPassword = errors.New("password does not meet the complexity rules")

	ErrAuthorNotFound   = errors.New("author not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryTaken    = errors.New("the name of the category already exists")
	ErrPostNotFound     = errors.New("post not found")
	ErrProfileNotFound  = errors.New("author profile not found")
	ErrProfileExists    = errors.New("profile for this author already exists")
)
