package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned when neither the header nor the
	// auth cookie carries a token.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
