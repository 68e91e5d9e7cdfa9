package adapter

import "errors"

// Transport errors. mapHTTPError wraps one of these around the response body
// of every non-2xx answer.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrServerUnavailable   = errors.New("server unavailable")

	ErrInvalidAddress = errors.New("invalid server address")
	ErrNoToken        = errors.New("no bearer token in response")
)
