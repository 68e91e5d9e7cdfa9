package generator

import "errors"

var (
	// ErrInvalidOptions is matched by every [ValidationError].
	ErrInvalidOptions = errors.New("invalid password options")

	// ErrRandomSource is returned when the secure random source fails.
	ErrRandomSource = errors.New("secure random source failed")
)

// ValidationError describes the first violated option constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidOptions
}
