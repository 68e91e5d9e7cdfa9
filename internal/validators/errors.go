package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidItemID        = errors.New("invalid vault item ID")
	ErrInvalidTitle         = errors.New("title must be 1 to 100 characters")
	ErrInvalidUsername      = errors.New("username must be 1 to 100 characters")
	ErrInvalidURL           = errors.New("url must be an http or https address of at most 500 characters")
	ErrInvalidEncryptedData = errors.New("encrypted field is not a valid encrypted blob")
	ErrNotesTooLong         = errors.New("encrypted notes exceed 2000 characters")
	ErrTooManyTags          = errors.New("at most 10 tags are allowed")
	ErrInvalidTag           = errors.New("tags must be 1 to 30 characters")
	ErrNoFieldsToUpdate     = errors.New("at least one field must be provided for update")
	ErrInvalidLimit         = errors.New("limit must be between 1 and 100")
	ErrInvalidOffset        = errors.New("offset must not be negative")
	ErrInvalidQuery         = errors.New("search query is too long")

	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidAuthHash      = errors.New("auth hash must be 64 hex characters")
	ErrEmptyWrappedVaultKey = errors.New("wrapped vault key is required")
	ErrSameAuthHash         = errors.New("new credentials must differ from the current ones")
)
