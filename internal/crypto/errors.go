package crypto

import "errors"

var (
	// ErrInvalidInput is returned when key derivation inputs are missing or
	// malformed.
	ErrInvalidInput = errors.New("password and salt are required for key derivation")

	// ErrInvalidKey is returned when a key does not have [KeySize] bytes.
	ErrInvalidKey = errors.New("invalid key size")

	// ErrEncryption wraps failures of the underlying primitives or of the
	// random source during encryption.
	ErrEncryption = errors.New("failed to encrypt data")

	// ErrDecryption is the single error class for every decryption failure.
	ErrDecryption = errors.New("failed to decrypt data")

	// ErrUnsupportedBlob is returned (wrapped in ErrDecryption) for blobs whose
	// version tag is unknown.
	ErrUnsupportedBlob = errors.New("unsupported encrypted blob format")
)
