package crypto

import (
	"crypto/sha256"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor used when none is configured.
	DefaultIterations = 100000

	// MinIterations is the lowest work factor accepted by [ParametersSecure].
	MinIterations = 10000

	// MinKeyBits is the smallest key size accepted by [ParametersSecure].
	MinKeyBits = 128

	// MinPasswordLength is the shortest login password accepted at registration.
	MinPasswordLength = 8
)

// DeriveMasterKey runs PBKDF2-HMAC-SHA256 over password and salt and returns a
// 32-byte key. The result is deterministic for identical inputs.
//
// A non-positive iterations value falls back to [DefaultIterations].
// Returns [ErrInvalidInput] if password or salt is empty.
func DeriveMasterKey(password, salt string, iterations int) (MasterKey, error) {
	if password == "" || salt == "" {
		return nil, ErrInvalidInput
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	return MasterKey(pbkdf2.Key([]byte(password), []byte(salt), iterations, KeySize, sha256.New)), nil
}

// NormalizeEmail trims and lower-cases an email. The result is both the login
// identifier on the server and the derivation salt on the client.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type keyDeriver struct {
	iterations int
}

// NewKeyDeriver returns a [KeyDeriver] with the given work factor.
// A non-positive iterations value selects [DefaultIterations].
func NewKeyDeriver(iterations int) KeyDeriver {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &keyDeriver{iterations: iterations}
}

func (d *keyDeriver) FromCredentials(email, password string) (MasterKey, error) {
	return DeriveMasterKey(password, NormalizeEmail(email), d.iterations)
}

func (d *keyDeriver) Iterations() int {
	return d.iterations
}

// ParametersSecure reports whether a derivation configuration meets the
// minimum work factor and key size.
func ParametersSecure(iterations, keyBits int) bool {
	return iterations >= MinIterations && keyBits >= MinKeyBits
}

// ValidatePassword checks a login password against the registration rules and
// returns the list of violated rules. An empty list means the password is
// acceptable.
func ValidatePassword(password string) []string {
	var problems []string

	if password == "" {
		problems = append(problems, "Password is required")
	}
	if len(password) < MinPasswordLength {
		problems = append(problems, "Password must be at least 8 characters")
	}

	return problems
}
