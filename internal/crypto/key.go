package crypto

import (
	"encoding/hex"
	"fmt"
)

// KeySize is the size of every symmetric key in bytes (AES-256).
const KeySize = 32

// MasterKey is a 256-bit symmetric key.
//
// The zero value is not a usable key. String and MarshalJSON redact the
// content so a key cannot end up in logs by accident.
type MasterKey []byte

// ParseMasterKey decodes the hex form produced by [MasterKey.Hex].
func ParseMasterKey(s string) (MasterKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if len(b) != KeySize {
		return nil, ErrInvalidKey
	}

	return MasterKey(b), nil
}

// Hex returns the 64 character lowercase hex encoding of the key.
func (k MasterKey) Hex() string {
	return hex.EncodeToString(k)
}

// Valid reports whether the key has the expected size.
func (k MasterKey) Valid() bool {
	return len(k) == KeySize
}

// Clone returns an independent copy of the key.
func (k MasterKey) Clone() MasterKey {
	if k == nil {
		return nil
	}
	c := make(MasterKey, len(k))
	copy(c, k)
	return c
}

// Wipe overwrites the key bytes with zeros.
func (k MasterKey) Wipe() {
	clear(k)
}

func (k MasterKey) String() string {
	return "MasterKey(redacted)"
}

func (k MasterKey) MarshalJSON() ([]byte, error) {
	return []byte(`"redacted"`), nil
}
