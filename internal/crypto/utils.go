package crypto

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/MKhiriev/secure-vault/models"
)

// EncryptionMetadata describes the cryptographic parameters of new blobs.
type EncryptionMetadata struct {
	Algorithm       string      `json:"algorithm"`
	BlobVersion     BlobVersion `json:"blob_version"`
	KeyDerivation   string      `json:"key_derivation"`
	HashAlgorithm   string      `json:"hash_algorithm"`
	Iterations      int         `json:"iterations"`
	LegacyAlgorithm string      `json:"legacy_algorithm"`
}

// Metadata returns the parameters in effect for the given work factor.
func Metadata(iterations int) EncryptionMetadata {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	return EncryptionMetadata{
		Algorithm:       "AES-256-GCM",
		BlobVersion:     VersionAEAD,
		KeyDerivation:   "PBKDF2",
		HashAlgorithm:   "SHA-256",
		Iterations:      iterations,
		LegacyAlgorithm: "AES-256-CBC",
	}
}

// SecureCompare compares two strings in constant time with respect to their
// content.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// IsValidEncryptedData reports whether blob is syntactically a blob of a known
// version. It does not prove the blob decrypts.
func IsValidEncryptedData(blob models.EncryptedBlob) bool {
	var (
		payload string
		minLen  int
	)

	switch VersionOf(blob) {
	case VersionAEAD:
		payload = strings.TrimPrefix(string(blob), aeadPrefix)
		minLen = aeadSaltSize + 12 + 16
	case VersionLegacy:
		payload = string(blob)
		minLen = len(legacyHeader) + legacySaltSize + 16
	default:
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return false
	}

	return len(raw) >= minLen
}
