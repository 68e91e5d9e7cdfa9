// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/secure-vault/models"
	"golang.org/x/crypto/hkdf"
)

// BlobVersion identifies the format of an [models.EncryptedBlob].
type BlobVersion string

const (
	// VersionUnknown is reported for blobs that match no known format.
	VersionUnknown BlobVersion = ""

	// VersionLegacy is the OpenSSL "Salted__" passphrase format:
	// base64("Salted__" ‖ salt[8] ‖ AES-256-CBC ciphertext), key and IV from
	// EVP_BytesToKey(MD5) over the hex master key. Unauthenticated.
	VersionLegacy BlobVersion = "v1"

	// VersionAEAD is "v2:" followed by base64(salt[16] ‖ nonce[12] ‖
	// AES-256-GCM ciphertext and tag). The per-blob key is
	// HKDF-SHA256(master key, salt) and the version tag is authenticated as
	// additional data.
	VersionAEAD BlobVersion = "v2"
)

const (
	aeadPrefix   = string(VersionAEAD) + ":"
	aeadSaltSize = 16
	aeadInfo     = "secure-vault/blob/v2/aes-256-gcm"

	// base64 of "Salted__" always starts with this.
	legacyPrefix = "U2FsdGVkX1"
)

// VersionOf inspects the tag of blob without decrypting it.
func VersionOf(blob models.EncryptedBlob) BlobVersion {
	s := string(blob)
	switch {
	case strings.HasPrefix(s, aeadPrefix):
		return VersionAEAD
	case strings.HasPrefix(s, legacyPrefix):
		return VersionLegacy
	default:
		return VersionUnknown
	}
}

// versionedCipher writes [VersionAEAD] blobs and reads both formats.
type versionedCipher struct {
	rand   io.Reader
	legacy *legacyCipher
}

// NewCipher returns the default [Cipher]: new blobs are authenticated
// AES-256-GCM ([VersionAEAD]); legacy blobs remain readable.
func NewCipher() Cipher {
	return &versionedCipher{
		rand:   rand.Reader,
		legacy: &legacyCipher{rand: rand.Reader},
	}
}

func (c *versionedCipher) Encrypt(plaintext string, key MasterKey) (models.EncryptedBlob, error) {
	if plaintext == "" {
		return "", nil
	}
	if !key.Valid() {
		return "", fmt.Errorf("%w: %w", ErrEncryption, ErrInvalidKey)
	}

	salt := make([]byte, aeadSaltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %w", ErrEncryption, err)
	}

	gcm, err := blobAEAD(key, salt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %w", ErrEncryption, err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), []byte(VersionAEAD))

	raw := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	raw = append(raw, salt...)
	raw = append(raw, nonce...)
	raw = append(raw, sealed...)

	return models.EncryptedBlob(aeadPrefix + base64.StdEncoding.EncodeToString(raw)), nil
}

func (c *versionedCipher) Decrypt(blob models.EncryptedBlob, key MasterKey) (string, error) {
	if blob == "" {
		return "", nil
	}

	switch VersionOf(blob) {
	case VersionAEAD:
		return c.decryptAEAD(blob, key)
	case VersionLegacy:
		return c.legacy.Decrypt(blob, key)
	default:
		return "", fmt.Errorf("%w: %w", ErrDecryption, ErrUnsupportedBlob)
	}
}

func (c *versionedCipher) decryptAEAD(blob models.EncryptedBlob, key MasterKey) (string, error) {
	if !key.Valid() {
		return "", fmt.Errorf("%w: %w", ErrDecryption, ErrInvalidKey)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(string(blob), aeadPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: bad encoding", ErrDecryption)
	}

	// salt, nonce and at least the GCM tag
	if len(raw) < aeadSaltSize+12+16 {
		return "", fmt.Errorf("%w: blob too short", ErrDecryption)
	}

	salt := raw[:aeadSaltSize]
	gcm, err := blobAEAD(key, salt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	nonce := raw[aeadSaltSize : aeadSaltSize+gcm.NonceSize()]
	sealed := raw[aeadSaltSize+gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, sealed, []byte(VersionAEAD))
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecryption)
	}

	return checkPlaintext(plaintext)
}

// blobAEAD derives the per-blob key from the master key and salt and returns
// an AES-256-GCM instance over it.
func blobAEAD(key MasterKey, salt []byte) (cipher.AEAD, error) {
	blobKey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, salt, []byte(aeadInfo)), blobKey); err != nil {
		return nil, fmt.Errorf("derive blob key: %w", err)
	}
	defer clear(blobKey)

	block, err := aes.NewCipher(blobKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

// checkPlaintext rejects empty and non UTF-8 output. A successful decryption
// never yields either, so both point at a wrong key or corrupted data.
func checkPlaintext(plaintext []byte) (string, error) {
	if len(plaintext) == 0 {
		return "", fmt.Errorf("%w: empty output", ErrDecryption)
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: malformed UTF-8 output", ErrDecryption)
	}

	return string(plaintext), nil
}
