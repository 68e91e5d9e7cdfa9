// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/MKhiriev/secure-vault/models"
)

// authSalt domain-separates the auth hash from the key it is computed from.
const authSalt = "secure-vault/auth/v1"

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	cipher Cipher
	rand   io.Reader
}

// NewKeyChainService constructs a [KeyChainService] that wraps keys with c.
func NewKeyChainService(c Cipher) KeyChainService {
	return &keyChainService{
		cipher: c,
		rand:   rand.Reader,
	}
}

// GenerateVaultKey implements [KeyChainService]. It reads [KeySize] random
// bytes from the OS CSPRNG.
func (k *keyChainService) GenerateVaultKey() (MasterKey, error) {
	key := make(MasterKey, KeySize)
	if _, err := io.ReadFull(k.rand, key); err != nil {
		return nil, fmt.Errorf("generate vault key: %w", err)
	}
	return key, nil
}

// WrapKey implements [KeyChainService]. The vault key is encrypted in its hex
// form, so the wrapped value is an ordinary [models.EncryptedBlob].
func (k *keyChainService) WrapKey(vaultKey, kek MasterKey) (models.EncryptedBlob, error) {
	if !vaultKey.Valid() {
		return "", ErrInvalidKey
	}

	wrapped, err := k.cipher.Encrypt(vaultKey.Hex(), kek)
	if err != nil {
		return "", fmt.Errorf("wrap vault key: %w", err)
	}

	return wrapped, nil
}

// UnwrapKey implements [KeyChainService].
func (k *keyChainService) UnwrapKey(wrapped models.EncryptedBlob, kek MasterKey) (MasterKey, error) {
	if wrapped == "" {
		return nil, fmt.Errorf("%w: empty wrapped key", ErrDecryption)
	}

	hexKey, err := k.cipher.Decrypt(wrapped, kek)
	if err != nil {
		return nil, fmt.Errorf("unwrap vault key: %w", err)
	}

	key, err := ParseMasterKey(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrapped value is not a key", ErrDecryption)
	}

	return key, nil
}

// AuthHash implements [KeyChainService]: hex(SHA-256(kek ‖ authSalt)).
func (k *keyChainService) AuthHash(kek MasterKey) string {
	h := sha256.New()
	h.Write(kek)
	h.Write([]byte(authSalt))
	return hex.EncodeToString(h.Sum(nil))
}
