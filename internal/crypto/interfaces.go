package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

import "github.com/MKhiriev/secure-vault/models"

// Cipher encrypts and decrypts individual string fields under a [MasterKey].
//
// Contract shared by all implementations:
//
//	Encrypt("", k)  == ""
//	Decrypt("", k)  == ""
//	Decrypt(Encrypt(s, k), k) == s
//
// Every decryption failure (wrong key, corrupted or truncated blob, bad
// encoding, failed authentication, empty or non UTF-8 output) is reported as
// an error matching [ErrDecryption]. Errors never carry plaintext or key
// material.
type Cipher interface {
	Encrypt(plaintext string, key MasterKey) (models.EncryptedBlob, error)
	Decrypt(blob models.EncryptedBlob, key MasterKey) (string, error)
}

// KeyDeriver turns user credentials into a deterministic [MasterKey].
type KeyDeriver interface {
	// FromCredentials derives the key from password using the normalised
	// email (trimmed, lower-cased) as the salt.
	FromCredentials(email, password string) (MasterKey, error)

	// Iterations returns the PBKDF2 work factor in use.
	Iterations() int
}

// KeyChainService manages the vault key hierarchy on the client.
//
// The password-derived key (KEK) never encrypts items directly: it wraps a
// random vault key, and only the wrapped form is stored on the server. A
// password change therefore re-wraps one key instead of re-encrypting the
// whole vault.
//
//	KEK      = KeyDeriver.FromCredentials(email, password)
//	VaultKey = GenerateVaultKey()
//	Wrapped  = WrapKey(VaultKey, KEK)
//	AuthHash = AuthHash(KEK)
type KeyChainService interface {
	// GenerateVaultKey returns 32 fresh random bytes.
	GenerateVaultKey() (MasterKey, error)

	// WrapKey encrypts vaultKey under kek.
	WrapKey(vaultKey, kek MasterKey) (models.EncryptedBlob, error)

	// UnwrapKey reverses WrapKey. A wrong kek yields [ErrDecryption].
	UnwrapKey(wrapped models.EncryptedBlob, kek MasterKey) (MasterKey, error)

	// AuthHash is the value the server authenticates the user with. It is a
	// one-way function of kek, so the server cannot recover the key from it.
	AuthHash(kek MasterKey) string
}
