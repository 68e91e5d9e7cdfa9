package crypto

import (
	"fmt"

	"github.com/MKhiriev/secure-vault/models"
)

// FieldCodec maps the confidential fields of a vault item between plaintext
// and ciphertext. Non-secret metadata never passes through it.
type FieldCodec struct {
	cipher Cipher
}

// NewFieldCodec returns a codec over c.
func NewFieldCodec(c Cipher) *FieldCodec {
	return &FieldCodec{cipher: c}
}

// EncryptItem encrypts the password and, when present and non-empty, the
// notes. Absent notes stay absent.
func (f *FieldCodec) EncryptItem(secrets models.VaultItemSecrets, key MasterKey) (models.EncryptedVaultItemSecrets, error) {
	password, err := f.cipher.Encrypt(secrets.Password, key)
	if err != nil {
		return models.EncryptedVaultItemSecrets{}, fmt.Errorf("encrypt password: %w", err)
	}

	out := models.EncryptedVaultItemSecrets{EncryptedPassword: password}

	if secrets.Notes != nil && *secrets.Notes != "" {
		notes, err := f.cipher.Encrypt(*secrets.Notes, key)
		if err != nil {
			return models.EncryptedVaultItemSecrets{}, fmt.Errorf("encrypt notes: %w", err)
		}
		out.EncryptedNotes = &notes
	}

	return out, nil
}

// DecryptItem is the inverse of EncryptItem.
func (f *FieldCodec) DecryptItem(encrypted models.EncryptedVaultItemSecrets, key MasterKey) (models.VaultItemSecrets, error) {
	password, err := f.cipher.Decrypt(encrypted.EncryptedPassword, key)
	if err != nil {
		return models.VaultItemSecrets{}, fmt.Errorf("decrypt password: %w", err)
	}

	out := models.VaultItemSecrets{Password: password}

	if encrypted.EncryptedNotes != nil && *encrypted.EncryptedNotes != "" {
		notes, err := f.cipher.Decrypt(*encrypted.EncryptedNotes, key)
		if err != nil {
			return models.VaultItemSecrets{}, fmt.Errorf("decrypt notes: %w", err)
		}
		out.Notes = &notes
	}

	return out, nil
}
