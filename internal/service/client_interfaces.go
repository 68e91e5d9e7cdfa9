package service

import (
	"context"

	"github.com/MKhiriev/secure-vault/models"
)

// ClientAuthService defines the client-side contract for account management.
// Implementations derive every key locally: the master password never leaves
// the process, only the auth hash and the wrapped vault key are sent to the
// server.
type ClientAuthService interface {
	// Register checks the password policy, derives the key-encryption key
	// (KEK), generates a random vault key, wraps it with the KEK and creates
	// the account. On success the session is unlocked with the new vault key.
	// Returns ErrWeakPassword with the failed rules when the policy rejects
	// the password.
	Register(ctx context.Context, email, password string) (models.User, error)

	// Login derives the KEK, authenticates with its auth hash, and unlocks
	// the session with the wrapped vault key returned by the server.
	// Returns ErrUnlockFailed if the vault key cannot be unwrapped.
	Login(ctx context.Context, email, password string) (models.User, error)

	// ChangePassword re-wraps the vault key under a KEK derived from
	// newPassword. Stored items are not re-encrypted.
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error

	// Logout ends the server session and locks the vault. The vault is locked
	// even when the server call fails.
	Logout(ctx context.Context) error
}

// ClientVaultService defines the client-side contract for managing vault
// items. Secrets are encrypted with the session key before they are sent and
// decrypted after they are received.
type ClientVaultService interface {
	Create(ctx context.Context, input models.VaultItemInput) (models.DecryptedVaultItem, error)
	Get(ctx context.Context, itemID string) (models.DecryptedVaultItem, error)

	// List returns every item of the user. Items whose secrets can not be
	// decrypted are returned with DecryptFailed set and placeholder secrets.
	List(ctx context.Context) ([]models.DecryptedVaultItem, error)

	Search(ctx context.Context, req models.VaultSearchRequest) (models.DecryptedVaultItemList, error)

	// Update applies patch to the item. Only the fields set in patch change;
	// only a changed password or notes are re-encrypted.
	Update(ctx context.Context, itemID string, patch models.VaultItemPatch) (models.DecryptedVaultItem, error)

	Delete(ctx context.Context, itemID string) error
}
