// Package store persists users and vault items in PostgreSQL or SQLite.
//
// Both dialects share one schema (see the migrations package) and one set of
// squirrel-built queries; only the placeholder format and the driver error
// classifier differ. Secrets arrive already encrypted and are stored verbatim.
package store

import (
	"context"

	"github.com/MKhiriev/secure-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository stores accounts.
type UserRepository interface {
	// CreateUser inserts user and returns the stored row.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail looks a user up by normalised email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID looks a user up by id.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// UpdateCredentials replaces the auth hash and the wrapped vault key.
	UpdateCredentials(ctx context.Context, userID, authHash string, wrappedVaultKey models.EncryptedBlob) error
}

// VaultRepository stores vault items. Every method is scoped by user id:
// an item of another user behaves exactly like a missing one.
type VaultRepository interface {
	Create(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	Get(ctx context.Context, userID, itemID string) (models.VaultItem, error)
	// List returns the user's items, most recently updated first.
	List(ctx context.Context, userID string) ([]models.VaultItem, error)
	Search(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error)
	Update(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error)
	Delete(ctx context.Context, userID, itemID string) error
}
