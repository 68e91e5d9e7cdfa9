package service

import (
	"context"

	"github.com/MKhiriev/secure-vault/models"
)

// AuthService registers and authenticates accounts. It only ever sees the
// client-computed auth hash, never the password.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	// ChangePassword verifies the current auth hash and stores the new auth
	// hash together with the re-wrapped vault key.
	ChangePassword(ctx context.Context, userID string, change models.PasswordChange) error

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService manages the encrypted vault items of a user.
type VaultService interface {
	CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error)
	ListItems(ctx context.Context, userID string) ([]models.VaultItem, error)
	SearchItems(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error)
	UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// logging or validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}

// GeneratorService exposes the password generator.
type GeneratorService interface {
	Generate(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error)
	ValidateOptions(ctx context.Context, opts models.PasswordOptions) models.OptionsValidation
	// Strength scores req.Password. A non-positive charset size is estimated
	// from the characters of the password.
	Strength(ctx context.Context, req models.StrengthRequest) models.PasswordStrength
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
