package service

import (
	"context"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/store"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
)

type vaultService struct {
	vaultRepository store.VaultRepository
	ids             *utils.UUIDGenerator

	logger *logger.Logger
}

// NewVaultService returns the storage-backed VaultService. It trusts its
// input; wrap it with NewVaultValidationService for user-facing calls.
func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		ids:             utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

// CreateItem assigns a fresh UUIDv7 to item and stores it.
func (v *vaultService) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	item.ID = v.ids.Generate()
	return v.vaultRepository.Create(ctx, item)
}

func (v *vaultService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	return v.vaultRepository.Get(ctx, userID, itemID)
}

func (v *vaultService) ListItems(ctx context.Context, userID string) ([]models.VaultItem, error) {
	return v.vaultRepository.List(ctx, userID)
}

func (v *vaultService) SearchItems(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
	return v.vaultRepository.Search(ctx, req)
}

func (v *vaultService) UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
	return v.vaultRepository.Update(ctx, update)
}

func (v *vaultService) DeleteItem(ctx context.Context, userID, itemID string) error {
	return v.vaultRepository.Delete(ctx, userID, itemID)
}
