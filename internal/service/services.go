package service

import (
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/store"
)

type Services struct {
	AuthService      AuthService
	VaultService     VaultService
	GeneratorService GeneratorService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	vault := NewVaultValidationService().Wrap(NewVaultService(storages.VaultRepository, logger))

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.App, logger),
		VaultService:     vault,
		GeneratorService: NewGeneratorService(logger),
		AppInfoService:   appInfo,
	}, nil
}
