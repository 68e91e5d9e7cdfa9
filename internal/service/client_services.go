package service

import (
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/session"
)

type ClientServices struct {
	AuthService      ClientAuthService
	VaultService     ClientVaultService
	GeneratorService GeneratorService

	Session *session.Holder
	Adapter adapter.ServerAdapter
}

// NewClientServices builds the client service graph around one locked
// session. The caller owns the returned holder and must Lock it when done.
func NewClientServices(serverAdapter adapter.ServerAdapter, cfg config.Crypto, logger *logger.Logger) (*ClientServices, error) {
	if !crypto.ParametersSecure(cfg.Iterations, crypto.KeySize*8) {
		return nil, fmt.Errorf("%w: %d PBKDF2 iterations", crypto.ErrInvalidInput, cfg.Iterations)
	}

	cipher := crypto.NewCipher()
	deriver := crypto.NewKeyDeriver(cfg.Iterations)
	keyChain := crypto.NewKeyChainService(cipher)

	holder, err := session.NewHolder(deriver, keyChain, cipher, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	return &ClientServices{
		AuthService:      NewClientAuthService(serverAdapter, deriver, keyChain, holder, logger),
		VaultService:     NewClientVaultService(serverAdapter, holder, logger),
		GeneratorService: NewGeneratorService(logger),
		Session:          holder,
		Adapter:          serverAdapter,
	}, nil
}
