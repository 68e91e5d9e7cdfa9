package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/session"
	"github.com/MKhiriev/secure-vault/models"
)

type clientAuthService struct {
	adapter  adapter.ServerAdapter
	deriver  crypto.KeyDeriver
	keyChain crypto.KeyChainService
	holder   session.KeyHolder

	logger *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, deriver crypto.KeyDeriver, keyChain crypto.KeyChainService, holder session.KeyHolder, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:  serverAdapter,
		deriver:  deriver,
		keyChain: keyChain,
		holder:   holder,
		logger:   logger,
	}
}

func (a *clientAuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	email = crypto.NormalizeEmail(email)

	if problems := crypto.ValidatePassword(password); len(problems) > 0 {
		return models.User{}, fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(problems, "; "))
	}

	kek, err := a.deriver.FromCredentials(email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	defer kek.Wipe()

	vaultKey, err := a.keyChain.GenerateVaultKey()
	if err != nil {
		return models.User{}, fmt.Errorf("error generating vault key: %w", err)
	}
	defer vaultKey.Wipe()

	wrapped, err := a.keyChain.WrapKey(vaultKey, kek)
	if err != nil {
		return models.User{}, fmt.Errorf("error wrapping vault key: %w", err)
	}

	registered, err := a.adapter.Register(ctx, models.User{
		Email:           email,
		AuthHash:        a.keyChain.AuthHash(kek),
		WrappedVaultKey: wrapped,
	})
	if err != nil {
		a.logger.Err(err).Str("func", "*clientAuthService.Register").Msg("server rejected registration")
		return models.User{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	if !a.holder.UnlockWrapped(email, password, wrapped) {
		return models.User{}, ErrUnlockFailed
	}

	return registered, nil
}

func (a *clientAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	email = crypto.NormalizeEmail(email)

	kek, err := a.deriver.FromCredentials(email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	defer kek.Wipe()

	user, err := a.adapter.Login(ctx, models.User{Email: email, AuthHash: a.keyChain.AuthHash(kek)})
	if err != nil {
		a.logger.Err(err).Str("func", "*clientAuthService.Login").Msg("server rejected login")
		return models.User{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	if !a.holder.UnlockWrapped(email, password, user.WrappedVaultKey) {
		return models.User{}, ErrUnlockFailed
	}

	return user, nil
}

func (a *clientAuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	email = crypto.NormalizeEmail(email)

	if problems := crypto.ValidatePassword(newPassword); len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(problems, "; "))
	}
	if oldPassword == newPassword {
		return fmt.Errorf("%w: new password must differ from the current one", ErrInvalidDataProvided)
	}

	oldKEK, err := a.deriver.FromCredentials(email, oldPassword)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	defer oldKEK.Wipe()

	oldAuthHash := a.keyChain.AuthHash(oldKEK)

	// the wrapped key is fetched fresh so that a stale session can not
	// overwrite a key rotated elsewhere
	user, err := a.adapter.Login(ctx, models.User{Email: email, AuthHash: oldAuthHash})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	vaultKey, err := a.keyChain.UnwrapKey(user.WrappedVaultKey, oldKEK)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnlockFailed, err)
	}
	defer vaultKey.Wipe()

	newKEK, err := a.deriver.FromCredentials(email, newPassword)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	defer newKEK.Wipe()

	wrapped, err := a.keyChain.WrapKey(vaultKey, newKEK)
	if err != nil {
		return fmt.Errorf("error wrapping vault key: %w", err)
	}

	err = a.adapter.ChangePassword(ctx, models.PasswordChange{
		AuthHash:           oldAuthHash,
		NewAuthHash:        a.keyChain.AuthHash(newKEK),
		NewWrappedVaultKey: wrapped,
	})
	if err != nil {
		a.logger.Err(err).Str("func", "*clientAuthService.ChangePassword").Msg("server rejected password change")
		return mapAdapterError(err)
	}

	if !a.holder.UnlockWrapped(email, newPassword, wrapped) {
		return ErrUnlockFailed
	}

	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	defer a.holder.Lock()

	if err := a.adapter.Logout(ctx); err != nil && !errors.Is(err, adapter.ErrUnauthorized) {
		return mapAdapterError(err)
	}

	return nil
}
