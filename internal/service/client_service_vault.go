package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/session"
	"github.com/MKhiriev/secure-vault/models"
)

// DecryptFailedPlaceholder replaces a secret that could not be decrypted.
const DecryptFailedPlaceholder = "[failed to decrypt]"

type clientVaultService struct {
	adapter adapter.ServerAdapter
	holder  session.KeyHolder

	logger *logger.Logger
}

func NewClientVaultService(serverAdapter adapter.ServerAdapter, holder session.KeyHolder, logger *logger.Logger) ClientVaultService {
	return &clientVaultService{adapter: serverAdapter, holder: holder, logger: logger}
}

func (v *clientVaultService) Create(ctx context.Context, input models.VaultItemInput) (models.DecryptedVaultItem, error) {
	if !v.holder.IsUnlocked() {
		return models.DecryptedVaultItem{}, ErrVaultLocked
	}
	if input.Password == "" {
		return models.DecryptedVaultItem{}, fmt.Errorf("%w: password is required", ErrInvalidDataProvided)
	}

	encrypted, err := v.holder.EncryptItem(models.VaultItemSecrets{Password: input.Password, Notes: input.Notes})
	if err != nil {
		return models.DecryptedVaultItem{}, v.encryptError(err)
	}

	created, err := v.adapter.CreateItem(ctx, models.VaultItem{
		Title:             input.Title,
		Username:          input.Username,
		URL:               input.URL,
		Tags:              input.Tags,
		EncryptedPassword: encrypted.EncryptedPassword,
		EncryptedNotes:    encrypted.EncryptedNotes,
	})
	if err != nil {
		return models.DecryptedVaultItem{}, mapAdapterError(err)
	}

	return v.decrypt(created), nil
}

func (v *clientVaultService) Get(ctx context.Context, itemID string) (models.DecryptedVaultItem, error) {
	if !v.holder.IsUnlocked() {
		return models.DecryptedVaultItem{}, ErrVaultLocked
	}

	item, err := v.adapter.GetItem(ctx, itemID)
	if err != nil {
		return models.DecryptedVaultItem{}, mapAdapterError(err)
	}

	return v.decrypt(item), nil
}

func (v *clientVaultService) List(ctx context.Context) ([]models.DecryptedVaultItem, error) {
	if !v.holder.IsUnlocked() {
		return nil, ErrVaultLocked
	}

	items, err := v.adapter.ListItems(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}

	return v.decryptAll(items), nil
}

func (v *clientVaultService) Search(ctx context.Context, req models.VaultSearchRequest) (models.DecryptedVaultItemList, error) {
	if !v.holder.IsUnlocked() {
		return models.DecryptedVaultItemList{}, ErrVaultLocked
	}

	list, err := v.adapter.SearchItems(ctx, req)
	if err != nil {
		return models.DecryptedVaultItemList{}, mapAdapterError(err)
	}

	return models.DecryptedVaultItemList{
		Total:  list.Total,
		Offset: list.Offset,
		Limit:  list.Limit,
		Items:  v.decryptAll(list.Items),
	}, nil
}

func (v *clientVaultService) Update(ctx context.Context, itemID string, patch models.VaultItemPatch) (models.DecryptedVaultItem, error) {
	if !v.holder.IsUnlocked() {
		return models.DecryptedVaultItem{}, ErrVaultLocked
	}

	update := models.VaultItemUpdate{
		ID:       itemID,
		Title:    patch.Title,
		Username: patch.Username,
		URL:      patch.URL,
		Tags:     patch.Tags,
	}

	if patch.Password != nil || patch.Notes != nil {
		secrets := models.VaultItemSecrets{Notes: patch.Notes}
		if patch.Password != nil {
			if *patch.Password == "" {
				return models.DecryptedVaultItem{}, fmt.Errorf("%w: password can not be empty", ErrInvalidDataProvided)
			}
			secrets.Password = *patch.Password
		}

		encrypted, err := v.holder.EncryptItem(secrets)
		if err != nil {
			return models.DecryptedVaultItem{}, v.encryptError(err)
		}

		if patch.Password != nil {
			update.EncryptedPassword = &encrypted.EncryptedPassword
		}
		if patch.Notes != nil {
			// empty notes encrypt to nothing; an empty blob clears them
			update.EncryptedNotes = encrypted.EncryptedNotes
			if update.EncryptedNotes == nil {
				empty := models.EncryptedBlob("")
				update.EncryptedNotes = &empty
			}
		}
	}

	if update.IsEmpty() {
		return models.DecryptedVaultItem{}, fmt.Errorf("%w: nothing to update", ErrInvalidDataProvided)
	}

	updated, err := v.adapter.UpdateItem(ctx, update)
	if err != nil {
		return models.DecryptedVaultItem{}, mapAdapterError(err)
	}

	return v.decrypt(updated), nil
}

func (v *clientVaultService) Delete(ctx context.Context, itemID string) error {
	return mapAdapterError(v.adapter.DeleteItem(ctx, itemID))
}

func (v *clientVaultService) decryptAll(items []models.VaultItem) []models.DecryptedVaultItem {
	out := make([]models.DecryptedVaultItem, 0, len(items))
	for _, item := range items {
		out = append(out, v.decrypt(item))
	}
	return out
}

// decrypt opens the password and the notes separately so that one corrupted
// field does not hide the other.
func (v *clientVaultService) decrypt(item models.VaultItem) models.DecryptedVaultItem {
	out := models.DecryptedVaultItem{VaultItem: item}

	password, err := v.holder.DecryptItem(models.EncryptedVaultItemSecrets{EncryptedPassword: item.EncryptedPassword})
	if err != nil {
		v.logger.Warn().Err(err).Str("func", "*clientVaultService.decrypt").Str("item_id", item.ID).Msg("password field is unreadable")
		out.Password = DecryptFailedPlaceholder
		out.DecryptFailed = true
	} else {
		out.Password = password.Password
	}

	if item.EncryptedNotes != nil && *item.EncryptedNotes != "" {
		notes, err := v.holder.DecryptItem(models.EncryptedVaultItemSecrets{EncryptedNotes: item.EncryptedNotes})
		if err != nil || notes.Notes == nil {
			v.logger.Warn().Err(err).Str("func", "*clientVaultService.decrypt").Str("item_id", item.ID).Msg("notes field is unreadable")
			placeholder := DecryptFailedPlaceholder
			out.Notes = &placeholder
			out.DecryptFailed = true
		} else {
			out.Notes = notes.Notes
		}
	}

	return out
}

func (v *clientVaultService) encryptError(err error) error {
	if errors.Is(err, session.ErrLocked) {
		return ErrVaultLocked
	}
	return fmt.Errorf("%w: %w", ErrEncryptingItem, err)
}
