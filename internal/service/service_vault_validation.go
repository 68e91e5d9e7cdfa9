package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/validators"
	"github.com/MKhiriev/secure-vault/models"
)

// DefaultSearchLimit is the page size of a search without a limit.
const DefaultSearchLimit = 50

// VaultValidationService normalises and validates every request before
// handing it to the wrapped VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultItemValidator(),
	}
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

func (v *VaultValidationService) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	item.Title = strings.TrimSpace(item.Title)
	item.Username = strings.TrimSpace(item.Username)
	item.URL = strings.TrimSpace(item.URL)
	item.Tags = normalizeTags(item.Tags)

	if err := v.validator.Validate(ctx, item); err != nil {
		return models.VaultItem{}, v.invalid(ctx, "CreateItem", err)
	}

	return v.inner.CreateItem(ctx, item)
}

func (v *VaultValidationService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	if err := v.checkIDs(ctx, userID, itemID); err != nil {
		return models.VaultItem{}, v.invalid(ctx, "GetItem", err)
	}

	return v.inner.GetItem(ctx, userID, itemID)
}

func (v *VaultValidationService) ListItems(ctx context.Context, userID string) ([]models.VaultItem, error) {
	if err := v.validator.Validate(ctx, models.VaultItem{UserID: userID}, validators.FieldUserID); err != nil {
		return nil, v.invalid(ctx, "ListItems", err)
	}

	return v.inner.ListItems(ctx, userID)
}

// SearchItems trims the query, drops blank tags and applies
// DefaultSearchLimit to a request without a limit. Larger limits are capped
// at validators.MaxSearchLimit; only a negative limit is rejected.
func (v *VaultValidationService) SearchItems(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
	req.Query = strings.TrimSpace(req.Query)
	req.Tags = normalizeTags(req.Tags)
	if req.Limit == 0 {
		req.Limit = DefaultSearchLimit
	}
	req.Limit = min(req.Limit, validators.MaxSearchLimit)

	if err := v.validator.Validate(ctx, req); err != nil {
		return models.VaultItemList{}, v.invalid(ctx, "SearchItems", err)
	}

	return v.inner.SearchItems(ctx, req)
}

func (v *VaultValidationService) UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
	trimPtr(update.Title)
	trimPtr(update.Username)
	trimPtr(update.URL)
	if update.Tags != nil {
		tags := normalizeTags(*update.Tags)
		update.Tags = &tags
	}

	if err := v.validator.Validate(ctx, update); err != nil {
		return models.VaultItem{}, v.invalid(ctx, "UpdateItem", err)
	}

	return v.inner.UpdateItem(ctx, update)
}

func (v *VaultValidationService) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := v.checkIDs(ctx, userID, itemID); err != nil {
		return v.invalid(ctx, "DeleteItem", err)
	}

	return v.inner.DeleteItem(ctx, userID, itemID)
}

func (v *VaultValidationService) checkIDs(ctx context.Context, userID, itemID string) error {
	return v.validator.Validate(ctx, models.VaultItem{ID: itemID, UserID: userID}, validators.FieldID, validators.FieldUserID)
}

func (v *VaultValidationService) invalid(ctx context.Context, op string, err error) error {
	logger.FromContext(ctx).Err(err).Str("func", "*VaultValidationService."+op).Msg("invalid vault request")
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

// normalizeTags trims every tag and drops the blank ones. The result is never
// nil.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
