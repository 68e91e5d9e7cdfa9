package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/mock"
	"github.com/MKhiriev/secure-vault/internal/session"
	"github.com/MKhiriev/secure-vault/internal/store"
	"github.com/MKhiriev/secure-vault/models"
)

func newTestVaultSvc(t *testing.T) (ClientVaultService, *mock.MockServerAdapter, *mock.MockKeyHolder) {
	t.Helper()
	ctrl := gomock.NewController(t)

	a := mock.NewMockServerAdapter(ctrl)
	h := mock.NewMockKeyHolder(ctrl)

	return NewClientVaultService(a, h, logger.Nop()), a, h
}

func ptr[T any](v T) *T {
	return &v
}

func TestClientVaultService_Create_Success(t *testing.T) {
	svc, a, h := newTestVaultSvc(t)
	ctx := context.Background()

	encNotes := models.EncryptedBlob("v2:notes")
	input := models.VaultItemInput{
		Title:    "mail",
		Username: "alice",
		Password: "hunter22",
		URL:      "https://mail.example.com",
		Notes:    ptr("recovery codes"),
		Tags:     []string{"work"},
	}

	h.EXPECT().IsUnlocked().Return(true)
	h.EXPECT().EncryptItem(models.VaultItemSecrets{Password: input.Password, Notes: input.Notes}).
		Return(models.EncryptedVaultItemSecrets{EncryptedPassword: "v2:pw", EncryptedNotes: &encNotes}, nil)
	a.EXPECT().CreateItem(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
			assert.Equal(t, "mail", item.Title)
			assert.Equal(t, models.EncryptedBlob("v2:pw"), item.EncryptedPassword)
			assert.Equal(t, &encNotes, item.EncryptedNotes)
			item.ID = "item-1"
			return item, nil
		},
	)
	h.EXPECT().DecryptItem(models.EncryptedVaultItemSecrets{EncryptedPassword: "v2:pw"}).
		Return(models.VaultItemSecrets{Password: input.Password}, nil)
	h.EXPECT().DecryptItem(models.EncryptedVaultItemSecrets{EncryptedNotes: &encNotes}).
		Return(models.VaultItemSecrets{Notes: input.Notes}, nil)

	got, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "item-1", got.ID)
	assert.Equal(t, "hunter22", got.Password)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "recovery codes", *got.Notes)
	assert.False(t, got.DecryptFailed)
}

func TestClientVaultService_Create_Locked(t *testing.T) {
	svc, _, h := newTestVaultSvc(t)

	h.EXPECT().IsUnlocked().Return(false)

	_, err := svc.Create(context.Background(), models.VaultItemInput{Title: "t", Password: "p"})
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestClientVaultService_Create_EmptyPassword(t *testing.T) {
	svc, _, h := newTestVaultSvc(t)

	h.EXPECT().IsUnlocked().Return(true)

	_, err := svc.Create(context.Background(), models.VaultItemInput{Title: "t"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientVaultService_Create_LockedDuringEncrypt(t *testing.T) {
	svc, _, h := newTestVaultSvc(t)

	h.EXPECT().IsUnlocked().Return(true)
	h.EXPECT().EncryptItem(gomock.Any()).Return(models.EncryptedVaultItemSecrets{}, session.ErrLocked)

	_, err := svc.Create(context.Background(), models.VaultItemInput{Title: "t", Password: "p"})
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestClientVaultService_Get_NotFound(t *testing.T) {
	svc, a, h := newTestVaultSvc(t)
	ctx := context.Background()

	h.EXPECT().IsUnlocked().Return(true)
	a.EXPECT().GetItem(ctx, "item-1").Return(models.VaultItem{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgVaultItemNotFound))

	_, err := svc.Get(ctx, "item-1")
	assert.ErrorIs(t, err, store.ErrVaultItemNotFound)
}

func TestClientVaultService_List_DegradesUnreadableFields(t *testing.T) {
	svc, a, h := newTestVaultSvc(t)
	ctx := context.Background()

	badNotes := models.EncryptedBlob("v2:corrupted")
	items := []models.VaultItem{
		{ID: "ok", EncryptedPassword: "v2:good"},
		{ID: "bad", EncryptedPassword: "v2:bad", EncryptedNotes: &badNotes},
	}

	h.EXPECT().IsUnlocked().Return(true)
	a.EXPECT().ListItems(ctx).Return(items, nil)
	h.EXPECT().DecryptItem(models.EncryptedVaultItemSecrets{EncryptedPassword: "v2:good"}).
		Return(models.VaultItemSecrets{Password: "secret"}, nil)
	h.EXPECT().DecryptItem(models.EncryptedVaultItemSecrets{EncryptedPassword: "v2:bad"}).
		Return(models.VaultItemSecrets{}, crypto.ErrDecryption)
	h.EXPECT().DecryptItem(models.EncryptedVaultItemSecrets{EncryptedNotes: &badNotes}).
		Return(models.VaultItemSecrets{}, crypto.ErrDecryption)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "secret", got[0].Password)
	assert.False(t, got[0].DecryptFailed)

	assert.True(t, got[1].DecryptFailed)
	assert.Equal(t, DecryptFailedPlaceholder, got[1].Password)
	require.NotNil(t, got[1].Notes)
	assert.Equal(t, DecryptFailedPlaceholder, *got[1].Notes)
}

func TestClientVaultService_Search(t *testing.T) {
	svc, a, h := newTestVaultSvc(t)
	ctx := context.Background()
	req := models.VaultSearchRequest{Query: "mail", Limit: 10}

	h.EXPECT().IsUnlocked().Return(true)
	a.EXPECT().SearchItems(ctx, req).Return(models.VaultItemList{
		Count: 1, Total: 4, Limit: 10,
		Items: []models.VaultItem{{ID: "item-1", EncryptedPassword: "v2:pw"}},
	}, nil)
	h.EXPECT().DecryptItem(gomock.Any()).Return(models.VaultItemSecrets{Password: "pw"}, nil)

	got, err := svc.Search(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 10, got.Limit)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "pw", got.Items[0].Password)
}

func TestClientVaultService_Update_OnlyChangedSecretsAreEncrypted(t *testing.T) {
	svc, a, h := newTestVaultSvc(t)
	ctx := context.Background()

	h.EXPECT().IsUnlocked().Return(true)
	h.EXPECT().EncryptItem(models.VaultItemSecrets{Notes: ptr("")}).Return(models.EncryptedVaultItemSecrets{}, nil)
	a.EXPECT().UpdateItem(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.VaultItemUpdate) (models.VaultItem, error) {
			assert.Equal(t, "item-1", u.ID)
			assert.Equal(t, "renamed", *u.Title)
			assert.Nil(t, u.EncryptedPassword)
			require.NotNil(t, u.EncryptedNotes)
			assert.Empty(t, *u.EncryptedNotes)
			return models.VaultItem{ID: u.ID, Title: *u.Title, EncryptedPassword: "v2:pw"}, nil
		},
	)
	h.EXPECT().DecryptItem(gomock.Any()).Return(models.VaultItemSecrets{Password: "pw"}, nil)

	got, err := svc.Update(ctx, "item-1", models.VaultItemPatch{Title: ptr("renamed"), Notes: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Nil(t, got.Notes)
}

func TestClientVaultService_Update_NewPassword(t *testing.T) {
	svc, a, h := newTestVaultSvc(t)
	ctx := context.Background()

	h.EXPECT().IsUnlocked().Return(true)
	h.EXPECT().EncryptItem(models.VaultItemSecrets{Password: "new-pw"}).
		Return(models.EncryptedVaultItemSecrets{EncryptedPassword: "v2:new"}, nil)
	a.EXPECT().UpdateItem(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.VaultItemUpdate) (models.VaultItem, error) {
			require.NotNil(t, u.EncryptedPassword)
			assert.Equal(t, models.EncryptedBlob("v2:new"), *u.EncryptedPassword)
			assert.Nil(t, u.EncryptedNotes)
			return models.VaultItem{ID: u.ID, EncryptedPassword: *u.EncryptedPassword}, nil
		},
	)
	h.EXPECT().DecryptItem(gomock.Any()).Return(models.VaultItemSecrets{Password: "new-pw"}, nil)

	got, err := svc.Update(ctx, "item-1", models.VaultItemPatch{Password: ptr("new-pw")})
	require.NoError(t, err)
	assert.Equal(t, "new-pw", got.Password)
}

func TestClientVaultService_Update_EmptyPatch(t *testing.T) {
	svc, _, h := newTestVaultSvc(t)

	h.EXPECT().IsUnlocked().Return(true)

	_, err := svc.Update(context.Background(), "item-1", models.VaultItemPatch{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientVaultService_Delete(t *testing.T) {
	svc, a, _ := newTestVaultSvc(t)
	ctx := context.Background()

	a.EXPECT().DeleteItem(ctx, "item-1").Return(nil)
	require.NoError(t, svc.Delete(ctx, "item-1"))

	a.EXPECT().DeleteItem(ctx, "item-2").Return(fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgVaultItemNotFound))
	assert.ErrorIs(t, svc.Delete(ctx, "item-2"), store.ErrVaultItemNotFound)
}
