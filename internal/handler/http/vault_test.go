package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/internal/store"
	"github.com/MKhiriev/secure-vault/models"
)

type mockVaultService struct {
	createItemFn  func(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	getItemFn     func(ctx context.Context, userID, itemID string) (models.VaultItem, error)
	listItemsFn   func(ctx context.Context, userID string) ([]models.VaultItem, error)
	searchItemsFn func(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error)
	updateItemFn  func(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error)
	deleteItemFn  func(ctx context.Context, userID, itemID string) error
}

func (m *mockVaultService) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	return m.createItemFn(ctx, item)
}

func (m *mockVaultService) GetItem(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	return m.getItemFn(ctx, userID, itemID)
}

func (m *mockVaultService) ListItems(ctx context.Context, userID string) ([]models.VaultItem, error) {
	return m.listItemsFn(ctx, userID)
}

func (m *mockVaultService) SearchItems(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
	return m.searchItemsFn(ctx, req)
}

func (m *mockVaultService) UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
	return m.updateItemFn(ctx, update)
}

func (m *mockVaultService) DeleteItem(ctx context.Context, userID, itemID string) error {
	return m.deleteItemFn(ctx, userID, itemID)
}

const testItemID = "0190d2a4-7c1e-7a3b-9f10-000000000001"

func newHandlerWithVault(vault service.VaultService) *Handler {
	return NewHandler(&service.Services{VaultService: vault}, logger.Nop())
}

// withItemID routes the request through a chi context carrying the id param.
func withItemID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleItem() models.VaultItem {
	notes := models.EncryptedBlob("v2.notes")
	return models.VaultItem{
		ID:                testItemID,
		UserID:            testUserID,
		Title:             "GitHub",
		Username:          "alice",
		URL:               "https://github.com",
		Tags:              []string{"dev"},
		EncryptedPassword: "v2.password",
		EncryptedNotes:    &notes,
		CreatedAt:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCreateItem(t *testing.T) {
	t.Run("created with user from context", func(t *testing.T) {
		vault := &mockVaultService{
			createItemFn: func(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
				assert.Equal(t, testUserID, item.UserID)
				assert.Equal(t, models.EncryptedBlob("v2.password"), item.EncryptedPassword)
				item.ID = testItemID
				return item, nil
			},
		}

		item := sampleItem()
		item.ID = ""
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/vault", jsonBody(t, item)))
		rec := httptest.NewRecorder()

		newHandlerWithVault(vault).createItem(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got models.VaultItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, testItemID, got.ID)
		assert.Empty(t, got.UserID, "user id must not be serialised")
	})

	t.Run("client cannot choose the owner", func(t *testing.T) {
		vault := &mockVaultService{
			createItemFn: func(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
				assert.Equal(t, testUserID, item.UserID)
				return item, nil
			},
		}

		body := `{"title":"x","encrypted_password":"v2.p","user_id":"someone-else"}`
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/vault", strings.NewReader(body)))
		rec := httptest.NewRecorder()

		newHandlerWithVault(vault).createItem(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("invalid item", func(t *testing.T) {
		vault := &mockVaultService{
			createItemFn: func(_ context.Context, _ models.VaultItem) (models.VaultItem, error) {
				return models.VaultItem{}, service.ErrInvalidDataProvided
			},
		}

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/vault", jsonBody(t, models.VaultItem{})))
		rec := httptest.NewRecorder()

		newHandlerWithVault(vault).createItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		big := `{"title":"` + strings.Repeat("a", maxBodySize) + `"}`
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/vault", strings.NewReader(big)))
		rec := httptest.NewRecorder()

		newHandlerWithVault(&mockVaultService{}).createItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetItem(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "found", wantStatus: http.StatusOK, wantBody: `"title":"GitHub"`},
		{name: "not found", err: store.ErrVaultItemNotFound, wantStatus: http.StatusNotFound, wantBody: app.MsgVaultItemNotFound},
		{name: "blank id", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest, wantBody: app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := &mockVaultService{
				getItemFn: func(_ context.Context, userID, itemID string) (models.VaultItem, error) {
					assert.Equal(t, testUserID, userID)
					assert.Equal(t, testItemID, itemID)
					if tt.err != nil {
						return models.VaultItem{}, tt.err
					}
					return sampleItem(), nil
				},
			}

			req := withUser(httptest.NewRequest(http.MethodGet, "/api/vault/"+testItemID, nil))
			req = withItemID(req, testItemID)
			rec := httptest.NewRecorder()

			newHandlerWithVault(vault).getItem(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestListItems(t *testing.T) {
	vault := &mockVaultService{
		listItemsFn: func(_ context.Context, userID string) ([]models.VaultItem, error) {
			assert.Equal(t, testUserID, userID)
			return []models.VaultItem{sampleItem(), sampleItem()}, nil
		},
	}

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/vault", nil))
	rec := httptest.NewRecorder()

	newHandlerWithVault(vault).listItems(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var got []models.VaultItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestSearchItems(t *testing.T) {
	t.Run("query parameters are forwarded", func(t *testing.T) {
		vault := &mockVaultService{
			searchItemsFn: func(_ context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
				assert.Equal(t, models.VaultSearchRequest{
					UserID: testUserID,
					Query:  "git",
					Tags:   []string{"dev", "work"},
					Limit:  10,
					Offset: 20,
				}, req)
				return models.VaultItemList{Count: 1, Total: 21, Offset: 20, Limit: 10, Items: []models.VaultItem{sampleItem()}}, nil
			},
		}

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/vault/search?q=git&tag=dev&tag=work&limit=10&offset=20", nil))
		rec := httptest.NewRecorder()

		newHandlerWithVault(vault).searchItems(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got models.VaultItemList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 21, got.Total)
		assert.Len(t, got.Items, 1)
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/vault/search?limit=ten", nil))
		rec := httptest.NewRecorder()

		newHandlerWithVault(&mockVaultService{}).searchItems(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric offset", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/vault/search?offset=-x", nil))
		rec := httptest.NewRecorder()

		newHandlerWithVault(&mockVaultService{}).searchItems(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		vault := &mockVaultService{
			updateItemFn: func(_ context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
				assert.Equal(t, testItemID, update.ID)
				assert.Equal(t, testUserID, update.UserID)
				require.NotNil(t, update.Title)
				assert.Equal(t, "GitLab", *update.Title)
				assert.Nil(t, update.EncryptedPassword)
				item := sampleItem()
				item.Title = *update.Title
				return item, nil
			},
		}

		req := withUser(httptest.NewRequest(http.MethodPatch, "/api/vault/"+testItemID, strings.NewReader(`{"title":"GitLab"}`)))
		req = withItemID(req, testItemID)
		rec := httptest.NewRecorder()

		newHandlerWithVault(vault).updateItem(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"GitLab"`)
	})

	t.Run("nothing to update", func(t *testing.T) {
		vault := &mockVaultService{
			updateItemFn: func(_ context.Context, _ models.VaultItemUpdate) (models.VaultItem, error) {
				return models.VaultItem{}, store.ErrNothingToUpdate
			},
		}

		req := withUser(httptest.NewRequest(http.MethodPatch, "/api/vault/"+testItemID, strings.NewReader(`{}`)))
		req = withItemID(req, testItemID)
		rec := httptest.NewRecorder()

		newHandlerWithVault(vault).updateItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), app.MsgNothingToUpdate)
	})
}

func TestDeleteItem(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "missing", err: store.ErrVaultItemNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := &mockVaultService{
				deleteItemFn: func(_ context.Context, userID, itemID string) error {
					assert.Equal(t, testUserID, userID)
					assert.Equal(t, testItemID, itemID)
					return tt.err
				},
			}

			req := withUser(httptest.NewRequest(http.MethodDelete, "/api/vault/"+testItemID, nil))
			req = withItemID(req, testItemID)
			rec := httptest.NewRecorder()

			newHandlerWithVault(vault).deleteItem(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestVaultRoutes_ViaRouter(t *testing.T) {
	var gotID string
	h := NewHandler(&service.Services{
		AuthService: &mockAuthService{
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{UserID: testUserID}, nil
			},
		},
		VaultService: &mockVaultService{
			getItemFn: func(_ context.Context, _, itemID string) (models.VaultItem, error) {
				gotID = itemID
				return sampleItem(), nil
			},
			searchItemsFn: func(_ context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
				return models.VaultItemList{Limit: req.Limit}, nil
			},
		},
	}, logger.Nop())
	router := h.Init()

	t.Run("search is not shadowed by {id}", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/vault/search?q=x", nil)
		req.Header.Set("Authorization", "Bearer t")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, gotID)
	})

	t.Run("get by id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/vault/"+testItemID, nil)
		req.Header.Set("Authorization", "Bearer t")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testItemID, gotID)
	})
}
