package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/internal/store"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}

// ─────────────────────────────────────────────
// decodeJSON
// ─────────────────────────────────────────────

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{name: "valid", body: `{"name":"x"}`, wantOK: true},
		{name: "malformed", body: `{"name":`},
		{name: "empty", body: ``},
		{name: "wrong type", body: `{"name":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var p payload
			ok := decodeJSON(rec, req, &p, "test")

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), app.MsgInvalidDataProvided)
			}
		})
	}
}

// ─────────────────────────────────────────────
// statusFromError
// ─────────────────────────────────────────────

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{
			"generator options win over invalid data",
			fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, generator.ErrInvalidOptions),
			http.StatusBadRequest, app.MsgInvalidPasswordOptions,
		},
		{"nothing to update", store.ErrNothingToUpdate, http.StatusBadRequest, app.MsgNothingToUpdate},
		{"wrong credentials", service.ErrWrongCredentials, http.StatusUnauthorized, app.MsgInvalidEmailPassword},
		{"token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
		{"email exists", store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},
		{"item exists", store.ErrVaultItemExists, http.StatusConflict, app.MsgVaultItemExists},
		{"user not found", store.ErrNoUserWasFound, http.StatusNotFound, app.MsgUserNotFound},
		{"item not found", fmt.Errorf("get: %w", store.ErrVaultItemNotFound), http.StatusNotFound, app.MsgVaultItemNotFound},
		{"query failure", fmt.Errorf("%w: timeout", store.ErrExecutingQuery), http.StatusInternalServerError, app.MsgInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWriteError_DoesNotLeakInternalDetails(t *testing.T) {
	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()

	writeError(rec, req, fmt.Errorf("%w: pq: relation \"users\" does not exist", store.ErrExecutingQuery), "test")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, app.MsgInternalServerError, strings.TrimSpace(rec.Body.String()))
}
