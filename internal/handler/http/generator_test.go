package http

import (
	"context"
	"encoding/json"
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
	"github.com/MKhiriev/secure-vault/models"
)

type mockGeneratorService struct {
	generateFn        func(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error)
	validateOptionsFn func(ctx context.Context, opts models.PasswordOptions) models.OptionsValidation
	strengthFn        func(ctx context.Context, req models.StrengthRequest) models.PasswordStrength
}

func (m *mockGeneratorService) Generate(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error) {
	return m.generateFn(ctx, opts)
}

func (m *mockGeneratorService) ValidateOptions(ctx context.Context, opts models.PasswordOptions) models.OptionsValidation {
	return m.validateOptionsFn(ctx, opts)
}

func (m *mockGeneratorService) Strength(ctx context.Context, req models.StrengthRequest) models.PasswordStrength {
	return m.strengthFn(ctx, req)
}

func newHandlerWithGenerator(gen service.GeneratorService) *Handler {
	return NewHandler(&service.Services{GeneratorService: gen}, logger.Nop())
}

func TestGeneratePassword(t *testing.T) {
	opts := models.PasswordOptions{Length: 16, IncludeLowercase: true, IncludeNumbers: true}

	t.Run("generated", func(t *testing.T) {
		gen := &mockGeneratorService{
			generateFn: func(_ context.Context, got models.PasswordOptions) (models.GeneratedPassword, error) {
				assert.Equal(t, opts, got)
				return models.GeneratedPassword{
					Password: "abcd1234efgh5678",
					Entropy:  82.7,
					Strength: models.PasswordStrength{Score: 3, Label: "Strong"},
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/generator", jsonBody(t, opts))
		rec := httptest.NewRecorder()

		newHandlerWithGenerator(gen).generatePassword(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var got models.GeneratedPassword
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "abcd1234efgh5678", got.Password)
		assert.Equal(t, 3, got.Strength.Score)
	})

	t.Run("invalid options", func(t *testing.T) {
		gen := &mockGeneratorService{
			generateFn: func(_ context.Context, _ models.PasswordOptions) (models.GeneratedPassword, error) {
				return models.GeneratedPassword{}, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, generator.ErrInvalidOptions)
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/generator", jsonBody(t, models.PasswordOptions{Length: 2}))
		rec := httptest.NewRecorder()

		newHandlerWithGenerator(gen).generatePassword(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), app.MsgInvalidPasswordOptions)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/generator", strings.NewReader(`{"length":"long"}`))
		rec := httptest.NewRecorder()

		newHandlerWithGenerator(&mockGeneratorService{}).generatePassword(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestValidateOptions(t *testing.T) {
	gen := &mockGeneratorService{
		validateOptionsFn: func(_ context.Context, opts models.PasswordOptions) models.OptionsValidation {
			if opts.Length < 4 {
				return models.OptionsValidation{Error: "length must be at least 4"}
			}
			return models.OptionsValidation{IsValid: true}
		},
	}

	tests := []struct {
		name      string
		opts      models.PasswordOptions
		wantValid bool
	}{
		{name: "valid", opts: models.PasswordOptions{Length: 12, IncludeLowercase: true}, wantValid: true},
		{name: "too short", opts: models.PasswordOptions{Length: 3, IncludeLowercase: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/generator/validate", jsonBody(t, tt.opts))
			rec := httptest.NewRecorder()

			newHandlerWithGenerator(gen).validateOptions(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var got models.OptionsValidation
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantValid, got.IsValid)
			if !tt.wantValid {
				assert.NotEmpty(t, got.Error)
			}
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	gen := &mockGeneratorService{
		strengthFn: func(_ context.Context, req models.StrengthRequest) models.PasswordStrength {
			assert.Equal(t, "hunter2", req.Password)
			return models.PasswordStrength{Score: 0, Label: "Very Weak", Feedback: []string{"use at least 12 characters"}}
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/generator/strength", strings.NewReader(`{"password":"hunter2"}`))
	rec := httptest.NewRecorder()

	newHandlerWithGenerator(gen).passwordStrength(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), `"label":"Very Weak"`)
}
