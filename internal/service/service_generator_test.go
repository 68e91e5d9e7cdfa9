package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
)

func TestGeneratorService_Generate(t *testing.T) {
	svc := NewGeneratorService(logger.Nop())

	got, err := svc.Generate(context.Background(), models.PasswordOptions{
		Length:           24,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
	})

	require.NoError(t, err)
	assert.Len(t, got.Password, 24)
	assert.Positive(t, got.Entropy)
}

func TestGeneratorService_Generate_InvalidOptions(t *testing.T) {
	svc := NewGeneratorService(logger.Nop())

	_, err := svc.Generate(context.Background(), models.PasswordOptions{Length: 16})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, generator.ErrInvalidOptions)
}

func TestGeneratorService_ValidateOptions(t *testing.T) {
	svc := NewGeneratorService(logger.Nop())

	ok := svc.ValidateOptions(context.Background(), generator.DefaultOptions())
	assert.True(t, ok.IsValid)

	bad := svc.ValidateOptions(context.Background(), models.PasswordOptions{Length: 2, IncludeLowercase: true})
	assert.False(t, bad.IsValid)
	assert.NotEmpty(t, bad.Error)
}

func TestGeneratorService_Strength_EstimatesCharset(t *testing.T) {
	svc := NewGeneratorService(logger.Nop())
	password := "Tr0ub4dor&3-staple"

	estimated := svc.Strength(context.Background(), models.StrengthRequest{Password: password})
	explicit := svc.Strength(context.Background(), models.StrengthRequest{
		Password:    password,
		CharsetSize: generator.EstimateCharsetSize(password),
	})

	assert.Equal(t, explicit, estimated)
}
