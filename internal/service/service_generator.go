package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
)

type generatorService struct {
	generator *generator.Generator

	logger *logger.Logger
}

func NewGeneratorService(logger *logger.Logger) GeneratorService {
	return &generatorService{
		generator: generator.New(),
		logger:    logger,
	}
}

// Generate validates opts and produces a password. Invalid options yield an
// error matching both ErrInvalidDataProvided and generator.ErrInvalidOptions.
func (g *generatorService) Generate(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error) {
	if err := generator.ValidateOptions(opts); err != nil {
		return models.GeneratedPassword{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	generated, err := g.generator.Generate(opts)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*generatorService.Generate").Msg("password generation failed")
		return models.GeneratedPassword{}, err
	}

	return generated, nil
}

func (g *generatorService) ValidateOptions(ctx context.Context, opts models.PasswordOptions) models.OptionsValidation {
	return generator.CheckOptions(opts)
}

func (g *generatorService) Strength(ctx context.Context, req models.StrengthRequest) models.PasswordStrength {
	size := req.CharsetSize
	if size <= 0 {
		size = generator.EstimateCharsetSize(req.Password)
	}

	return generator.CalculateStrength(req.Password, size)
}
