package generator

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/secure-vault/models"
)

// Field names reported in [ValidationError].
const (
	FieldLength  = "length"
	FieldClasses = "classes"
)

// ValidateOptions checks the length bounds and that at least one character
// class is enabled. It returns a *ValidationError for the first violation.
func ValidateOptions(opts models.PasswordOptions) error {
	if opts.Length < MinLength {
		return &ValidationError{
			Field:   FieldLength,
			Message: fmt.Sprintf("Password length must be at least %d characters", MinLength),
		}
	}

	if opts.Length > MaxLength {
		return &ValidationError{
			Field:   FieldLength,
			Message: fmt.Sprintf("Password length cannot exceed %d characters", MaxLength),
		}
	}

	if !opts.IncludeUppercase && !opts.IncludeLowercase && !opts.IncludeNumbers && !opts.IncludeSymbols {
		return &ValidationError{
			Field:   FieldClasses,
			Message: "At least one character type must be selected",
		}
	}

	return nil
}

// CheckOptions reports the outcome of ValidateOptions as a value.
func CheckOptions(opts models.PasswordOptions) models.OptionsValidation {
	err := ValidateOptions(opts)
	if err == nil {
		return models.OptionsValidation{IsValid: true}
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return models.OptionsValidation{IsValid: false, Error: vErr.Message}
	}
	return models.OptionsValidation{IsValid: false, Error: err.Error()}
}
