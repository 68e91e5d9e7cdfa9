package validators

import (
	"context"
	"encoding/hex"
	"net/mail"

	"github.com/MKhiriev/secure-vault/models"
)

const (
	FieldEmail           = "email"
	FieldAuthHash        = "auth_hash"
	FieldWrappedVaultKey = "wrapped_vault_key"
	FieldNewAuthHash     = "new_auth_hash"
)

const authHashLength = 64

// UserValidator validates account credentials and password changes.
type UserValidator struct {
}

// NewUserValidator returns a [Validator] for users and password changes.
func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.PasswordChange:
		return v.validatePasswordChange(value)
	case *models.PasswordChange:
		return v.validatePasswordChange(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldAuthHash}
	}

	for _, f := range fields {
		var err error

		switch f {
		case FieldEmail:
			err = CheckEmail(user.Email)
		case FieldAuthHash:
			err = checkAuthHash(user.AuthHash)
		case FieldWrappedVaultKey:
			if user.WrappedVaultKey == "" {
				err = ErrEmptyWrappedVaultKey
			} else {
				err = checkEncryptedPassword(user.WrappedVaultKey)
			}
		default:
			err = ErrUnknownField
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (v *UserValidator) validatePasswordChange(change models.PasswordChange) error {
	if err := checkAuthHash(change.AuthHash); err != nil {
		return err
	}
	if err := checkAuthHash(change.NewAuthHash); err != nil {
		return err
	}
	if change.AuthHash == change.NewAuthHash {
		return ErrSameAuthHash
	}
	if change.NewWrappedVaultKey == "" {
		return ErrEmptyWrappedVaultKey
	}
	return checkEncryptedPassword(change.NewWrappedVaultKey)
}

// CheckEmail accepts a bare address such as "user@example.com". Display
// names and angle brackets are rejected.
func CheckEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}
	return nil
}

func checkAuthHash(h string) error {
	if len(h) != authHashLength {
		return ErrInvalidAuthHash
	}
	if _, err := hex.DecodeString(h); err != nil {
		return ErrInvalidAuthHash
	}
	return nil
}
