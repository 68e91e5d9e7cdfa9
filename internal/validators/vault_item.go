package validators

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldID                = "id"
	FieldUserID            = "user_id"
	FieldTitle             = "title"
	FieldUsername          = "username"
	FieldURL               = "url"
	FieldTags              = "tags"
	FieldEncryptedPassword = "encrypted_password"
	FieldEncryptedNotes    = "encrypted_notes"
	FieldQuery             = "q"
	FieldLimit             = "limit"
	FieldOffset            = "offset"
)

// Vault item limits.
const (
	MaxTitleLength    = 100
	MaxUsernameLength = 100
	MaxURLLength      = 500
	MaxNotesLength    = 2000
	MaxTags           = 10
	MaxTagLength      = 30
	MaxSearchLimit    = 100
	MaxQueryLength    = 200
)

// VaultItemValidator validates vault items, partial updates and search
// requests. Pointer and value forms of every model are accepted.
type VaultItemValidator struct {
}

// NewVaultItemValidator returns a [Validator] for vault models.
func NewVaultItemValidator() Validator {
	return &VaultItemValidator{}
}

// Validate checks obj, restricted to fields when any are given. Unknown
// types yield ErrUnsupportedType.
func (v *VaultItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultItem:
		return v.validateItem(value, fields...)
	case *models.VaultItem:
		return v.validateItem(*value, fields...)

	case models.VaultItemUpdate:
		return v.validateUpdate(value, fields...)
	case *models.VaultItemUpdate:
		return v.validateUpdate(*value, fields...)

	case models.VaultSearchRequest:
		return v.validateSearch(value, fields...)
	case *models.VaultSearchRequest:
		return v.validateSearch(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultItemValidator) validateItem(item models.VaultItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldTitle, FieldUsername, FieldURL, FieldTags, FieldEncryptedPassword, FieldEncryptedNotes}
	}

	for _, f := range fields {
		var err error

		switch f {
		case FieldID:
			err = checkItemID(item.ID)
		case FieldUserID:
			err = checkUserID(item.UserID)
		case FieldTitle:
			err = checkTitle(item.Title)
		case FieldUsername:
			err = checkUsername(item.Username)
		case FieldURL:
			err = checkURL(item.URL)
		case FieldTags:
			err = checkTags(item.Tags)
		case FieldEncryptedPassword:
			err = checkEncryptedPassword(item.EncryptedPassword)
		case FieldEncryptedNotes:
			err = checkEncryptedNotes(item.EncryptedNotes)
		default:
			err = ErrUnknownField
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (v *VaultItemValidator) validateUpdate(update models.VaultItemUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldUserID, FieldTitle, FieldUsername, FieldURL, FieldTags, FieldEncryptedPassword, FieldEncryptedNotes}
	}

	for _, f := range fields {
		var err error

		switch f {
		case FieldID:
			err = checkItemID(update.ID)
		case FieldUserID:
			err = checkUserID(update.UserID)
		case FieldTitle:
			if update.Title != nil {
				err = checkTitle(*update.Title)
			}
		case FieldUsername:
			if update.Username != nil {
				err = checkUsername(*update.Username)
			}
		case FieldURL:
			if update.URL != nil {
				err = checkURL(*update.URL)
			}
		case FieldTags:
			if update.Tags != nil {
				err = checkTags(*update.Tags)
			}
		case FieldEncryptedPassword:
			if update.EncryptedPassword != nil {
				err = checkEncryptedPassword(*update.EncryptedPassword)
			}
		case FieldEncryptedNotes:
			err = checkEncryptedNotes(update.EncryptedNotes)
		default:
			err = ErrUnknownField
		}

		if err != nil {
			return err
		}
	}

	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	return nil
}

func (v *VaultItemValidator) validateSearch(req models.VaultSearchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldQuery, FieldTags, FieldLimit, FieldOffset}
	}

	for _, f := range fields {
		var err error

		switch f {
		case FieldUserID:
			err = checkUserID(req.UserID)
		case FieldQuery:
			if utf8.RuneCountInString(req.Query) > MaxQueryLength {
				err = ErrInvalidQuery
			}
		case FieldTags:
			err = checkTags(req.Tags)
		case FieldLimit:
			if req.Limit < 1 || req.Limit > MaxSearchLimit {
				err = ErrInvalidLimit
			}
		case FieldOffset:
			if req.Offset < 0 {
				err = ErrInvalidOffset
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

func checkUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidUserID
	}
	return nil
}

func checkItemID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidItemID
	}
	return nil
}

func checkTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 1 || n > MaxTitleLength || strings.TrimSpace(title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

func checkUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 1 || n > MaxUsernameLength || strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}
	return nil
}

// checkURL accepts the empty string or an absolute http(s) URL.
func checkURL(raw string) error {
	if raw == "" {
		return nil
	}
	if utf8.RuneCountInString(raw) > MaxURLLength {
		return ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}

func checkTags(tags []string) error {
	if len(tags) > MaxTags {
		return ErrTooManyTags
	}
	for _, tag := range tags {
		if n := utf8.RuneCountInString(tag); n < 1 || n > MaxTagLength || strings.TrimSpace(tag) == "" {
			return ErrInvalidTag
		}
	}
	return nil
}

func checkEncryptedPassword(blob models.EncryptedBlob) error {
	if !crypto.IsValidEncryptedData(blob) {
		return ErrInvalidEncryptedData
	}
	return nil
}

// checkEncryptedNotes accepts absent notes and the empty blob.
func checkEncryptedNotes(blob *models.EncryptedBlob) error {
	if blob == nil || *blob == "" {
		return nil
	}
	if len(*blob) > MaxNotesLength {
		return ErrNotesTooLong
	}
	if !crypto.IsValidEncryptedData(*blob) {
		return ErrInvalidEncryptedData
	}
	return nil
}
