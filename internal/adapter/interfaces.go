// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the secure-vault server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401). The
// response body, a short message, is kept in the error text.
package adapter

import (
	"context"

	"github.com/MKhiriev/secure-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the secure-vault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
//
// Only ciphertext ever crosses this boundary: vault items carry encrypted
// blobs and users carry the auth hash and the wrapped vault key.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates the account and stores the returned bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with the auth hash and stores the returned bearer
	// token. The returned user carries the wrapped vault key.
	Login(ctx context.Context, user models.User) (models.User, error)

	// Logout ends the server session and forgets the token.
	Logout(ctx context.Context) error

	Me(ctx context.Context) (models.User, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) error

	CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	GetItem(ctx context.Context, itemID string) (models.VaultItem, error)
	ListItems(ctx context.Context) ([]models.VaultItem, error)
	SearchItems(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error)
	UpdateItem(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error)
	DeleteItem(ctx context.Context, itemID string) error

	GeneratePassword(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error)
	CheckStrength(ctx context.Context, req models.StrengthRequest) (models.PasswordStrength, error)

	// GetVersion returns the server version string.
	GetVersion(ctx context.Context) (string, error)
}
