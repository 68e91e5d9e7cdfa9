// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the vault key of one unlocked user session.
//
// A [Holder] is an explicit object owned by the caller's session scope. There
// is no process-wide key: a client creates one holder per signed-in user and
// passes it to whatever needs to encrypt or decrypt vault fields.
//
// Lifecycle:
//
//	Locked --Unlock/UnlockWrapped ok--> Unlocked --Lock--> Locked
//	Locked --Unlock/UnlockWrapped fail--> Locked
//
// While unlocked the key is kept sealed in a memguard enclave and is only
// exposed for the duration of a single [Holder.WithKey] call.
package session

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

import "github.com/MKhiriev/secure-vault/models"

// KeyHolder is the part of [Holder] used by client services.
type KeyHolder interface {
	// Unlock derives the key from the credentials and keeps it if it passes
	// an encrypt/decrypt self-test. Failure is reported by returning false.
	Unlock(email, password string) bool

	// UnlockWrapped derives the key-encryption key from the credentials,
	// unwraps the vault key with it, and keeps the vault key if it passes the
	// self-test.
	UnlockWrapped(email, password string, wrapped models.EncryptedBlob) bool

	// Lock discards the key. Calling it on a locked holder is a no-op.
	Lock()

	IsUnlocked() bool

	// IsKeyValid runs a self-test with a fresh random probe.
	IsKeyValid() bool

	// TestEncryption runs a self-test with the probe fixed at construction.
	TestEncryption() bool

	EncryptItem(secrets models.VaultItemSecrets) (models.EncryptedVaultItemSecrets, error)
	DecryptItem(encrypted models.EncryptedVaultItemSecrets) (models.VaultItemSecrets, error)
}
