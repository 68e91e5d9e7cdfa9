// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/crypto"
)

// validate checks the settings shared by every binary. A zero iteration
// count means "not configured yet" and is filled by the defaults layer.
func (cfg *StructuredConfig) validate() error {
	if cfg.Crypto.Iterations != 0 && !crypto.ParametersSecure(cfg.Crypto.Iterations, crypto.KeySize*8) {
		return fmt.Errorf("%w: %d pbkdf2 iterations is below %d", ErrInvalidCryptoConfigs, cfg.Crypto.Iterations, crypto.MinIterations)
	}

	if cfg.Clipboard.ClearAfter < 0 {
		return fmt.Errorf("%w: negative clear delay", ErrInvalidClipboardConfigs)
	}

	return nil
}

// ValidateServer checks the settings the server cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if !crypto.ParametersSecure(cfg.Crypto.Iterations, crypto.KeySize*8) {
		return ErrInvalidCryptoConfigs
	}

	return nil
}
