// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the `env` and `envPrefix` tags of
// [StructuredConfig]. Every malformed variable is reported, not only the
// first one.
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err == nil {
		return nil
	}

	var aggErr env.AggregateError
	if errors.As(err, &aggErr) {
		return fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, errors.Join(aggErr.Errors...))
	}
	return fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, err)
}
