// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via the `env` and `envPrefix` tags
// declared on [StructuredConfig] and its nested sections (session thresholds,
// vault tunables, storage backends, server addresses).
//
// Returns a wrapped error if env.Parse fails, for example when a value cannot
// be converted to the target type (a malformed duration in
// SESSION_LOCK_THRESHOLD, a non-integer in VAULT_KDF_ITERATIONS).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
