// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The session thresholds are ordered invariants, not mere preferences: a
// warning that fires at or after the lock moment is a warning nobody sees.
func (cfg *StructuredConfig) validate() error {
	if cfg.Session.WarningThreshold >= cfg.Session.LockThreshold {
		return ErrInvalidSessionConfigs
	}
	if cfg.Session.DebugWarningThreshold >= cfg.Session.DebugLockThreshold {
		return ErrInvalidSessionConfigs
	}
	if cfg.Session.TickInterval <= 0 || cfg.Session.MaxCaptureDuration <= 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Vault.KDFIterations <= 0 || cfg.Vault.RecordTTL <= 0 {
		return ErrInvalidVaultConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Local.Backend != StorageBackendSQLite && cfg.Storage.Local.Backend != StorageBackendFile {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SweepInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
