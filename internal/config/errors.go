package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or violate an invariant.
var (
	// ErrInvalidSessionConfigs indicates invalid idle-lock settings (for
	// example, a warning threshold at or past the lock threshold).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidVaultConfigs indicates invalid vault settings (for example,
	// a non-positive KDF iteration count or record TTL).
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, an unknown backend).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sweep interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
