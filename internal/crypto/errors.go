package crypto

import "errors"

var (
	// ErrAuthentication is the single error kind for all AEAD decryption
	// failures. Wrong key and corrupted data are indistinguishable by
	// design.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrEmptySecret is returned by DeriveKey when the server secret is empty.
	ErrEmptySecret = errors.New("empty server secret")

	// ErrEmptySalt is returned by DeriveKey when the device salt is empty.
	ErrEmptySalt = errors.New("empty device salt")

	// ErrInvalidIterations is returned by DeriveKey when the iteration count
	// is zero or negative.
	ErrInvalidIterations = errors.New("iteration count must be positive")

	// ErrKeyDestroyed is returned when a key that has been zeroed (or never
	// initialized) is used for encryption or decryption.
	ErrKeyDestroyed = errors.New("vault key destroyed or not initialized")

	// ErrKeyNotExportable is returned by every serialization entry point of
	// [VaultKey].
	ErrKeyNotExportable = errors.New("vault key is not exportable")
)
