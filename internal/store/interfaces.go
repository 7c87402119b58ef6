package store

import (
	"context"

	"github.com/MKhiriev/go-note-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KVStore is the durable client-side key-value store underneath the vault.
// Values are opaque byte blobs; keys are namespaced strings such as
// "records:{userID}" and "salt:{userID}".
type KVStore interface {
	// Get returns the value for key. The second return is false when the
	// key does not exist (not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
	// Close releases the backing resources.
	Close() error
}

// RecordRepository persists the per-user ordered collection of encrypted
// records. The collection is replaced wholesale on every mutation: with a
// single underlying Set, a partial write is never observable.
type RecordRepository interface {
	LoadAll(ctx context.Context, userID int64) ([]models.EncryptedRecord, error)
	ReplaceAll(ctx context.Context, userID int64, records []models.EncryptedRecord) error
}

// SaltRepository persists the device-local salt per user. The salt key is
// namespaced by user id: two users on the same device never share a salt.
type SaltRepository interface {
	Get(ctx context.Context, userID int64) (string, bool, error)
	Put(ctx context.Context, userID int64, salt string) error
}

// UserSecretRepository is the custodian-side store of double-wrapped
// per-user secrets.
type UserSecretRepository interface {
	Create(ctx context.Context, secret models.UserSecret) (models.UserSecret, error)
	FindByUserID(ctx context.Context, userID int64) (models.UserSecret, error)
}

// CaptureSessionRepository is the custodian-side store of single-use capture
// session tokens.
type CaptureSessionRepository interface {
	Create(ctx context.Context, session models.CaptureSession) error
	// Redeem atomically consumes an active, unexpired session token and
	// returns it. A token that does not exist, has expired, or was already
	// redeemed yields [ErrCaptureSessionNotFound] — callers must not leak
	// which case it was.
	Redeem(ctx context.Context, sessionID string) (models.CaptureSession, error)
}
