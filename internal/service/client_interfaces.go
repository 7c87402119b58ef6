package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SecretService defines the client-side contract for the two inputs of key
// derivation: the server-held secret and the device-local salt.
type SecretService interface {
	// GetOrCreateServerSecret retrieves the caller's server-held secret via
	// the custodian. Idempotent server-side: the first call provisions the
	// secret, every later call returns the same value. Adapter errors
	// (auth failure, transport failure) are surfaced verbatim and never
	// retried here.
	GetOrCreateServerSecret(ctx context.Context, credential string) (string, error)

	// GetOrCreateDeviceSalt reads the device-local salt for the user, or on
	// first use generates and persists one. Never overwritten once created,
	// and never shared between users on the same device.
	GetOrCreateDeviceSalt(ctx context.Context, userID int64) (string, error)
}

// RecordService defines the client-side contract for the per-user encrypted
// record collection. The service never owns a key: every operation that
// touches plaintext is handed one by the caller for the duration of the call.
type RecordService interface {
	// Append serializes fields, encrypts them with key, and appends a new
	// record to the user's collection. Returns the new record id.
	Append(ctx context.Context, userID int64, key *crypto.VaultKey, fields models.NoteFields) (string, error)

	// ListDecrypted returns the user's records decrypted, newest first.
	// A record that fails tag verification is skipped and logged, never
	// propagated: one corrupt record must not block the rest of the list.
	ListDecrypted(ctx context.Context, userID int64, key *crypto.VaultKey) ([]models.DecryptedRecord, error)

	// Update merges patch into the decrypted fields of recordID and writes
	// the re-encrypted result back. Fails with [ErrRecordNotFound] if the id
	// does not exist for the user and [ErrCorruptRecord] if the stored
	// ciphertext cannot be decrypted.
	Update(ctx context.Context, userID int64, key *crypto.VaultKey, recordID string, patch models.NoteFieldsPatch) error

	// Delete removes the record. Idempotent: deleting an unknown id is not
	// an error.
	Delete(ctx context.Context, userID int64, recordID string) error

	// SweepExpired removes every record older than ttl without decrypting
	// anything (expiry reads the plaintext CreatedAt field) and returns the
	// number removed.
	SweepExpired(ctx context.Context, userID int64, ttl time.Duration) (int, error)

	// PurgePlaintext drops any volatile decrypted state held for the user.
	// Called by the session controller on lock; encrypted-at-rest records
	// are retained.
	PurgePlaintext(userID int64)
}

// ActivitySource abstracts the platform's user-interaction signal so the
// idle-lock state machine is testable without a real UI or event loop.
type ActivitySource interface {
	// OnActivity registers a callback invoked on every qualifying user
	// interaction.
	OnActivity(callback func())
}

// SessionController owns the live vault key and the idle-lock state machine.
// It is an explicit instance with an unlock/lock/dispose lifecycle, injected
// into dependents rather than reached for as ambient state.
type SessionController interface {
	// Unlock performs the full unlock sequence: fetch the server secret
	// with the credential, load or create the device salt, derive the vault
	// key, and start the idle ticker. The controller enters Unlocked.
	Unlock(ctx context.Context, credential string, userID int64) error

	// State returns the current session state.
	State() SessionState

	// Touch records a qualifying activity signal: it resets the idle clock
	// and clears an active warning. A no-op once locked.
	Touch()

	// DismissWarning acknowledges the idle warning explicitly. It resets
	// the idle clock even if no underlying activity listener fired.
	DismissWarning()

	// LockNow locks immediately, bypassing the idle check. Unlike the idle
	// transition it is not suppressed by an in-flight capture; the capture
	// finishes from its snapshot (see CaptureService).
	LockNow()

	// Dispose locks if needed and stops the ticker goroutine. Called on
	// process exit.
	Dispose()

	// Key returns the live vault key or [ErrVaultLocked]. Callers borrow
	// the key for a single operation and must not retain it.
	Key() (*crypto.VaultKey, error)

	// UserID returns the authenticated user id of the current session.
	UserID() int64

	// OnStateChange subscribes to state transitions. Subscribers are
	// statically known; there is no broadcast channel to discover at
	// runtime.
	OnStateChange(fn func(StateChange))

	// BindActivitySource wires an activity source's callbacks to Touch.
	BindActivitySource(src ActivitySource)

	// BeginCapture atomically checks for a live key, copies the server
	// secret and user id into a fresh snapshot, sets the
	// recording-in-progress guard, and returns the snapshot together with
	// the currently live credential. Fails with [ErrVaultLocked] if there
	// is no live key. The atomicity is what closes the race between a
	// starting capture and a concurrent tick's lock decision.
	BeginCapture() (*CaptureSnapshot, string, error)

	// EndCapture clears the recording-in-progress guard, allowing a
	// deferred idle lock to proceed on the next tick.
	EndCapture()
}

// CaptureService starts long-running capture operations that survive a
// concurrent lock or sign-out.
type CaptureService interface {
	// Begin snapshots the session secret, engages the lock-suppression
	// guard, and mints a single-use capture token while the credential is
	// still live. Fails with [ErrVaultLocked] when there is no live key.
	Begin(ctx context.Context) (*Capture, error)
}
