package service

import "errors"

var (
	// ErrVaultLocked means an operation needed the live vault key and there
	// was none. The caller must redirect to a fresh unlock; there is no
	// resume path.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrRecordNotFound means the referenced record id does not exist for
	// the user.
	ErrRecordNotFound = errors.New("record not found")

	// ErrCorruptRecord is the single-record surface of a failed AEAD tag
	// verification: the stored ciphertext cannot be decrypted with the
	// caller's key. Listings skip such records instead.
	ErrCorruptRecord = errors.New("record is corrupt")

	// ErrCaptureExpired means the capture exceeded its maximum duration and
	// was finalized automatically. Data gathered before the cutoff is
	// submitted, not discarded.
	ErrCaptureExpired = errors.New("capture exceeded maximum duration")

	// ErrCaptureEnded means the capture was already completed, cancelled,
	// or expired.
	ErrCaptureEnded = errors.New("capture already ended")

	// ErrSnapshotInvalidated means the capture snapshot's secret was
	// already wiped.
	ErrSnapshotInvalidated = errors.New("capture snapshot invalidated")
)

// Custodian-side sentinels.
var (
	// ErrTokenIsExpiredOrInvalid normalises every bearer-credential
	// validation failure (expired, wrong issuer, malformed) so handlers do
	// not inspect low-level JWT errors.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrCaptureTokenInvalid covers every failed capture-token redemption:
	// unknown, expired, or already used. The split is never leaked.
	ErrCaptureTokenInvalid = errors.New("capture token invalid")

	// ErrEmptyTranscriptPayload means the submission carried neither audio
	// nor text.
	ErrEmptyTranscriptPayload = errors.New("no transcript payload provided")

	// ErrUnsupportedAudio means the submitted audio bytes are not in a
	// format the transcription backend accepts.
	ErrUnsupportedAudio = errors.New("unsupported audio payload")
)
