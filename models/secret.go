package models

import "time"

// ServerSecretLength is the fixed length of the server-held secret issued
// once per user. The secret is immutable after creation and never rotated.
const ServerSecretLength = 64

// UserSecret is the custodian-side record of a user's server-held secret.
// The secret is stored double-wrapped: AES-GCM under a key derived from the
// server-only wrap key and the per-user WrapSalt. Neither the wrap key nor
// the plaintext secret is ever visible to the client storage layer.
type UserSecret struct {
	UserID    int64
	WrapSalt  string
	Nonce     []byte
	Wrapped   []byte
	CreatedAt time.Time
}
