package models

import "time"

// CaptureToken is the client-side view of a server-issued capture-session
// token. The token is single-use: the custodian deletes it on the first
// successful transcript submission. It authorizes exactly one transcript
// upload for the issuing user, independent of the bearer credential — which
// is what lets a capture finish after the session has locked and signed out.
type CaptureToken struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Capture session statuses as stored by the custodian.
const (
	CaptureSessionActive = "active"
)

// CaptureSession is the custodian-side state of an issued capture token.
type CaptureSession struct {
	SessionID string
	UserID    int64
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
