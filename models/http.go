package models

import "time"

// SecretResponse is the body of POST /api/vault/secret.
type SecretResponse struct {
	ServerSecret string `json:"server_secret"`
}

// CaptureSessionResponse is the body of POST /api/capture/sessions.
type CaptureSessionResponse struct {
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TranscriptRequest is the body of
// POST /api/capture/sessions/{sessionID}/transcript.
//
// Audio carries the raw captured bytes (base64 over the wire via the default
// []byte JSON encoding); Text carries device-side recognizer output when one
// ran. At least one of the two must be non-empty.
type TranscriptRequest struct {
	Audio []byte `json:"audio,omitempty"`
	Text  string `json:"text,omitempty"`
}

// TranscriptResponse is the formatted plain-text result of a transcript
// submission.
type TranscriptResponse struct {
	Text string `json:"text"`
}
