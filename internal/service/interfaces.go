package service

import (
	"context"

	"github.com/MKhiriev/go-note-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService validates bearer credentials presented to the custodian.
type AuthService interface {
	// ParseToken verifies the signature and issuer of a raw JWT string and
	// returns the decoded token. Any validation failure is normalised to
	// [ErrTokenIsExpiredOrInvalid].
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CustodianService manages the per-user server-held secret.
type CustodianService interface {
	// GetOrCreateSecret returns the user's secret, provisioning it on first
	// call. The secret is immutable once created and stored double-wrapped;
	// plaintext exists only in the response path.
	GetOrCreateSecret(ctx context.Context, userID int64) (string, error)
}

// CaptureTokenService manages single-use capture session tokens.
type CaptureTokenService interface {
	// Create mints a token for the user with the configured validity window.
	Create(ctx context.Context, userID int64) (models.CaptureToken, error)

	// Redeem consumes the token. Unknown, expired, and already-used tokens
	// all fail with [ErrCaptureTokenInvalid].
	Redeem(ctx context.Context, sessionID string) (models.CaptureSession, error)
}

// TranscriptService turns a submitted capture payload into formatted plain
// text.
type TranscriptService interface {
	Format(ctx context.Context, req models.TranscriptRequest) (string, error)
}
