package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/internal/utils"
	"github.com/MKhiriev/go-note-vault/models"
)

// captureTokenService implements [CaptureTokenService] over the capture
// session repository.
type captureTokenService struct {
	sessions store.CaptureSessionRepository
	ids      *utils.UUIDGenerator

	// ttl is the server-side validity window of an issued token.
	ttl time.Duration

	logger *logger.Logger
}

// NewCaptureTokenService constructs a [CaptureTokenService] issuing tokens
// valid for ttl.
func NewCaptureTokenService(sessions store.CaptureSessionRepository, ttl time.Duration, logger *logger.Logger) CaptureTokenService {
	return &captureTokenService{
		sessions: sessions,
		ids:      utils.NewUUIDGenerator(),
		ttl:      ttl,
		logger:   logger,
	}
}

// Create implements [CaptureTokenService].
func (s *captureTokenService) Create(ctx context.Context, userID int64) (models.CaptureToken, error) {
	log := logger.FromContext(ctx)

	now := time.Now()
	session := models.CaptureSession{
		SessionID: s.ids.Generate(),
		UserID:    userID,
		Status:    models.CaptureSessionActive,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return models.CaptureToken{}, fmt.Errorf("create capture session: %w", err)
	}

	log.Info().Int64("user_id", userID).Str("session_id", session.SessionID).Msg("capture session issued")
	return models.CaptureToken{SessionID: session.SessionID, ExpiresAt: session.ExpiresAt}, nil
}

// Redeem implements [CaptureTokenService]. The repository consumes the token
// atomically, so a second redemption of the same id can never succeed.
func (s *captureTokenService) Redeem(ctx context.Context, sessionID string) (models.CaptureSession, error) {
	session, err := s.sessions.Redeem(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrCaptureSessionNotFound) {
			return models.CaptureSession{}, ErrCaptureTokenInvalid
		}
		return models.CaptureSession{}, fmt.Errorf("redeem capture session: %w", err)
	}

	return session, nil
}
