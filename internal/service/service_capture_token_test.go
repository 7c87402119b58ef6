package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCaptureSessionRepo is an in-memory single-use session store.
type fakeCaptureSessionRepo struct {
	sessions map[string]models.CaptureSession
}

func newFakeCaptureSessionRepo() *fakeCaptureSessionRepo {
	return &fakeCaptureSessionRepo{sessions: make(map[string]models.CaptureSession)}
}

func (r *fakeCaptureSessionRepo) Create(_ context.Context, session models.CaptureSession) error {
	r.sessions[session.SessionID] = session
	return nil
}

func (r *fakeCaptureSessionRepo) Redeem(_ context.Context, sessionID string) (models.CaptureSession, error) {
	session, ok := r.sessions[sessionID]
	if !ok || session.Status != models.CaptureSessionActive || !session.ExpiresAt.After(time.Now()) {
		return models.CaptureSession{}, store.ErrCaptureSessionNotFound
	}
	delete(r.sessions, sessionID)
	return session, nil
}

func TestCaptureTokenService_CreateAndRedeemOnce(t *testing.T) {
	repo := newFakeCaptureSessionRepo()
	svc := NewCaptureTokenService(repo, time.Hour, logger.Nop())
	ctx := context.Background()

	token, err := svc.Create(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, token.SessionID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	session, err := svc.Redeem(ctx, token.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)

	// a token never redeems twice
	_, err = svc.Redeem(ctx, token.SessionID)
	assert.ErrorIs(t, err, ErrCaptureTokenInvalid)
}

func TestCaptureTokenService_RedeemUnknownToken(t *testing.T) {
	svc := NewCaptureTokenService(newFakeCaptureSessionRepo(), time.Hour, logger.Nop())

	_, err := svc.Redeem(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrCaptureTokenInvalid)
}

func TestCaptureTokenService_RedeemExpiredToken(t *testing.T) {
	repo := newFakeCaptureSessionRepo()
	svc := NewCaptureTokenService(repo, -time.Minute, logger.Nop())
	ctx := context.Background()

	token, err := svc.Create(ctx, 7)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, token.SessionID)
	assert.ErrorIs(t, err, ErrCaptureTokenInvalid)
}

func TestCaptureTokenService_TokensAreUnique(t *testing.T) {
	svc := NewCaptureTokenService(newFakeCaptureSessionRepo(), time.Hour, logger.Nop())
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 32; i++ {
		token, err := svc.Create(ctx, 1)
		require.NoError(t, err)
		_, dup := seen[token.SessionID]
		require.False(t, dup, "session ids must be unique")
		seen[token.SessionID] = struct{}{}
	}
}
