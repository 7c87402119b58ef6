package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
)

// captureSessionRepository is the PostgreSQL-backed implementation of
// [CaptureSessionRepository].
type captureSessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCaptureSessionRepository constructs a [CaptureSessionRepository] backed
// by the provided database connection and logger.
func NewCaptureSessionRepository(db *DB, logger *logger.Logger) CaptureSessionRepository {
	logger.Debug().Msg("creating capture session repository")
	return &captureSessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a newly minted capture session token.
func (r *captureSessionRepository) Create(ctx context.Context, session models.CaptureSession) error {
	log := logger.FromContext(ctx)

	query, args, err := toSQL(buildCreateCaptureSession().
		Values(session.SessionID, session.UserID, session.Status, session.CreatedAt, session.ExpiresAt))
	if err != nil {
		log.Err(err).Str("func", "*captureSessionRepository.Create").Msg("error: building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*captureSessionRepository.Create").Msg("error: inserting capture session")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// Redeem consumes a token in one round trip. The DELETE ... RETURNING only
// matches an active row whose expires_at is still in the future, so expired
// and already-used tokens are indistinguishable from unknown ones.
func (r *captureSessionRepository) Redeem(ctx context.Context, sessionID string) (models.CaptureSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := toSQL(buildRedeemCaptureSession(sessionID))
	if err != nil {
		log.Err(err).Str("func", "*captureSessionRepository.Redeem").Msg("error: building query")
		return models.CaptureSession{}, err
	}

	var session models.CaptureSession
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&session.SessionID, &session.UserID, &session.Status, &session.CreatedAt, &session.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CaptureSession{}, ErrCaptureSessionNotFound
		}

		log.Err(err).Str("func", "*captureSessionRepository.Redeem").Msg("error: scanning error")
		return models.CaptureSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}
