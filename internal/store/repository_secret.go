package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
	"github.com/jackc/pgerrcode"
)

// userSecretRepository is the PostgreSQL-backed implementation of
// [UserSecretRepository]. Rows in "user_secrets" hold the per-user server
// secret double-wrapped with the custodian's at-rest key; the repository
// never sees plaintext secrets.
type userSecretRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserSecretRepository constructs a [UserSecretRepository] backed by the
// provided database connection and logger.
func NewUserSecretRepository(db *DB, logger *logger.Logger) UserSecretRepository {
	logger.Debug().Msg("creating user secret repository")
	return &userSecretRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a freshly wrapped secret and returns the stored row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserSecretExists]; the
//     caller loses the provisioning race and must re-read instead of retry.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userSecretRepository) Create(ctx context.Context, secret models.UserSecret) (models.UserSecret, error) {
	log := logger.FromContext(ctx)

	query, args, err := toSQL(buildCreateUserSecret().
		Values(secret.UserID, secret.WrapSalt, secret.Nonce, secret.Wrapped))
	if err != nil {
		log.Err(err).Str("func", "*userSecretRepository.Create").Msg("error: building query")
		return models.UserSecret{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	var saved models.UserSecret
	if err = row.Scan(&saved.UserID, &saved.WrapSalt, &saved.Nonce, &saved.Wrapped, &saved.CreatedAt); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.UserSecret{}, ErrUserSecretExists
		default:
			log.Err(err).Str("func", "*userSecretRepository.Create").Msg("error: scanning error")
			return models.UserSecret{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return saved, nil
}

// FindByUserID retrieves the stored wrapped secret for a user.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrUserSecretNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userSecretRepository) FindByUserID(ctx context.Context, userID int64) (models.UserSecret, error) {
	log := logger.FromContext(ctx)

	query, args, err := toSQL(buildFindUserSecret(userID))
	if err != nil {
		log.Err(err).Str("func", "*userSecretRepository.FindByUserID").Msg("error: building query")
		return models.UserSecret{}, err
	}

	var found models.UserSecret
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&found.UserID, &found.WrapSalt, &found.Nonce, &found.Wrapped, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserSecret{}, ErrUserSecretNotFound
		}

		log.Err(err).Str("func", "*userSecretRepository.FindByUserID").Msg("error: scanning error")
		return models.UserSecret{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}
