package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// psql renders statements with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildCreateUserSecret() sq.InsertBuilder {
	return psql.Insert("user_secrets").
		Columns("user_id", "wrap_salt", "nonce", "wrapped").
		Suffix("RETURNING user_id, wrap_salt, nonce, wrapped, created_at")
}

func buildFindUserSecret(userID int64) sq.SelectBuilder {
	return psql.Select("user_id", "wrap_salt", "nonce", "wrapped", "created_at").
		From("user_secrets").
		Where(sq.Eq{"user_id": userID})
}

func buildCreateCaptureSession() sq.InsertBuilder {
	return psql.Insert("capture_sessions").
		Columns("session_id", "user_id", "status", "created_at", "expires_at")
}

// buildRedeemCaptureSession consumes a token in a single statement: the row
// is gone the moment the delete commits, so a second redemption attempt
// scans zero rows no matter how the two requests interleave.
func buildRedeemCaptureSession(sessionID string) sq.DeleteBuilder {
	return psql.Delete("capture_sessions").
		Where(sq.Eq{"session_id": sessionID, "status": "active"}).
		Where(sq.Expr("expires_at > NOW()")).
		Suffix("RETURNING session_id, user_id, status, created_at, expires_at")
}

func toSQL(builder sq.Sqlizer) (string, []any, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
