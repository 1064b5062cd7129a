package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
)

// PostgresRepository stores refresh-token records in the refresh_tokens
// table. It accepts a dbx.DBTX so rotation can run inside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (*RefreshToken, error) {
	query :=
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, token_hash, expires_at, created_at
		 `

	record := &RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, tokenHash, expiresAt).
		Scan(&record.ID, &record.UserID, &record.TokenHash, &record.ExpiresAt, &record.CreatedAt)

	if err != nil {
		return nil, common.NewStorage("creating refresh token", err)
	}

	return record, nil
}

func (r *PostgresRepository) Find(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	query :=
		`SELECT id, user_id, token_hash, expires_at, created_at FROM refresh_tokens
		 WHERE token_hash = $1 AND expires_at > now()
		 `

	record := &RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).
		Scan(&record.ID, &record.UserID, &record.TokenHash, &record.ExpiresAt, &record.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewNotFound("Refresh token not found")
		}
		return nil, common.NewStorage("querying refresh token", err)
	}

	return record, nil
}

// Delete removes the live record for tokenHash in one conditional
// statement. The rows-affected count is the atomic arbiter between
// concurrent rotations of the same token.
func (r *PostgresRepository) Delete(ctx context.Context, tokenHash string) (bool, error) {
	query :=
		`DELETE FROM refresh_tokens
		 WHERE token_hash = $1 AND expires_at > now()
		 `

	res, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return false, common.NewStorage("deleting refresh token", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, common.NewStorage("deleting refresh token", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query :=
		`DELETE FROM refresh_tokens
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return common.NewStorage("deleting user refresh tokens", err)
	}

	return nil
}

// DeleteExpired sweeps rows that expiry-filtered lookups already ignore.
// Maintenance only; request-path correctness never depends on it.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query :=
		`DELETE FROM refresh_tokens
		 WHERE expires_at <= now()
		 `

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, common.NewStorage("sweeping expired refresh tokens", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, common.NewStorage("sweeping expired refresh tokens", err)
	}

	return n, nil
}
