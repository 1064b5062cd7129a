package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authgate/internal/common"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func tokenColumns() []string {
	return []string{"id", "user_id", "token_hash", "expires_at", "created_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newMockRepo(t)
	expires := time.Now().Add(7 * 24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
		WithArgs(sqlmock.AnyArg(), "u1", "digest", expires).
		WillReturnRows(sqlmock.NewRows(tokenColumns()).
			AddRow("rt-1", "u1", "digest", expires, time.Now()))

	record, err := repo.Create(context.Background(), "u1", "digest", expires)
	require.NoError(t, err)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "digest", record.TokenHash)
}

func TestFind_FiltersByExpiry(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("expires_at > now()")).
		WithArgs("digest").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "digest")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNotFound), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFind_Success(t *testing.T) {
	repo, mock := newMockRepo(t)
	expires := time.Now().Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, token_hash, expires_at, created_at FROM refresh_tokens")).
		WithArgs("digest").
		WillReturnRows(sqlmock.NewRows(tokenColumns()).
			AddRow("rt-1", "u1", "digest", expires, time.Now()))

	record, err := repo.Find(context.Background(), "digest")
	require.NoError(t, err)
	assert.Equal(t, "rt-1", record.ID)
}

func TestDelete_ReportsWhetherRowRemoved(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens")).
		WithArgs("digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Delete(context.Background(), "digest")
	require.NoError(t, err)
	assert.True(t, removed)

	// second delete of the same digest finds nothing: the rotation loser
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens")).
		WithArgs("digest").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err = repo.Delete(context.Background(), "digest")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDelete_DriverErrorIsStorage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM refresh_tokens")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Delete(context.Background(), "digest")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindStorage), "got %v", err)
}

func TestDeleteAllForUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.DeleteAllForUser(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpired(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("WHERE expires_at <= now()")).
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
