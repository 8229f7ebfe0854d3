package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leagueforge/leagueforge/token/ledger"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*ledger.PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return ledger.NewPostgresRepo(db), mock
}

func TestPostgresRecord(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO tokens").
		WithArgs(sqlmock.AnyArg(), testUserID, "tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Record(context.Background(), testUserID, "tok-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByToken(t *testing.T) {
	repo, mock := newMockRepo(t)

	columns := []string{"id", "user_id", "token", "expired", "revoked", "created_at"}
	mock.ExpectQuery("SELECT id, user_id, token, expired, revoked, created_at").
		WithArgs("tok-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id-1", testUserID, "tok-1", false, false, time.Now()))

	row, err := repo.FindByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	require.True(t, row.Usable())

	// Absence maps to (nil, nil).
	mock.ExpectQuery("SELECT id, user_id, token, expired, revoked, created_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	row, err = repo.FindByToken(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, row)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRevokeAllForUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE tokens SET expired = true, revoked = true").
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	revoked, err := repo.RevokeAllForUser(context.Background(), testUserID)
	require.NoError(t, err)
	require.EqualValues(t, 3, revoked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRotateIsTransactional(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tokens SET expired = true, revoked = true").
		WithArgs(testUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tokens").
		WithArgs(sqlmock.AnyArg(), testUserID, "tok-new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	revoked, err := repo.Rotate(context.Background(), testUserID, "tok-new")
	require.NoError(t, err)
	require.EqualValues(t, 1, revoked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPurgeExpiredOrRevoked(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM tokens WHERE expired = true OR revoked = true").
		WillReturnResult(sqlmock.NewResult(0, 7))

	purged, err := repo.PurgeExpiredOrRevoked(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 7, purged)
	require.NoError(t, mock.ExpectationsWereMet())
}
