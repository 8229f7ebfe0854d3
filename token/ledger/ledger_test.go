package ledger_test

import (
	"context"
	"testing"

	ledgerrepofake "github.com/leagueforge/leagueforge/token/ledger/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "user-1"
	otherUser  = "user-2"
)

func TestRecordThenUsable(t *testing.T) {
	ctx := context.Background()
	repo := ledgerrepofake.NewFakeLedgerRepo()

	require.NoError(t, repo.Record(ctx, testUserID, "tok-1"))

	usable, err := repo.IsUsable(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, usable)

	row, err := repo.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, testUserID, row.UserID)
	require.False(t, row.Expired)
	require.False(t, row.Revoked)
}

func TestFindAbsentTokenIsNotAnError(t *testing.T) {
	ctx := context.Background()
	repo := ledgerrepofake.NewFakeLedgerRepo()

	row, err := repo.FindByToken(ctx, "never-issued")
	require.NoError(t, err)
	require.Nil(t, row)

	usable, err := repo.IsUsable(ctx, "never-issued")
	require.NoError(t, err)
	require.False(t, usable)
}

func TestRevokeAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := ledgerrepofake.NewFakeLedgerRepo()

	require.NoError(t, repo.Record(ctx, testUserID, "tok-1"))
	require.NoError(t, repo.Record(ctx, testUserID, "tok-2"))
	require.NoError(t, repo.Record(ctx, otherUser, "tok-3"))

	revoked, err := repo.RevokeAllForUser(ctx, testUserID)
	require.NoError(t, err)
	require.EqualValues(t, 2, revoked)

	// Second call affects nothing.
	revoked, err = repo.RevokeAllForUser(ctx, testUserID)
	require.NoError(t, err)
	require.EqualValues(t, 0, revoked)

	// Other users' tokens are untouched.
	usable, err := repo.IsUsable(ctx, "tok-3")
	require.NoError(t, err)
	require.True(t, usable)
}

func TestRotateLeavesExactlyOneValidRow(t *testing.T) {
	ctx := context.Background()
	repo := ledgerrepofake.NewFakeLedgerRepo()

	require.NoError(t, repo.Record(ctx, testUserID, "tok-old"))

	revoked, err := repo.Rotate(ctx, testUserID, "tok-new")
	require.NoError(t, err)
	require.EqualValues(t, 1, revoked)

	usable, err := repo.IsUsable(ctx, "tok-old")
	require.NoError(t, err)
	require.False(t, usable)

	usable, err = repo.IsUsable(ctx, "tok-new")
	require.NoError(t, err)
	require.True(t, usable)
}

func TestPurgedTokenIsNeverUsableAgain(t *testing.T) {
	ctx := context.Background()
	repo := ledgerrepofake.NewFakeLedgerRepo()

	require.NoError(t, repo.Record(ctx, testUserID, "tok-1"))
	require.NoError(t, repo.Record(ctx, testUserID, "tok-2"))

	_, err := repo.RevokeAllForUser(ctx, testUserID)
	require.NoError(t, err)

	purged, err := repo.PurgeExpiredOrRevoked(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, purged)

	for _, raw := range []string{"tok-1", "tok-2"} {
		usable, err := repo.IsUsable(ctx, raw)
		require.NoError(t, err)
		require.False(t, usable)

		row, err := repo.FindByToken(ctx, raw)
		require.NoError(t, err)
		require.Nil(t, row)
	}

	// Purge with nothing left to delete is a no-op.
	purged, err = repo.PurgeExpiredOrRevoked(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, purged)
}
