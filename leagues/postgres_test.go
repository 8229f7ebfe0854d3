package leagues_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/leagueforge/leagueforge/leagues"
)

func newMockRepo(t *testing.T) (*leagues.PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return leagues.NewPostgresRepo(db), mock
}

func TestPostgresCreateLeague(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO leagues").
		WithArgs("league-1", "Sunday Division", "football", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &leagues.League{
		ID:      "league-1",
		Name:    "Sunday Division",
		Sport:   "football",
		OwnerID: "owner-1",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetLeagueByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	columns := []string{"id", "name", "sport", "owner_id", "created_at"}
	mock.ExpectQuery("SELECT id, name, sport, owner_id, created_at").
		WithArgs("league-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("league-1", "Sunday Division", "football", "owner-1", time.Now()))

	league, err := repo.GetByID(context.Background(), "league-1")
	require.NoError(t, err)
	require.NotNil(t, league)
	require.Equal(t, "owner-1", league.OwnerID)

	// Absence maps to (nil, nil).
	mock.ExpectQuery("SELECT id, name, sport, owner_id, created_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	league, err = repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, league)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListLeaguesByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	columns := []string{"id", "name", "sport", "owner_id", "created_at"}
	mock.ExpectQuery("SELECT id, name, sport, owner_id, created_at").
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("league-1", "League A", "", "owner-1", time.Now()).
			AddRow("league-2", "League B", "", "owner-1", time.Now()))

	list, err := repo.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateAndDeleteLeague(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE leagues SET name").
		WithArgs("league-1", "League B", "football").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM leagues").
		WithArgs("league-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &leagues.League{ID: "league-1", Name: "League B", Sport: "football"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), "league-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
