package teams

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepo struct {
	db *sql.DB
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, team *Team) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (id, league_id, name, created_at)
		 VALUES ($1, $2, $3, now())`,
		team.ID, team.LeagueID, team.Name,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Create] insert team")
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Team, error) {
	team := &Team{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, league_id, name, created_at
		 FROM teams WHERE id = $1`,
		id,
	).Scan(&team.ID, &team.LeagueID, &team.Name, &team.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.GetByID] query team")
	}
	return team, nil
}

func (r *PostgresRepo) ListByLeague(ctx context.Context, leagueID string) ([]*Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, league_id, name, created_at
		 FROM teams WHERE league_id = $1 ORDER BY created_at`,
		leagueID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.ListByLeague] query teams")
	}
	defer rows.Close()

	var list []*Team
	for rows.Next() {
		team := &Team{}
		if err := rows.Scan(&team.ID, &team.LeagueID, &team.Name, &team.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[PostgresRepo.ListByLeague] scan team")
		}
		list = append(list, team)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.ListByLeague] iterate teams")
	}
	return list, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Delete] delete team")
	}
	return nil
}
