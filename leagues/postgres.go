package leagues

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

func (r *PostgresRepo) Create(ctx context.Context, league *League) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leagues (id, name, sport, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		league.ID, league.Name, league.Sport, league.OwnerID,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Create] insert league")
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, league *League) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE leagues SET name = $2, sport = $3 WHERE id = $1`,
		league.ID, league.Name, league.Sport,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Update] update league")
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*League, error) {
	league := &League{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, sport, owner_id, created_at
		 FROM leagues WHERE id = $1`,
		id,
	).Scan(&league.ID, &league.Name, &league.Sport, &league.OwnerID, &league.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.GetByID] query league")
	}
	return league, nil
}

func (r *PostgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]*League, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, sport, owner_id, created_at
		 FROM leagues WHERE owner_id = $1 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.ListByOwner] query leagues")
	}
	defer rows.Close()

	var list []*League
	for rows.Next() {
		league := &League{}
		if err := rows.Scan(&league.ID, &league.Name, &league.Sport, &league.OwnerID, &league.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[PostgresRepo.ListByOwner] scan league")
		}
		list = append(list, league)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.ListByOwner] iterate leagues")
	}
	return list, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Delete] delete league")
	}
	return nil
}
