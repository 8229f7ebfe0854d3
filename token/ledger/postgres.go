package ledger

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PostgresRepo stores ledger rows in the tokens table.
type PostgresRepo struct {
	db *sql.DB
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Record(ctx context.Context, userID, rawToken string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tokens (id, user_id, token, expired, revoked, created_at)
		 VALUES ($1, $2, $3, false, false, now())`,
		uuid.New().String(), userID, rawToken,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Record] insert")
	}
	return nil
}

func (r *PostgresRepo) FindByToken(ctx context.Context, rawToken string) (*Token, error) {
	t := &Token{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token, expired, revoked, created_at
		 FROM tokens WHERE token = $1`,
		rawToken,
	).Scan(&t.ID, &t.UserID, &t.Token, &t.Expired, &t.Revoked, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.FindByToken] query")
	}
	return t, nil
}

func (r *PostgresRepo) IsUsable(ctx context.Context, rawToken string) (bool, error) {
	t, err := r.FindByToken(ctx, rawToken)
	if err != nil {
		return false, err
	}
	return t.Usable(), nil
}

func (r *PostgresRepo) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	return revokeAll(ctx, r.db, userID)
}

// Rotate wraps revoke-all and record in one transaction so no crash window
// leaves two valid rows for the user.
func (r *PostgresRepo) Rotate(ctx context.Context, userID, rawToken string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "[PostgresRepo.Rotate] begin")
	}
	defer func() { _ = tx.Rollback() }()

	revoked, err := revokeAll(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tokens (id, user_id, token, expired, revoked, created_at)
		 VALUES ($1, $2, $3, false, false, now())`,
		uuid.New().String(), userID, rawToken,
	)
	if err != nil {
		return 0, errors.Wrap(err, "[PostgresRepo.Rotate] insert")
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "[PostgresRepo.Rotate] commit")
	}
	return revoked, nil
}

func (r *PostgresRepo) PurgeExpiredOrRevoked(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE expired = true OR revoked = true`,
	)
	if err != nil {
		return 0, errors.Wrap(err, "[PostgresRepo.PurgeExpiredOrRevoked] delete")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "[PostgresRepo.PurgeExpiredOrRevoked] rows affected")
	}
	return count, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func revokeAll(ctx context.Context, db execer, userID string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE tokens SET expired = true, revoked = true
		 WHERE user_id = $1 AND expired = false AND revoked = false`,
		userID,
	)
	if err != nil {
		return 0, errors.Wrap(err, "[PostgresRepo] revoke all")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "[PostgresRepo] rows affected")
	}
	return count, nil
}
