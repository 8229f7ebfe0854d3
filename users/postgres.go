package users

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// PostgresRepo stores users in the users table and their role names through
// the roles / user_roles join tables.
type PostgresRepo struct {
	db *sql.DB
}

var _ UserRepo = (*PostgresRepo)(nil)

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, user *User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Create] begin")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, password, first_name, last_name,
		                    account_enabled, account_expired, account_locked,
		                    credentials_expired, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Enabled, user.AccountExpired, user.AccountLocked, user.CredentialsExpired,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.Create] insert user")
	}

	for _, role := range user.Roles {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id)
			 SELECT $1, id FROM roles WHERE role_name = $2`,
			user.ID, role,
		)
		if err != nil {
			return errors.Wrapf(err, "[PostgresRepo.Create] assign role %s", role)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "[PostgresRepo.Create] commit")
	}
	return nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx,
		`SELECT id, email, password, first_name, last_name,
		        account_enabled, account_expired, account_locked,
		        credentials_expired, created_at
		 FROM users WHERE email = $1`,
		email,
	)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx,
		`SELECT id, email, password, first_name, last_name,
		        account_enabled, account_expired, account_locked,
		        credentials_expired, created_at
		 FROM users WHERE id = $1`,
		id,
	)
}

func (r *PostgresRepo) GetByEmailWithRoles(ctx context.Context, email string) (*User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return user, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT r.role_name FROM roles r
		 INNER JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1`,
		user.ID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.GetByEmailWithRoles] query roles")
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, errors.Wrap(err, "[PostgresRepo.GetByEmailWithRoles] scan role")
		}
		user.Roles = append(user.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo.GetByEmailWithRoles] iterate roles")
	}
	return user, nil
}

func (r *PostgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $2 WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepo.UpdatePassword] update")
	}
	return nil
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Enabled, &user.AccountExpired, &user.AccountLocked,
		&user.CredentialsExpired, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepo] query user")
	}
	return user, nil
}
