// Package database provides the PostgreSQL connection and schema
// migrations.
package database

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// Open opens a PostgreSQL connection pool. sql.Open does not dial; call
// db.Ping to verify connectivity.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[database.Open] open")
	}
	return db, nil
}
