// Package ledger is the server-side authority on which access tokens are
// currently usable. Every issued access token gets a row; logout and
// re-login flip the row's expired/revoked flags, and the janitor deletes
// rows once both flags are set. Refresh tokens are never recorded here:
// their validity rests on signature and expiry alone.
package ledger

import (
	"context"
	"time"
)

// Token is a persisted record of one issued access token. Rows are never
// mutated back to valid once flagged.
type Token struct {
	ID        string
	UserID    string
	Token     string // raw signed token string, unique
	Expired   bool
	Revoked   bool
	CreatedAt time.Time
}

// Usable reports whether the row still authorizes requests.
func (t *Token) Usable() bool {
	return t != nil && !t.Expired && !t.Revoked
}

// Repo manages ledger rows. Absence is represented by empty results, not
// errors: "no valid token" is an expected authentication failure, not a
// system fault.
type Repo interface {
	// Record inserts a row with expired=false, revoked=false.
	Record(ctx context.Context, userID, rawToken string) error

	// FindByToken is an exact-match lookup; (nil, nil) when absent.
	FindByToken(ctx context.Context, rawToken string) (*Token, error)

	// IsUsable reports whether a row exists for the raw token with both
	// flags clear.
	IsUsable(ctx context.Context, rawToken string) (bool, error)

	// RevokeAllForUser sets expired=true, revoked=true on every
	// currently-valid row for the user and returns the number of rows
	// affected. Zero is a valid outcome.
	RevokeAllForUser(ctx context.Context, userID string) (int64, error)

	// Rotate revokes all currently-valid rows for the user and records
	// rawToken as the single replacement, atomically where the store
	// supports it. Returns the number of rows revoked.
	Rotate(ctx context.Context, userID, rawToken string) (int64, error)

	// PurgeExpiredOrRevoked hard-deletes rows where either flag is set and
	// returns the number deleted.
	PurgeExpiredOrRevoked(ctx context.Context) (int64, error)
}
