package ledgerrepofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leagueforge/leagueforge/token/ledger"
)

var _ ledger.Repo = (*FakeLedgerRepo)(nil)

// FakeLedgerRepo is an in-memory ledger for tests. The mutex covers every
// operation, so Rotate is atomic the same way the Postgres transaction is.
type FakeLedgerRepo struct {
	tokens map[string]*ledger.Token // keyed by raw token
	lock   sync.RWMutex
}

func NewFakeLedgerRepo() *FakeLedgerRepo {
	return &FakeLedgerRepo{
		tokens: make(map[string]*ledger.Token),
	}
}

func (r *FakeLedgerRepo) Record(ctx context.Context, userID, rawToken string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.record(userID, rawToken)
	return nil
}

func (r *FakeLedgerRepo) FindByToken(ctx context.Context, rawToken string) (*ledger.Token, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	t, ok := r.tokens[rawToken]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *FakeLedgerRepo) IsUsable(ctx context.Context, rawToken string) (bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.tokens[rawToken].Usable(), nil
}

func (r *FakeLedgerRepo) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.revokeAll(userID), nil
}

func (r *FakeLedgerRepo) Rotate(ctx context.Context, userID, rawToken string) (int64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	revoked := r.revokeAll(userID)
	r.record(userID, rawToken)
	return revoked, nil
}

func (r *FakeLedgerRepo) PurgeExpiredOrRevoked(ctx context.Context) (int64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var purged int64
	for raw, t := range r.tokens {
		if t.Expired || t.Revoked {
			delete(r.tokens, raw)
			purged++
		}
	}
	return purged, nil
}

func (r *FakeLedgerRepo) record(userID, rawToken string) {
	r.tokens[rawToken] = &ledger.Token{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     rawToken,
		CreatedAt: time.Now(),
	}
}

func (r *FakeLedgerRepo) revokeAll(userID string) int64 {
	var revoked int64
	for _, t := range r.tokens {
		if t.UserID == userID && t.Usable() {
			t.Expired = true
			t.Revoked = true
			revoked++
		}
	}
	return revoked
}
