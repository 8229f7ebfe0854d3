package userrepofake

import (
	"context"
	"sync"

	"github.com/leagueforge/leagueforge/users"
	"github.com/pkg/errors"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
	lock    sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (r *FakeUserRepo) Create(ctx context.Context, user *users.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return errors.New("duplicate email")
	}
	copied := *user
	r.byEmail[user.Email] = &copied
	r.byID[user.ID] = &copied
	return nil
}

func (r *FakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *FakeUserRepo) GetByEmailWithRoles(ctx context.Context, email string) (*users.User, error) {
	return r.GetByEmail(ctx, email)
}

func (r *FakeUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *FakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return errors.New("not found")
	}
	user.PasswordHash = passwordHash
	return nil
}
