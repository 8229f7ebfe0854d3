package leaguerepofake

import (
	"context"
	"sort"
	"sync"

	"github.com/leagueforge/leagueforge/leagues"
)

var _ leagues.Repo = (*FakeLeagueRepo)(nil)

// FakeLeagueRepo is an in-memory league store for tests.
type FakeLeagueRepo struct {
	byID map[string]*leagues.League
	lock sync.RWMutex
}

func NewFakeLeagueRepo() *FakeLeagueRepo {
	return &FakeLeagueRepo{
		byID: make(map[string]*leagues.League),
	}
}

func (r *FakeLeagueRepo) Create(ctx context.Context, league *leagues.League) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *league
	r.byID[league.ID] = &copied
	return nil
}

func (r *FakeLeagueRepo) Update(ctx context.Context, league *leagues.League) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.byID[league.ID]; ok {
		copied := *league
		r.byID[league.ID] = &copied
	}
	return nil
}

func (r *FakeLeagueRepo) GetByID(ctx context.Context, id string) (*leagues.League, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	league, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *league
	return &copied, nil
}

func (r *FakeLeagueRepo) ListByOwner(ctx context.Context, ownerID string) ([]*leagues.League, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var list []*leagues.League
	for _, league := range r.byID {
		if league.OwnerID == ownerID {
			copied := *league
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *FakeLeagueRepo) Delete(ctx context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.byID, id)
	return nil
}
