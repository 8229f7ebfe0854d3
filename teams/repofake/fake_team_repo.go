package teamrepofake

import (
	"context"
	"sort"
	"sync"

	"github.com/leagueforge/leagueforge/teams"
)

var _ teams.Repo = (*FakeTeamRepo)(nil)

// FakeTeamRepo is an in-memory team store for tests.
type FakeTeamRepo struct {
	byID map[string]*teams.Team
	lock sync.RWMutex
}

func NewFakeTeamRepo() *FakeTeamRepo {
	return &FakeTeamRepo{
		byID: make(map[string]*teams.Team),
	}
}

func (r *FakeTeamRepo) Create(ctx context.Context, team *teams.Team) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *team
	r.byID[team.ID] = &copied
	return nil
}

func (r *FakeTeamRepo) GetByID(ctx context.Context, id string) (*teams.Team, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	team, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *team
	return &copied, nil
}

func (r *FakeTeamRepo) ListByLeague(ctx context.Context, leagueID string) ([]*teams.Team, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var list []*teams.Team
	for _, team := range r.byID {
		if team.LeagueID == leagueID {
			copied := *team
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *FakeTeamRepo) Delete(ctx context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.byID, id)
	return nil
}
