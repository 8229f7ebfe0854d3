package teams

import "context"

// Repo is the team store boundary. GetByID returns (nil, nil) when no
// team matches; an error means the store itself failed.
type Repo interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id string) (*Team, error)
	ListByLeague(ctx context.Context, leagueID string) ([]*Team, error)
	Delete(ctx context.Context, id string) error
}
