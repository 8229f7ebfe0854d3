package leagues

import "context"

// Repo is the league store boundary. GetByID returns (nil, nil) when no
// league matches; an error means the store itself failed.
type Repo interface {
	Create(ctx context.Context, league *League) error
	Update(ctx context.Context, league *League) error
	GetByID(ctx context.Context, id string) (*League, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*League, error)
	Delete(ctx context.Context, id string) error
}
