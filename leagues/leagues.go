// Package leagues manages the leagues owned by registered accounts.
package leagues

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("league not found")
	ErrInvalidName = errors.New("league name is required")
)

// League is a competition owned by a single account.
type League struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service owns league lifecycle rules on top of the repo.
type Service struct {
	repo Repo
}

func NewService(repo Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[leagues.NewService] nil repo")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) Create(ctx context.Context, ownerID, name, sport string) (*League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	league := &League{
		ID:      uuid.New().String(),
		Name:    name,
		Sport:   strings.TrimSpace(sport),
		OwnerID: ownerID,
	}
	if err := s.repo.Create(ctx, league); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] create league")
	}
	return league, nil
}

func (s *Service) Get(ctx context.Context, id string) (*League, error) {
	league, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Get] get league")
	}
	if league == nil {
		return nil, ErrNotFound
	}
	return league, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*League, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListByOwner] list leagues")
	}
	return list, nil
}

// Rename changes a league's name. Only the owner may rename it.
func (s *Service) Rename(ctx context.Context, id, requesterID, name string) (*League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	league, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Rename] get league")
	}
	if league == nil || league.OwnerID != requesterID {
		return nil, ErrNotFound
	}

	league.Name = name
	if err := s.repo.Update(ctx, league); err != nil {
		return nil, errors.Wrap(err, "[Service.Rename] update league")
	}
	return league, nil
}

// Delete removes a league. Only the owner may delete it.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	league, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "[Service.Delete] get league")
	}
	if league == nil || league.OwnerID != requesterID {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "[Service.Delete] delete league")
	}
	return nil
}
