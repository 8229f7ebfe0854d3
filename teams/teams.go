// Package teams manages the teams registered within a league.
package teams

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/leagueforge/leagueforge/leagues"
)

var (
	ErrNotFound    = errors.New("team not found")
	ErrInvalidName = errors.New("team name is required")
)

// Team is a roster entry within a league.
type Team struct {
	ID        string    `json:"id"`
	LeagueID  string    `json:"leagueId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service enforces that team changes go through the league's owner.
type Service struct {
	repo    Repo
	leagues leagues.Repo
}

func NewService(repo Repo, leagueRepo leagues.Repo) (*Service, error) {
	if repo == nil || leagueRepo == nil {
		return nil, errors.New("[teams.NewService] nil repo")
	}
	return &Service{repo: repo, leagues: leagueRepo}, nil
}

func (s *Service) Create(ctx context.Context, leagueID, requesterID, name string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	league, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] get league")
	}
	if league == nil || league.OwnerID != requesterID {
		return nil, leagues.ErrNotFound
	}

	team := &Team{
		ID:       uuid.New().String(),
		LeagueID: leagueID,
		Name:     name,
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] create team")
	}
	return team, nil
}

func (s *Service) ListByLeague(ctx context.Context, leagueID string) ([]*Team, error) {
	league, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListByLeague] get league")
	}
	if league == nil {
		return nil, leagues.ErrNotFound
	}

	list, err := s.repo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListByLeague] list teams")
	}
	return list, nil
}

// Delete removes a team. Only the owner of its league may delete it.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "[Service.Delete] get team")
	}
	if team == nil {
		return ErrNotFound
	}

	league, err := s.leagues.GetByID(ctx, team.LeagueID)
	if err != nil {
		return errors.Wrap(err, "[Service.Delete] get league")
	}
	if league == nil || league.OwnerID != requesterID {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "[Service.Delete] delete team")
	}
	return nil
}
