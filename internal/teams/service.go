package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/pagination"
)

type teamsRepository interface {
	AccountExists(ctx context.Context, accountID uuid.UUID) (bool, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, page pagination.Params) ([]models.Team, error)
	SearchByName(ctx context.Context, accountID uuid.UUID, query string, page pagination.Params) ([]models.Team, error)
	FindOwned(ctx context.Context, accountID, teamID uuid.UUID) (*models.Team, error)
	Create(ctx context.Context, accountID uuid.UUID, name string) (*models.Team, error)
	Rename(ctx context.Context, accountID, teamID uuid.UUID, name string) error
	Delete(ctx context.Context, accountID, teamID uuid.UUID) error
}

// Service defines the behavior needed by the teams controller.
type Service interface {
	ListTeams(ctx context.Context, accountID uuid.UUID, page pagination.Params) ([]TeamDTO, error)
	SearchTeams(ctx context.Context, accountID uuid.UUID, query string, page pagination.Params) ([]TeamDTO, error)
	CreateTeam(ctx context.Context, accountID uuid.UUID, req CreateTeamRequest) (*TeamDTO, error)
	RenameTeam(ctx context.Context, accountID, teamID uuid.UUID, req RenameTeamRequest) (*TeamDTO, error)
	DeleteTeam(ctx context.Context, accountID, teamID uuid.UUID) error
}

type service struct {
	repo teamsRepository
}

// NewService constructs a teams service over the provided repository.
func NewService(repo teamsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("teams repository is required")
	}
	return &service{repo: repo}, nil
}

// ListTeams returns a page of the account's teams. An empty page reports not
// found, which is what the frontend expects for a fresh filter; a missing
// account gets its own message so the client can tell the two apart.
func (s *service) ListTeams(ctx context.Context, accountID uuid.UUID, page pagination.Params) ([]TeamDTO, error) {
	teams, err := s.repo.ListByAccount(ctx, accountID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list teams")
	}
	if len(teams) == 0 {
		exists, err := s.repo.AccountExists(ctx, accountID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check account")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Account not found for this user.")
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no teams found matching the search criteria")
	}
	return FromModels(teams), nil
}

// SearchTeams returns the account's teams whose name contains the query.
func (s *service) SearchTeams(ctx context.Context, accountID uuid.UUID, query string, page pagination.Params) ([]TeamDTO, error) {
	teams, err := s.repo.SearchByName(ctx, accountID, strings.TrimSpace(query), page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search teams")
	}
	if len(teams) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no teams found matching the search criteria")
	}
	return FromModels(teams), nil
}

// CreateTeam appends a new empty team for the account.
func (s *service) CreateTeam(ctx context.Context, accountID uuid.UUID, req CreateTeamRequest) (*TeamDTO, error) {
	name := strings.TrimSpace(req.TeamName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name is required")
	}
	team, err := s.repo.Create(ctx, accountID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create team")
	}
	return FromModel(team), nil
}

// RenameTeam updates the team's name when the account owns it.
func (s *service) RenameTeam(ctx context.Context, accountID, teamID uuid.UUID, req RenameTeamRequest) (*TeamDTO, error) {
	name := strings.TrimSpace(req.NewTeamName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "new team name is required")
	}
	if err := s.repo.Rename(ctx, accountID, teamID, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found on this account")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rename team")
	}
	team, err := s.repo.FindOwned(ctx, accountID, teamID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload team")
	}
	return FromModel(team), nil
}

// DeleteTeam removes the team and its roster when the account owns it.
func (s *service) DeleteTeam(ctx context.Context, accountID, teamID uuid.UUID) error {
	if err := s.repo.Delete(ctx, accountID, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "team not found on this account")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete team")
	}
	return nil
}
