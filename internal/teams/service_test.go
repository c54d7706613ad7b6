package teams

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pokeverse/pokeverse-backend/pkg/db/models"
	pkgerrors "github.com/pokeverse/pokeverse-backend/pkg/errors"
	"github.com/pokeverse/pokeverse-backend/pkg/pagination"
)

type fakeTeamsRepo struct {
	teams     []models.Team
	noAccount bool
	renameErr error
	deleteErr error
}

func (f *fakeTeamsRepo) AccountExists(ctx context.Context, accountID uuid.UUID) (bool, error) {
	return !f.noAccount, nil
}

func (f *fakeTeamsRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, page pagination.Params) ([]models.Team, error) {
	return f.teams, nil
}

func (f *fakeTeamsRepo) SearchByName(ctx context.Context, accountID uuid.UUID, query string, page pagination.Params) ([]models.Team, error) {
	return f.teams, nil
}

func (f *fakeTeamsRepo) FindOwned(ctx context.Context, accountID, teamID uuid.UUID) (*models.Team, error) {
	if len(f.teams) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &f.teams[0], nil
}

func (f *fakeTeamsRepo) Create(ctx context.Context, accountID uuid.UUID, name string) (*models.Team, error) {
	team := models.Team{ID: uuid.New(), AccountID: accountID, Name: name}
	f.teams = append(f.teams, team)
	return &team, nil
}

func (f *fakeTeamsRepo) Rename(ctx context.Context, accountID, teamID uuid.UUID, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	f.teams[0].Name = name
	return nil
}

func (f *fakeTeamsRepo) Delete(ctx context.Context, accountID, teamID uuid.UUID) error {
	return f.deleteErr
}

func TestListTeamsEmptyReportsNotFound(t *testing.T) {
	svc, err := NewService(&fakeTeamsRepo{})
	require.NoError(t, err)

	_, err = svc.ListTeams(context.Background(), uuid.New(), pagination.Params{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "no teams found matching the search criteria", typed.Message())
}

func TestListTeamsMissingAccount(t *testing.T) {
	svc, err := NewService(&fakeTeamsRepo{noAccount: true})
	require.NoError(t, err)

	_, err = svc.ListTeams(context.Background(), uuid.New(), pagination.Params{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Account not found for this user.", typed.Message())
}

func TestCreateTeamRequiresName(t *testing.T) {
	svc, err := NewService(&fakeTeamsRepo{})
	require.NoError(t, err)

	_, err = svc.CreateTeam(context.Background(), uuid.New(), CreateTeamRequest{TeamName: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateTeamTrimsName(t *testing.T) {
	repo := &fakeTeamsRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	team, err := svc.CreateTeam(context.Background(), uuid.New(), CreateTeamRequest{TeamName: "  Heroes  "})
	require.NoError(t, err)
	assert.Equal(t, "Heroes", team.Name)
}

func TestRenameTeamNotOwned(t *testing.T) {
	repo := &fakeTeamsRepo{renameErr: gorm.ErrRecordNotFound}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.RenameTeam(context.Background(), uuid.New(), uuid.New(), RenameTeamRequest{NewTeamName: "Stolen"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "team not found on this account", typed.Message())
}

func TestRenameTeamReturnsUpdatedRoster(t *testing.T) {
	repo := &fakeTeamsRepo{teams: []models.Team{{ID: uuid.New(), Name: "Old"}}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	team, err := svc.RenameTeam(context.Background(), uuid.New(), repo.teams[0].ID, RenameTeamRequest{NewTeamName: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", team.Name)
}

func TestDeleteTeamNotOwned(t *testing.T) {
	repo := &fakeTeamsRepo{deleteErr: gorm.ErrRecordNotFound}
	svc, err := NewService(repo)
	require.NoError(t, err)

	err = svc.DeleteTeam(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
